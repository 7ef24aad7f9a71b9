package terminal

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"packetirc/pkg/logger"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Print("** Connected.")
	p.Printf("<%s> %s", "W1AW", "hello")

	assert.Equal(t, "** Connected.\n<W1AW> hello\n", buf.String())
}

func newInputLogger(t *testing.T) *logger.SlogLogger {
	t.Helper()
	return logger.New(filepath.Join(t.TempDir(), "test.log"))
}

func collect(t *testing.T, in *Input, n int) []string {
	t.Helper()

	var got []string
	for len(got) < n {
		select {
		case line, ok := <-in.Lines():
			if !ok {
				return got
			}
			got = append(got, line)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d lines", len(got))
		}
	}
	return got
}

func TestInputLines(t *testing.T) {
	in := NewInput(newInputLogger(t), strings.NewReader("first\n  second  \n\n   \nthird\n"))
	in.Start()

	// blank lines are skipped, surrounding whitespace stripped
	assert.Equal(t, []string{"first", "second", "third"}, collect(t, in, 3))
}

func TestInputClosesOnEOF(t *testing.T) {
	in := NewInput(newInputLogger(t), strings.NewReader("only\n"))
	in.Start()

	assert.Equal(t, []string{"only"}, collect(t, in, 1))

	select {
	case _, ok := <-in.Lines():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("lines channel did not close on EOF")
	}
}

func TestInputStopJoins(t *testing.T) {
	in := NewInput(newInputLogger(t), strings.NewReader("a\n"))
	in.Start()

	select {
	case <-in.Stop():
	case <-time.After(2 * time.Second):
		t.Fatal("input reader did not stop")
	}

	// calling Stop again must not panic
	<-in.Stop()
}
