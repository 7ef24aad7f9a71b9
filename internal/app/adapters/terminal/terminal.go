package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"packetirc/pkg/logger"
)

// Printer renders operator-facing lines. Every line is flushed immediately:
// the packet switch forwards buffered IO only when it sees it.
type Printer struct {
	mu sync.Mutex
	w  *bufio.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: bufio.NewWriter(w)}
}

func (p *Printer) Print(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = p.w.WriteString(line)
	_ = p.w.WriteByte('\n')
	_ = p.w.Flush()
}

func (p *Printer) Printf(format string, args ...any) {
	p.Print(fmt.Sprintf(format, args...))
}

// Input reads operator lines into a bounded channel. It never touches the
// network or client state; the session loop is the only consumer.
type Input struct {
	log   logger.Logger
	r     io.Reader
	lines chan string
	stop  chan struct{}
	done  chan struct{}
}

func NewInput(log logger.Logger, r io.Reader) *Input {
	return &Input{
		log:   log,
		r:     r,
		lines: make(chan string, 16),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start launches the reader goroutine. The lines channel is closed when
// the terminal reaches EOF or the reader is stopped, which the session
// takes as a quit request.
func (in *Input) Start() {
	go func() {
		defer close(in.done)
		defer close(in.lines)

		// a panic here must not take the session down with it
		defer func() {
			if r := recover(); r != nil {
				in.log.Error("Input reader panicked", fmt.Errorf("%v", r))
			}
		}()

		sc := bufio.NewScanner(in.r)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			select {
			case in.lines <- line:
			case <-in.stop:
				return
			}
		}
		if err := sc.Err(); err != nil {
			in.log.Error("Input reader failed", err)
		}
	}()
}

func (in *Input) Lines() <-chan string {
	return in.lines
}

// Stop asks the reader to finish and returns its done channel so the
// caller can join with a bounded wait. A goroutine blocked inside a read
// on a quiet terminal simply never reports back; the caller gives up
// after its timeout.
func (in *Input) Stop() <-chan struct{} {
	select {
	case <-in.stop:
	default:
		close(in.stop)
	}
	return in.done
}
