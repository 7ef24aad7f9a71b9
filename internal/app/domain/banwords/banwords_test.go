package banwords

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"packetirc/pkg/logger"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		input string
		want  string
	}{
		{
			name:  "single word replaced everywhere",
			words: []string{"foo"},
			input: "foo bar foo",
			want:  "!!! bar !!!",
		},
		{
			name:  "multiple words",
			words: []string{"foo", "baz"},
			input: "foo bar baz",
			want:  "!!! bar !!!",
		},
		{
			name:  "substring match",
			words: []string{"oo"},
			input: "look out",
			want:  "l!!!k out",
		},
		{
			name:  "empty word set is identity",
			words: nil,
			input: "anything goes",
			want:  "anything goes",
		},
		{
			name:  "blank entries are dropped at load",
			words: []string{"", "  ", "foo"},
			input: "foo",
			want:  "!!!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.words).Filter(tt.input))
		})
	}
}

func TestEmpty(t *testing.T) {
	assert.True(t, New(nil).Empty())
	assert.True(t, New([]string{"", " "}).Empty())
	assert.False(t, New([]string{"foo"}).Empty())
}

func TestLoad(t *testing.T) {
	log := logger.New(filepath.Join(t.TempDir(), "test.log"))

	path := filepath.Join(t.TempDir(), "badwords.txt")
	err := os.WriteFile(path, []byte("foo\nbar\n\n  baz  \n"), 0644)
	assert.NoError(t, err)

	bw := Load(log, path)
	assert.False(t, bw.Empty())
	assert.Equal(t, "!!! !!! !!!", bw.Filter("foo bar baz"))
}

func TestLoad_MissingFileFailsOpen(t *testing.T) {
	log := logger.New(filepath.Join(t.TempDir(), "test.log"))

	bw := Load(log, filepath.Join(t.TempDir(), "no-such-file.txt"))
	assert.True(t, bw.Empty())
	assert.Equal(t, "foo", bw.Filter("foo"))
}
