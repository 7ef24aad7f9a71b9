package banwords

import (
	"bufio"
	"os"
	"strings"

	"packetirc/pkg/logger"
)

const redaction = "!!!"

// Banwords rewrites outbound operator text so that none of the loaded words
// ever make it onto the air. An empty word set is a no-op filter.
type Banwords struct {
	words []string
}

func New(words []string) *Banwords {
	bw := &Banwords{}
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			bw.words = append(bw.words, w)
		}
	}
	return bw
}

// Load reads a word list, one word per line. A missing or unreadable file
// is logged and yields an empty filter; censorship failing open is the
// documented behavior.
func Load(log logger.Logger, path string) *Banwords {
	f, err := os.Open(path)
	if err != nil {
		log.Error("Failed to load bad words file, filtering disabled", err, "path", path)
		return New(nil)
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		log.Error("Failed to read bad words file, filtering disabled", err, "path", path)
		return New(nil)
	}

	return New(words)
}

// Filter replaces every occurrence of every banned word with the redaction
// token.
func (bw *Banwords) Filter(text string) string {
	for _, w := range bw.words {
		text = strings.ReplaceAll(text, w, redaction)
	}
	return text
}

func (bw *Banwords) Empty() bool {
	return len(bw.words) == 0
}
