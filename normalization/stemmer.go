package normalization

import (
	"strings"
	"sync"

	"github.com/kljensen/snowball"
)

// EnglishStemmer stems English words using the Snowball algorithm, with a
// small cache because catalog names repeat the same tokens heavily.
type EnglishStemmer struct {
	language string
	cache    map[string]string
	mu       sync.RWMutex
}

// NewEnglishStemmer creates a caching English stemmer.
func NewEnglishStemmer() *EnglishStemmer {
	return &EnglishStemmer{
		language: "english",
		cache:    make(map[string]string),
	}
}

// Stem returns the stemmed form of a word. Stemming failures fall back to
// the lower-cased input.
func (s *EnglishStemmer) Stem(word string) string {
	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" {
		return ""
	}

	s.mu.RLock()
	cached, found := s.cache[normalized]
	s.mu.RUnlock()
	if found {
		return cached
	}

	stemmed, err := snowball.Stem(normalized, s.language, true)
	if err != nil {
		stemmed = normalized
	}

	s.mu.Lock()
	s.cache[normalized] = stemmed
	s.mu.Unlock()

	return stemmed
}

// StemTokens stems every token of a name, dropping empties.
func (s *EnglishStemmer) StemTokens(name string) []string {
	fields := strings.Fields(strings.ToLower(name))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if stemmed := s.Stem(f); stemmed != "" {
			out = append(out, stemmed)
		}
	}
	return out
}
