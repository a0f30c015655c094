package summary

import (
	"log"
	"sync"
)

// Summarizer condenses a block of descriptive text into a short narrative.
// Implementations may be backed by an external model; absence or failure is
// always recoverable via the deterministic fallback in Composer.
type Summarizer interface {
	Summarize(text string, maxLen, minLen int) (string, error)
}

// Loader initializes a Summarizer at most once, on first use, and shares
// the instance across all subsequent callers. Safe for concurrent use.
type Loader struct {
	once  sync.Once
	build func() (Summarizer, error)
	s     Summarizer
}

// NewLoader wraps a Summarizer factory. The factory runs lazily on the
// first Get call, never more than once.
func NewLoader(build func() (Summarizer, error)) *Loader {
	return &Loader{build: build}
}

// Get returns the shared Summarizer, initializing it if needed. The second
// return value is false when the capability is unavailable.
func (l *Loader) Get() (Summarizer, bool) {
	if l == nil || l.build == nil {
		return nil, false
	}
	l.once.Do(func() {
		s, err := l.build()
		if err != nil {
			log.Printf("WARN: summarizer unavailable, using fallback summaries: %v", err)
			return
		}
		l.s = s
	})
	return l.s, l.s != nil
}
