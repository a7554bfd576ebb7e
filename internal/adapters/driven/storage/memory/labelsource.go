package memory

import (
	"sync"

	"github.com/versewell/lumen/internal/core/ports/driven"
)

// Ensure LabelSource implements the interface.
var _ driven.LabelSource = (*LabelSource)(nil)

// LabelSource is an in-memory implementation of driven.LabelSource.
type LabelSource struct {
	mu     sync.RWMutex
	labels map[string]string
}

// NewLabelSource creates a new in-memory label source.
func NewLabelSource() *LabelSource {
	return &LabelSource{labels: make(map[string]string)}
}

// Set stores an override label for a slug.
func (s *LabelSource) Set(slug, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels[slug] = label
}

// Label returns the override label for a slug, if one exists.
func (s *LabelSource) Label(slug string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	label, ok := s.labels[slug]
	return label, ok
}
