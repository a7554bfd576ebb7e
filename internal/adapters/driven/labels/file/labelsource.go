// Package file provides a TOML-backed label override source with optional
// hot reloading. Editorial teams maintain the override file outside this
// module; the engine only ever reads it.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/versewell/lumen/internal/core/ports/driven"
	"github.com/versewell/lumen/internal/logger"
)

// Ensure LabelSource implements the interface.
var _ driven.LabelSource = (*LabelSource)(nil)

// labelFile is the on-disk shape of the override file.
type labelFile struct {
	Labels map[string]string `toml:"labels"`
}

// LabelSource loads category label overrides from a TOML file. The map is
// swapped atomically under the lock on reload, so readers always see a
// complete table.
type LabelSource struct {
	mu       sync.RWMutex
	filePath string
	labels   map[string]string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewLabelSource creates a label source backed by the TOML file at path.
// A missing file is not an error: the source starts empty and picks the
// file up if it appears while watching.
func NewLabelSource(path string) (*LabelSource, error) {
	s := &LabelSource{
		filePath: path,
		labels:   make(map[string]string),
	}
	if err := s.Reload(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Label returns the override label for a slug, if one exists.
func (s *LabelSource) Label(slug string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	label, ok := s.labels[slug]
	return label, ok
}

// Reload re-reads the override file and swaps the table in one step.
func (s *LabelSource) Reload() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var parsed labelFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parsing label file: %w", err)
	}
	if parsed.Labels == nil {
		parsed.Labels = make(map[string]string)
	}

	s.mu.Lock()
	s.labels = parsed.Labels
	s.mu.Unlock()

	logger.Debug("Loaded %d label overrides from %s", len(parsed.Labels), s.filePath)
	return nil
}

// Watch starts reloading the table whenever the file changes. The watcher
// runs until Close is called. Watching the parent directory rather than the
// file itself survives editors that replace the file on save.
func (s *LabelSource) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	dir := filepath.Dir(s.filePath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})
	go s.watchLoop()
	return nil
}

func (s *LabelSource) watchLoop() {
	target := filepath.Clean(s.filePath)
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := s.Reload(); err != nil {
				// A partial write can land mid-save; the next event retries.
				logger.Warn("Label reload failed: %v", err)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Label watcher error: %v", err)
		case <-s.done:
			return
		}
	}
}

// Close stops the watcher, if one was started.
func (s *LabelSource) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	return s.watcher.Close()
}

// Path returns the override file path.
func (s *LabelSource) Path() string {
	return s.filePath
}
