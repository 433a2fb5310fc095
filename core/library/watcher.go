package library

import (
	"path/filepath"
	"time"

	"tunevault/core/media"
	"tunevault/logger"

	"github.com/fsnotify/fsnotify"
)

// Watcher follows the storage root and registers audio files as they appear.
// It complements Scanner, which handles files present before startup.
type Watcher struct {
	scanner *Scanner
	watcher *fsnotify.Watcher
	quit    chan struct{}
}

// NewWatcher creates a Watcher over the scanner's storage root.
func NewWatcher(scanner *Scanner) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		scanner: scanner,
		watcher: fsWatcher,
		quit:    make(chan struct{}),
	}, nil
}

// Start runs an initial scan and then watches for new files until Stop.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.scanner.root); err != nil {
		return err
	}

	registered, err := w.scanner.Scan()
	if err != nil {
		return err
	}
	if registered > 0 {
		logger.Info("Library scan registered new songs", logger.Int("count", registered))
	}

	go w.handleEvents()
	return nil
}

// Stop closes the watcher.
func (w *Watcher) Stop() {
	close(w.quit)
	w.watcher.Close()
}

func (w *Watcher) handleEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			if !media.IsAllowedAudio(name) {
				continue
			}
			// Give the writer a moment to finish before reading tags.
			// RegisterFile is idempotent on the stored path.
			time.Sleep(500 * time.Millisecond)
			if _, err := w.scanner.RegisterFile(name); err != nil {
				logger.Warn("Failed to register watched file",
					logger.String("file", name), logger.ErrorField(err))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Library watcher error", logger.ErrorField(err))
		case <-w.quit:
			return
		}
	}
}
