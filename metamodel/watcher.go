package metamodel

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/peergen/errors"
	"github.com/teranos/peergen/logger"
)

// Watcher watches a model file for changes and triggers regeneration
// callbacks. Rapid successive writes (editor save bursts) are debounced.
type Watcher struct {
	path           string
	watcher        *fsnotify.Watcher
	callbacks      []ChangeCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// ChangeCallback is invoked with the model path after a debounced change.
type ChangeCallback func(path string) error

// NewWatcher creates a watcher for the given model file.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating fsnotify watcher")
	}

	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, errors.Wrapf(err, "watching model file %s", path)
	}

	return &Watcher{
		path:           path,
		watcher:        fsw,
		callbacks:      make([]ChangeCallback, 0),
		debouncePeriod: 500 * time.Millisecond,
	}, nil
}

// OnChange registers a callback to run after the model file changes.
func (w *Watcher) OnChange(callback ChangeCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching for model file changes.
func (w *Watcher) Start() {
	go w.watchLoop()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only react to Write or Create; editors that replace the file
			// emit Create for the new inode.
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				logger.Debugw("Model watcher detected change",
					logger.FieldFile, event.Name,
					"op", event.Op.String())
				w.scheduleReload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Model watcher error",
				logger.FieldError, err)
		}
	}
}

// scheduleReload debounces rapid file changes before firing callbacks.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		if err := w.reload(); err != nil {
			logger.Errorw("Model change callback failed",
				logger.FieldModel, w.path,
				logger.FieldError, err)
		}
	})
}

func (w *Watcher) reload() error {
	logger.Infow("Model file changed, regenerating",
		logger.FieldModel, w.path)

	w.mu.RLock()
	callbacks := make([]ChangeCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, callback := range callbacks {
		if err := callback(w.path); err != nil {
			// Keep watching: a broken edit should not kill watch mode,
			// the next save gets another chance.
			logger.Errorw("Regeneration failed",
				logger.FieldModel, w.path,
				logger.FieldError, err)
		}
	}
	return nil
}

// Stop stops watching for model changes.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
