package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dcedit/internal/dircolors"
	"dcedit/internal/errors"
	"dcedit/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Reload is delivered each time the watched file is re-parsed
type Reload struct {
	Path     string
	Doc      *dircolors.Document
	Warnings []dircolors.Warning
	Err      error
	Time     time.Time
}

// Watcher re-parses a single dircolors file whenever it changes
type Watcher struct {
	// Absolute path of the watched file
	path string

	// Quiet period before a burst of events triggers a reload
	debounce time.Duration

	// Channel to deliver reloads
	reloads chan Reload

	// Channel to signal stop
	stopChan chan struct{}

	// Closed when the event loop exits
	done chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
	closed  bool
}

// New creates a watcher for path. The parent directory is watched rather
// than the file, so editors that save by renaming a temporary file are seen.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewFileError("invalid path", path, errors.InvalidPath, err)
	}
	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.NewFileError("error accessing directory", dir, errors.FileNotFound, err)
	}
	if !info.IsDir() {
		return nil, errors.NewFileError("not a directory", dir, errors.InvalidPath, nil)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, errors.Wrapf(err, "failed to add directory %s to watcher", dir)
	}

	return &Watcher{
		path:      abs,
		debounce:  debounce,
		reloads:   make(chan Reload, 10),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Reloads returns the channel that delivers reloads. It is closed by Stop.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Start begins watching until ctx is done or Stop is called
func (w *Watcher) Start(ctx context.Context) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.closed {
		return errors.New("watcher is stopped")
	}
	if w.running {
		return errors.New("watcher already running")
	}
	w.running = true

	go w.loop(ctx)

	log.LogWithFields(log.F("path", w.path)).Info("Watching dircolors file")
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if w.debounce <= 0 {
				w.reload()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-ctx.Done():
			return

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) reload() {
	doc, warnings, err := dircolors.ParseFile(w.path)
	r := Reload{Path: w.path, Doc: doc, Warnings: warnings, Err: err, Time: time.Now()}
	if err != nil {
		log.LogWithError(err).Warn("reload failed")
	} else {
		log.LogWithFields(log.F("path", w.path), log.F("entries", doc.Len())).Debug("reloaded dircolors file")
	}

	// Never block the event loop on a slow consumer
	select {
	case w.reloads <- r:
	default:
		log.LogWithFields(log.F("path", w.path)).Warn("Reload channel is full, dropped reload")
	}
}

// Stop halts watching and closes the reload channel
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.closed {
		return
	}
	w.closed = true

	close(w.stopChan)
	if w.running {
		<-w.done
		w.running = false
	}
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	close(w.reloads)

	log.Debug("Watcher stopped.")
}

// IsRunning reports whether the event loop is active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
