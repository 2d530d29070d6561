package config

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watcher reloads the configuration when the config file changes on
// disk. Editors often produce several filesystem events for one save, so
// events are debounced before a reload is attempted.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onReload func(*Config)
	onError  func(error)

	mu     sync.Mutex
	stopCh chan struct{}
	once   sync.Once
}

// NewWatcher creates a Watcher for the config file at path. onReload is
// invoked with the freshly loaded configuration after each change;
// onError receives load or watch failures and may be nil.
func NewWatcher(path string, onReload func(*Config), onError func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  fw,
		path:     path,
		onReload: onReload,
		onError:  onError,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching the config file.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.path); err != nil {
		return err
	}
	go w.watchLoop()
	return nil
}

// Stop stops the watcher and releases its resources.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()
	})
}

func (w *Watcher) watchLoop() {
	debounce := time.NewTimer(0)
	<-debounce.C
	dirty := false

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			dirty = true
			debounce.Reset(50 * time.Millisecond)

		case <-debounce.C:
			if !dirty {
				continue
			}
			dirty = false
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

func (w *Watcher) reload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := viper.ReadInConfig(); err != nil {
		w.reportError(err)
		return
	}
	cfg, err := Load()
	if err != nil {
		w.reportError(err)
		return
	}
	if w.onReload != nil {
		w.onReload(cfg)
	}
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
