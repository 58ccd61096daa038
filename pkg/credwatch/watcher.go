package credwatch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/risclient/pkg/log"
	"github.com/bft-labs/risclient/pkg/ris"
)

// DefaultDebounce is how long a burst of file events is coalesced
// before the key is reloaded. Editors and secret managers typically
// rewrite the file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// Watcher monitors an API-key file and delivers the trimmed key to a
// callback whenever the file is rewritten. The typical callback swaps
// the client's transport:
//
//	w := credwatch.New(keyPath, func(key string) {
//	    client.SetTransport(ris.NewKeyTransport(endpoint, key, nil, nil))
//	}, logger)
type Watcher struct {
	path     string
	onKey    func(key string)
	logger   log.Logger
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
	wg    sync.WaitGroup
}

// New creates a watcher for the key file at path. A nil logger is
// replaced by a no-op logger.
func New(path string, onKey func(key string), logger log.Logger) *Watcher {
	if logger == nil {
		logger = log.NewNoop()
	}
	return &Watcher{
		path:     path,
		onKey:    onKey,
		logger:   logger,
		debounce: DefaultDebounce,
	}
}

// SetDebounce overrides the event-coalescing delay. Must be called
// before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Start loads the key once, delivers it, and begins watching the file's
// directory for rewrites until the context is cancelled. Watching the
// directory rather than the file itself survives rename-based rewrites.
func (w *Watcher) Start(ctx context.Context) error {
	key, err := ris.ReadKeyFile(w.path)
	if err != nil {
		return err
	}
	w.onKey(key)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return err
	}

	w.logger.Info("watching api key file", log.Str("path", w.path))

	w.wg.Add(1)
	go w.loop(ctx, fw)
	return nil
}

// Wait blocks until the watch loop has exited.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fw.Close()

	base := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("key watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) reload() {
	key, err := ris.ReadKeyFile(w.path)
	if err != nil {
		// Transient during rename-based rewrites; the next event retries.
		w.logger.Warn("api key reload failed", log.Err(err))
		return
	}
	w.logger.Info("api key reloaded", log.Str("path", w.path))
	w.onKey(key)
}
