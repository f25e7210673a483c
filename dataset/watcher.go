package dataset

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/atomview/atomview/errors"
)

// Watcher invalidates cached datasets when their files change on
// disk, so a hand-edited or re-downloaded .alog or UPF file takes
// effect without a restart.
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher
	logger  *zap.SugaredLogger

	mu       sync.Mutex
	debounce map[string]*time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

const watcherDebouncePeriod = 500 * time.Millisecond

// NewWatcher builds a Watcher over the store's dataset directories.
// Directories that do not exist yet are skipped; they are picked up
// on the next restart after the first fetch creates them.
func NewWatcher(store *Store, logger *zap.SugaredLogger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "dataset: create fsnotify watcher")
	}

	watched := 0
	for _, dir := range []string{store.LDADir(), store.UPFDir()} {
		if err := fsw.Add(dir); err != nil {
			logger.Debugw("Not watching dataset directory", "dir", dir, "error", err)
			continue
		}
		watched++
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		store:    store,
		watcher:  fsw,
		logger:   logger,
		debounce: make(map[string]*time.Timer),
		ctx:      ctx,
		cancel:   cancel,
	}
	logger.Infow("Dataset watcher created", "directories", watched)
	return w, nil
}

// Start begins processing filesystem events.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.watchLoop()
}

// Stop shuts the watcher down and waits for the event loop to exit.
// Pending debounce timers are cancelled so no invalidation fires
// after Stop returns.
func (w *Watcher) Stop() {
	w.cancel()
	w.watcher.Close()
	w.wg.Wait()
	w.mu.Lock()
	for symbol, t := range w.debounce {
		t.Stop()
		delete(w.debounce, symbol)
	}
	w.mu.Unlock()
	w.logger.Info("Dataset watcher stopped")
}

func (w *Watcher) watchLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !isDatasetFile(event.Name) {
				continue
			}
			w.scheduleInvalidate(event.Name, event.Op.String())

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("Dataset watcher error", "error", err)
		}
	}
}

// scheduleInvalidate debounces rapid event bursts per file, then
// drops the cached element so the next request re-reads it.
func (w *Watcher) scheduleInvalidate(name, op string) {
	symbol, ok := symbolFromFilename(name)
	if !ok {
		w.logger.Debugw("Ignoring dataset file with unknown element", "file", name)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.debounce[symbol]; ok {
		t.Stop()
	}
	w.debounce[symbol] = time.AfterFunc(watcherDebouncePeriod, func() {
		w.logger.Infow("Dataset file changed", "file", filepath.Base(name), "op", op, "symbol", symbol)
		w.store.Invalidate(symbol)
		w.mu.Lock()
		delete(w.debounce, symbol)
		w.mu.Unlock()
	})
}

func isDatasetFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".alog") || strings.HasSuffix(lower, ".upf")
}
