package vector

import (
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Watcher polls the config file and republishes the tunables when it
// changes. It is the only writer of its TunableStore.
type Watcher struct {
	file  *ConfigFile
	store *TunableStore

	// modTime and size identify the last version loaded. Only the scheduler
	// goroutine touches them.
	modTime time.Time
	size    int64
	loaded  bool

	dirty atomic.Bool

	// ioErrors throttles reports of a missing or unreadable file, which
	// would otherwise repeat every tick.
	ioErrors rate.Sometimes
}

// NewWatcher creates a watcher publishing to store.
func NewWatcher(file *ConfigFile, store *TunableStore) *Watcher {
	return &Watcher{
		file:     file,
		store:    store,
		ioErrors: rate.Sometimes{First: 1, Interval: 10 * time.Second},
	}
}

// Invalidate forces the next check to reload even if the file looks
// unchanged.
func (w *Watcher) Invalidate() {
	w.dirty.Store(true)
}

// Run checks the file once. It implements Runnable.
func (w *Watcher) Run() {
	w.Check()
}

// Check reloads the file if its modification time changed since the last
// load and reports whether a new snapshot was published.
func (w *Watcher) Check() bool {
	info, err := w.file.Stat()
	if err != nil {
		w.ioErrors.Do(func() {
			slog.Warn("vector: cannot read config", "path", w.file.Path(), "error", err)
		})
		return false
	}
	forced := w.dirty.Swap(false)
	if w.loaded && !forced && info.ModTime().Equal(w.modTime) && info.Size() == w.size {
		return false
	}

	prev := w.store.Load()
	next, err := w.file.Load(prev)
	if err != nil {
		slog.Warn("vector: config has invalid values, keeping previous ones", "path", w.file.Path(), "error", err)
	}
	w.modTime, w.size, w.loaded = info.ModTime(), info.Size(), true

	if next == prev {
		return false
	}
	w.store.Store(next)
	slog.Info("vector: config reloaded", "tunables", next.String())
	return true
}
