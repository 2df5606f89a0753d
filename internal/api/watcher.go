package api

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tools4freee/t4f/internal/log"
)

// ConfigChangeType indicates what happened to the config file.
type ConfigChangeType string

const (
	ConfigChangeWritten ConfigChangeType = "written"
	ConfigChangeRemoved ConfigChangeType = "removed"
)

// ConfigChange is a config file change notification.
type ConfigChange struct {
	Type ConfigChangeType `json:"type"`
	Path string           `json:"path"`
}

// ConfigWatcherSubscriber receives config change notifications.
type ConfigWatcherSubscriber interface {
	OnConfigChange(change ConfigChange)
}

const debounceDelay = 100 * time.Millisecond

// ConfigWatcher watches the config directory and notifies subscribers when
// the config file changes. The directory is watched rather than the file so
// that editors and the store's write-then-rename saves are both seen.
type ConfigWatcher struct {
	watcher     *fsnotify.Watcher
	dir         string
	file        string
	mu          sync.RWMutex
	subscribers []ConfigWatcherSubscriber
	timer       *time.Timer
	pending     ConfigChange
	timerMu     sync.Mutex
	stopCh      chan struct{}
	stopped     bool // Once stopped, cannot restart
	running     bool
}

// NewConfigWatcher creates a watcher for the config file at path.
func NewConfigWatcher(path string) (*ConfigWatcher, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &ConfigWatcher{
		watcher: watcher,
		dir:     filepath.Dir(path),
		file:    filepath.Base(path),
		stopCh:  make(chan struct{}),
	}, nil
}

// Subscribe adds a subscriber to receive config change notifications.
func (cw *ConfigWatcher) Subscribe(sub ConfigWatcherSubscriber) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.subscribers = append(cw.subscribers, sub)
}

// Start begins watching. The config directory must exist.
func (cw *ConfigWatcher) Start() error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	if cw.stopped {
		cw.mu.Unlock()
		return fmt.Errorf("config watcher cannot be restarted after stop")
	}
	cw.running = true
	cw.mu.Unlock()

	if err := cw.watcher.Add(cw.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cw.dir, err)
	}

	go cw.run()
	return nil
}

// Stop stops watching for changes.
func (cw *ConfigWatcher) Stop() error {
	cw.mu.Lock()
	if cw.stopped {
		cw.mu.Unlock()
		return nil
	}
	wasRunning := cw.running
	cw.running = false
	cw.stopped = true
	cw.mu.Unlock()

	cw.timerMu.Lock()
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timerMu.Unlock()

	if wasRunning {
		close(cw.stopCh)
	}
	return cw.watcher.Close()
}

func (cw *ConfigWatcher) run() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.L().Warn().Err(err).Msg("config watcher error")

		case <-cw.stopCh:
			return
		}
	}
}

func (cw *ConfigWatcher) handleEvent(event fsnotify.Event) {
	change, ok := cw.classifyChange(event)
	if !ok {
		return
	}

	// Debounce: coalesce the burst of events a single save produces.
	cw.timerMu.Lock()
	defer cw.timerMu.Unlock()
	cw.pending = change
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(debounceDelay, cw.emit)
}

func (cw *ConfigWatcher) emit() {
	cw.mu.RLock()
	if cw.stopped {
		cw.mu.RUnlock()
		return
	}
	subs := make([]ConfigWatcherSubscriber, len(cw.subscribers))
	copy(subs, cw.subscribers)
	cw.mu.RUnlock()

	cw.timerMu.Lock()
	change := cw.pending
	cw.timerMu.Unlock()

	for _, sub := range subs {
		sub.OnConfigChange(change)
	}
}

// classifyChange reports whether event concerns the config file and how.
func (cw *ConfigWatcher) classifyChange(event fsnotify.Event) (ConfigChange, bool) {
	base := filepath.Base(event.Name)
	if base != cw.file || strings.HasSuffix(base, "~") {
		return ConfigChange{}, false
	}

	change := ConfigChange{Path: event.Name}
	switch {
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		change.Type = ConfigChangeWritten
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		change.Type = ConfigChangeRemoved
	default:
		return ConfigChange{}, false
	}
	return change, true
}
