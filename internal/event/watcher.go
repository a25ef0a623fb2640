package event

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches feed files and emits a ChangeEvent after writes,
// debounced so editors that write in bursts trigger a single reload.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]time.Time
	changes chan ChangeEvent
	mu      sync.RWMutex
	done    chan struct{}
}

func NewFileWatcher() (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		files:   make(map[string]time.Time),
		changes: make(chan ChangeEvent, 10),
		done:    make(chan struct{}),
	}

	go fw.watch()
	return fw, nil
}

// Changes returns the channel change notifications are delivered on
func (fw *FileWatcher) Changes() <-chan ChangeEvent {
	return fw.changes
}

func (fw *FileWatcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, exists := fw.files[absPath]; exists {
		return nil // Already watching
	}

	if err := fw.watcher.Add(absPath); err != nil {
		return err
	}

	fw.files[absPath] = time.Now()
	return nil
}

func (fw *FileWatcher) RemoveFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, exists := fw.files[absPath]; !exists {
		return nil // Not watching
	}

	if err := fw.watcher.Remove(absPath); err != nil {
		return err
	}

	delete(fw.files, absPath)
	return nil
}

func (fw *FileWatcher) watch() {
	debounce := make(map[string]*time.Timer)

	for {
		select {
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				// Debounce rapid events
				if timer, exists := debounce[ev.Name]; exists {
					timer.Stop()
				}

				debounce[ev.Name] = time.AfterFunc(100*time.Millisecond, func() {
					fw.mu.RLock()
					_, watching := fw.files[ev.Name]
					fw.mu.RUnlock()

					if watching {
						select {
						case fw.changes <- ChangeEvent{Path: ev.Name, Timestamp: time.Now()}:
						default:
							// Channel full, drop notification
						}
					}
					delete(debounce, ev.Name)
				})
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Keep watching through transient errors
			_ = err

		case <-fw.done:
			return
		}
	}
}

func (fw *FileWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}
