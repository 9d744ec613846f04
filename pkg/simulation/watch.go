package simulation

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// ConfigWatcher reloads a config file whenever it changes on disk and
// publishes the validated result on Updates. Invalid files are reported on
// Errors and otherwise ignored, so a half-saved file never reaches the
// simulation.
type ConfigWatcher struct {
	Updates chan *Config
	Errors  chan error

	path       string
	schemaFile string
	watcher    *fsnotify.Watcher
	closeCh    chan struct{}
	done       chan struct{}
	once       sync.Once
}

// NewConfigWatcher starts watching path. schemaFile follows LoadConfig.
func NewConfigWatcher(path, schemaFile string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors often replace the file instead of writing it, so watch the
	// directory and filter on the name.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		Updates:    make(chan *Config, 1),
		Errors:     make(chan error, 1),
		path:       abs,
		schemaFile: schemaFile,
		watcher:    w,
		closeCh:    make(chan struct{}),
		done:       make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

// Close stops the watcher. Updates and Errors are closed once it returns.
func (cw *ConfigWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.closeCh)
		err = cw.watcher.Close()
		<-cw.done
	})
	return err
}

func (cw *ConfigWatcher) run() {
	defer func() {
		close(cw.Updates)
		close(cw.Errors)
		close(cw.done)
	}()

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(reloadDebounce)

		case <-pending:
			pending = nil
			cfg, err := LoadConfig(cw.path, cw.schemaFile)
			if err != nil {
				cw.publishError(err)
				continue
			}
			select {
			case cw.Updates <- cfg:
			case <-cw.closeCh:
				return
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.publishError(err)

		case <-cw.closeCh:
			return
		}
	}
}

// publishError drops the error when the previous one was not consumed yet.
func (cw *ConfigWatcher) publishError(err error) {
	select {
	case cw.Errors <- err:
	default:
	}
}
