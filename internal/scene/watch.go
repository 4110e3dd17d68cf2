package scene

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a catalog file when it changes on disk. Only the latest
// successfully parsed catalog is kept until the frame loop picks it up.
type Watcher struct {
	path     string
	debounce time.Duration
	fs       *fsnotify.Watcher
	log      *zap.Logger
	updates  chan *Catalog
	done     chan struct{}
}

// Watch starts watching path. The parent directory is watched so editors
// that replace the file on save are still seen.
func Watch(path string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w := &Watcher{
		path:     abs,
		debounce: debounce,
		fs:       fw,
		log:      log,
		updates:  make(chan *Catalog, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Updates delivers reloaded catalogs. Receive without blocking.
func (w *Watcher) Updates() <-chan *Catalog {
	return w.updates
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
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
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("catalog watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			c, err := LoadCatalog(w.path)
			if err != nil {
				w.log.Warn("catalog reload failed", zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.log.Info("catalog reloaded", zap.String("path", w.path), zap.Int("bodies", len(c.Bodies)))
			w.publish(c)
		}
	}
}

func (w *Watcher) publish(c *Catalog) {
	select {
	case w.updates <- c:
		return
	default:
	}
	// drop the stale one nobody picked up yet
	select {
	case <-w.updates:
	default:
	}
	w.updates <- c
}
