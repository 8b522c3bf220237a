package viewer

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/phaseview/internal/engine/texture"
)

// Watcher re-decodes an image file whenever it changes on disk and hands the
// result over a channel. Decoding happens on the watcher goroutine; the
// receiver only swaps pointers.
type Watcher struct {
	path   string
	fs     *fsnotify.Watcher
	images chan *image.RGBA
	done   chan struct{}
	wg     sync.WaitGroup
	log    *zap.Logger
}

// NewWatcher starts watching path. The parent directory is watched so that
// editors which replace the file by rename are still noticed.
func NewWatcher(path string, log *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:   abs,
		fs:     fsw,
		images: make(chan *image.RGBA, 1),
		done:   make(chan struct{}),
		log:    log.With(zap.String("path", abs)),
	}
	w.wg.Add(1)
	go w.loop()

	w.log.Info("watching texture")
	return w, nil
}

// Images delivers freshly decoded images. Only the newest pending image is
// kept.
func (w *Watcher) Images() <-chan *image.RGBA {
	return w.images
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	img, err := texture.Decode(w.path)
	if err != nil {
		// Usually a partially written file; the next write event retries.
		w.log.Warn("texture reload failed", zap.Error(err))
		return
	}

	// Drop a stale image the render thread has not picked up yet.
	select {
	case <-w.images:
	default:
	}
	select {
	case w.images <- img:
	case <-w.done:
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}
