package reload

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher emits the contents of a settings file whenever it changes.
//
// The parent directory is watched rather than the file, so editors and
// deploy tools that replace the file by rename are picked up. Rewrites
// that leave the contents unchanged are not emitted.
type FileWatcher struct {
	path string
}

// NewFileWatcher creates a FileWatcher for path.
func NewFileWatcher(path string) *FileWatcher {
	return &FileWatcher{path: filepath.Clean(path)}
}

// Path returns the watched file.
func (w *FileWatcher) Path() string {
	return w.path
}

// Watch implements Watcher. The file must exist when Watch is called; its
// current contents are the first document.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	initial, err := os.ReadFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", w.path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch directory of %s: %w", w.path, err)
	}

	out := make(chan []byte)
	go w.run(ctx, fsw, initial, out)
	return out, nil
}

func (w *FileWatcher) run(ctx context.Context, fsw *fsnotify.Watcher, last []byte, out chan<- []byte) {
	defer close(out)
	defer fsw.Close()

	if !send(ctx, out, last) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// A file removed mid-replace fails to read; its Create follows.
			data, err := os.ReadFile(w.path)
			if err != nil || bytes.Equal(data, last) {
				continue
			}
			last = data
			if !send(ctx, out, data) {
				return
			}

		case _, ok := <-fsw.Errors:
			if !ok {
				return
			}
		}
	}
}
