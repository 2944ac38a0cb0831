// Package watch reports changes to documents in the application directory so
// a UI can refresh views when another process rewrites a file.
package watch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/ucanduit/ucanduit/pkg/persistence"
)

type Op string

const (
	OpCreate = Op("create")
	OpWrite  = Op("write")
	OpRemove = Op("remove")
	OpRename = Op("rename")
)

type Event struct {
	Filename string `json:"filename"`
	Op       Op     `json:"op"`
}

type Watcher struct {
	dir string
	fsw *fsnotify.Watcher
}

// New starts watching dir, which must already exist.
func New(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{dir: dir, fsw: fsw}, nil
}

// Run calls fn for every document event until ctx is done or the watcher
// fails. The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, fn func(Event)) error {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if e, ok := translate(ev); ok {
				fn(e)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).WithField("dir", w.dir).Warn("watch error")
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func translate(ev fsnotify.Event) (Event, bool) {
	name := filepath.Base(ev.Name)
	if persistence.IsReserved(name) {
		return Event{}, false
	}

	var op Op
	switch {
	case ev.Has(fsnotify.Create):
		op = OpCreate
	case ev.Has(fsnotify.Write):
		op = OpWrite
	case ev.Has(fsnotify.Remove):
		op = OpRemove
	case ev.Has(fsnotify.Rename):
		op = OpRename
	default:
		// chmod only
		return Event{}, false
	}

	return Event{Filename: name, Op: op}, true
}
