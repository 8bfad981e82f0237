package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/idilsaglam/syncpad/internal/config"
)

// storeWatcher turns fsnotify events on the data directory into update
// loop messages. SQLite writes touch the database file and its WAL
// sidecars, so any write or create on a name starting with the database
// filename counts as a store change.
type storeWatcher struct {
	fs *fsnotify.Watcher
}

func newStoreWatcher(dir string) (*storeWatcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &storeWatcher{fs: fs}, nil
}

// wait blocks until a database file event arrives, returning nil once the
// watcher is closed.
func (w *storeWatcher) wait() tea.Msg {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(filepath.Base(ev.Name), config.DBFileName) {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				return storeChangedMsg{}
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return watchFailedMsg{err: err}
		}
	}
}

func (w *storeWatcher) Close() error {
	return w.fs.Close()
}
