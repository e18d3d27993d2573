package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// fileChangedMsg reports that the followed file was modified outside
// the editor.
type fileChangedMsg struct {
	name string
}

// watcher follows at most one file at a time and converts fsnotify
// events into messages. All methods are nil-safe so a failed watcher
// setup degrades to no external-change detection.
type watcher struct {
	fs      *fsnotify.Watcher
	path    string
	changes chan string
}

func newWatcher() *watcher {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("watch: unavailable: %v", err)
		return nil
	}
	w := &watcher{fs: fs, changes: make(chan string, 1)}
	go w.pump()
	return w
}

func (w *watcher) pump() {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			select {
			case w.changes <- ev.Name:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}

// follow switches the watch to path, dropping the previous target. An
// empty path just stops following.
func (w *watcher) follow(path string) {
	if w == nil {
		return
	}
	if w.path != "" {
		w.fs.Remove(w.path)
	}
	w.path = path
	if path == "" {
		return
	}
	if err := w.fs.Add(path); err != nil {
		log.Printf("watch %s: %v", path, err)
		w.path = ""
	}
}

// wait blocks until the followed file changes. Rearmed from Update
// after each delivery.
func (w *watcher) wait() tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		name, ok := <-w.changes
		if !ok {
			return nil
		}
		return fileChangedMsg{name: name}
	}
}

func (w *watcher) close() {
	if w == nil {
		return
	}
	w.fs.Close()
}
