package fswatcher

import (
	"io/fs"
	"sync"
	"time"
)

// Event represents a single file system notification
type Event struct {
	Name string // Path to the file
	Op   Op     // File operation that triggered the event.
}

// Op describes a type of event
type Op uint32

// Operations
const (
	Create Op = 1 << iota
	Write
	Remove
)

func (op Op) String() string {
	switch op {
	case Create:
		return "CREATE"
	case Write:
		return "WRITE"
	case Remove:
		return "REMOVE"
	}
	return "?"
}

// FsWatcher reports changes of watched documents
type FsWatcher interface {
	Events() <-chan Event
	Errors() <-chan error
	Add(name string) error
	Remove(name string) error
	Close() error
	Start(interval time.Duration) error
	AddShouldSkipHook(func(path string, d fs.DirEntry) bool)
}

// NewFsPoller creates a polling watcher over fsys
func NewFsPoller(fsys fs.FS) FsWatcher {
	return newPoller(fsys)
}

func newPoller(fsys fs.FS) *fsPoller {
	return &fsPoller{
		events:  make(chan Event),
		errors:  make(chan error),
		done:    make(chan struct{}),
		fsys:    fsys,
		watches: map[string]struct{}{},
		files:   map[string]fs.FileInfo{},
		mu:      new(sync.Mutex),
	}
}
