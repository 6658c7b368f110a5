package fswatcher

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"
)

const MIN_INTERVAL = time.Millisecond * 20

// fsPoller is polling implementation of FsWatcher interface
type fsPoller struct {
	// watched files and dirs
	watches map[string]struct{}
	// last seen info of every file inside watched paths
	files      map[string]fs.FileInfo
	events     chan Event
	errors     chan error
	done       chan struct{}
	shouldSkip func(path string, d fs.DirEntry) bool
	fsys       fs.FS
	running    bool

	mu        *sync.Mutex
	closed    bool
	closeOnce sync.Once
}

func (p *fsPoller) AddShouldSkipHook(fn func(path string, d fs.DirEntry) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shouldSkip = fn
}

// Add adds name into the list of the watched paths. Files inside a
// directory are tracked unless the skip hook rejects them.
func (p *fsPoller) Add(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errors.New("poller is closed")
	}

	list, err := p.list(name)
	if err != nil {
		return err
	}

	for fname, fi := range list {
		p.files[fname] = fi
	}
	p.watches[name] = struct{}{}

	return nil
}

// list returns name's FileInfo if it is a file, or the FileInfo of every
// file below it if it is a directory.
func (p *fsPoller) list(name string) (map[string]fs.FileInfo, error) {
	files := map[string]fs.FileInfo{}

	info, err := fs.Stat(p.fsys, name)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		files[name] = info
		return files, nil
	}

	err = fs.WalkDir(p.fsys, name, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p.shouldSkip != nil && p.shouldSkip(path, d) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		files[path] = fi
		return nil
	})

	return files, err
}

// scanForChanges compares watched paths with the last scan and sends an
// event for every created, written or removed file.
func (p *fsPoller) scanForChanges() {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := map[string]fs.FileInfo{}
	for path := range p.watches {
		files, err := p.list(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				delete(p.watches, path)
				continue
			}
			p.sendError(err)
			continue
		}
		for name, fi := range files {
			current[name] = fi
		}
	}

	for name, old := range p.files {
		fi, ok := current[name]
		switch {
		case !ok:
			delete(p.files, name)
			p.sendEvent(Event{Op: Remove, Name: name})
		case changed(old, fi):
			p.files[name] = fi
			p.sendEvent(Event{Op: Write, Name: name})
		}
	}

	for name, fi := range current {
		if _, ok := p.files[name]; ok {
			continue
		}
		p.files[name] = fi
		p.sendEvent(Event{Op: Create, Name: name})
	}
}

func changed(old, fi fs.FileInfo) bool {
	return !old.ModTime().Equal(fi.ModTime()) || old.Size() != fi.Size()
}

// sendEvent blocks until the event is received or the poller is closed
func (p *fsPoller) sendEvent(e Event) {
	select {
	case p.events <- e:
	case <-p.done:
	}
}

func (p *fsPoller) sendError(err error) {
	select {
	case p.errors <- fmt.Errorf("fswatcher: %w", err):
	case <-p.done:
	}
}

// Start polls watched paths every interval until the poller is closed.
func (p *fsPoller) Start(interval time.Duration) error {
	if interval < MIN_INTERVAL {
		interval = MIN_INTERVAL
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return errors.New("poller is closed")
	}
	if p.running {
		p.mu.Unlock()
		return errors.New("watcher is already running")
	}
	p.running = true
	p.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return nil
		case <-ticker.C:
			p.scanForChanges()
		}
	}
}

// Remove stops tracking name
func (p *fsPoller) Remove(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.watches, name)
	delete(p.files, name)
	return nil
}

// Close stops Start and unblocks pending sends
func (p *fsPoller) Close() error {
	p.closeOnce.Do(func() { close(p.done) })

	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.running = false
	return nil
}

func (p *fsPoller) Errors() <-chan error {
	return p.errors
}

func (p *fsPoller) Events() <-chan Event {
	return p.events
}
