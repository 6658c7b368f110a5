package convert

import (
	"context"
	"io/fs"

	"github.com/flytaly/scrapmd/pkg/document"
	"github.com/flytaly/scrapmd/pkg/fswatcher"
)

// EventSource is the reading side of a fswatcher.FsWatcher
type EventSource interface {
	Events() <-chan fswatcher.Event
	Errors() <-chan error
}

// WatchEvents reconverts documents reported by w until ctx is done.
// Conversion errors are logged, they don't stop the loop.
func (c *Converter) WatchEvents(ctx context.Context, w EventSource, fsys fs.FS, root string) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-w.Events():
			c.processEvent(fsys, root, event)
		case err := <-w.Errors():
			c.log.Error("%s", err)
		}
	}
}

func (c *Converter) processEvent(fsys fs.FS, root string, event fswatcher.Event) {
	if !document.IsDocument(event.Name) {
		return
	}
	switch event.Op {
	case fswatcher.Create, fswatcher.Write:
		if _, err := c.ConvertFile(fsys, root, event.Name); err != nil {
			c.log.Error("Couldn't convert %s: %v", event.Name, err)
		}
	case fswatcher.Remove:
		c.log.Warning("%s was removed, its output is kept", event.Name)
	}
}
