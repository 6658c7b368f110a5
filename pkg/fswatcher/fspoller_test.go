package fswatcher

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var minWait = MIN_INTERVAL*4 + time.Millisecond*50

var j = path.Join

// return fs with empty files and folders from a slice with filenames
func createFS(files []string) fstest.MapFS {
	ff := fstest.MapFS{}
	for _, v := range files {
		if filepath.Ext(v) == "" { // is dir
			ff[v] = &fstest.MapFile{Mode: fs.ModeDir}
			continue
		}
		ff[v] = &fstest.MapFile{}
	}
	return ff
}

// mutate changes fsys while no scan is running
func mutate(p *fsPoller, fn func()) {
	time.Sleep(time.Millisecond * 2)
	p.mu.Lock()
	defer p.mu.Unlock()
	fn()
}

func TestAdd(t *testing.T) {
	t.Run("add files", func(t *testing.T) {
		root := "path"

		fsys := createFS([]string{
			j(root, "notes"),
			j(root, "notes", "note.txt"),
			j(root, "notes", "some_dir"),
			j(root, "notes", "some_dir", "note2.txt"),
			j(root, "notes", "ignored_dir"),
		})
		fsys[j(root, "notes", "ignored_dir", "file1.txt")] = &fstest.MapFile{}

		p := newPoller(fsys)
		p.AddShouldSkipHook(func(path string, d fs.DirEntry) bool {
			return d.IsDir() && d.Name() == "ignored_dir"
		})
		require.NoError(t, p.Add(j(root, "notes")))

		assert.Equal(t, map[string]struct{}{j(root, "notes"): {}}, p.watches)
		assert.Len(t, p.files, 2)
		assert.Contains(t, p.files, j(root, "notes", "note.txt"))
		assert.Contains(t, p.files, j(root, "notes", "some_dir", "note2.txt"))
	})

	t.Run("add single file", func(t *testing.T) {
		p := newPoller(createFS([]string{"page.txt"}))
		require.NoError(t, p.Add("page.txt"))
		assert.Contains(t, p.files, "page.txt")
	})

	t.Run("emit error if closed", func(t *testing.T) {
		p := newPoller(fstest.MapFS{})
		p.Close()
		err := p.Add("file")
		assert.EqualError(t, err, "poller is closed")
	})

	t.Run("file is not exist", func(t *testing.T) {
		p := newPoller(fstest.MapFS{})
		err := p.Add("some_folder")
		assert.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
	})
}

func TestRemove(t *testing.T) {
	fsys := createFS([]string{"path1.txt", "path2.txt"})
	p := newPoller(fsys)
	require.NoError(t, p.Add("path1.txt"))
	require.NoError(t, p.Add("path2.txt"))
	require.NoError(t, p.Remove("path1.txt"))

	assert.Contains(t, p.files, "path2.txt")
	assert.NotContains(t, p.files, "path1.txt")
	assert.NotContains(t, p.watches, "path1.txt")
}

func TestClose(t *testing.T) {
	p := newPoller(createFS([]string{"some_path"}))
	started := make(chan error, 1)
	go func() { started <- p.Start(time.Second) }()

	time.Sleep(time.Millisecond)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close(), "second close is a no-op")

	select {
	case <-time.After(time.Second):
		t.Fatal("Start should return after Close")
	case <-started:
	}
	assert.True(t, p.closed)
	assert.Error(t, p.Start(0), "closed poller can't be restarted")
}

func TestConcurrentClose(t *testing.T) {
	p := newPoller(createFS([]string{"some_path"}))
	go p.Start(0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Close())
		}()
	}
	wg.Wait()

	assert.True(t, p.closed)
	select {
	case <-p.done:
	default:
		t.Error("'done' should be closed")
	}
}

func TestEvent(t *testing.T) {
	t.Run("CREATE", func(t *testing.T) {
		fsys := createFS([]string{"file.txt"})
		p := newPoller(fsys)
		require.NoError(t, p.Add("."))

		newFiles := []string{"newFile1.txt", "newFile2.txt", j("newFolder", "file.txt")}

		evs := map[string]Event{}
		for _, name := range newFiles {
			evs[name] = Event{Op: Create, Name: name}
		}
		wait := ExpectEvents(t, p, minWait, evs)

		go p.Start(0)
		go mutate(p, func() {
			for _, name := range newFiles {
				fsys[name] = &fstest.MapFile{}
			}
		})

		wait()
		for _, f := range newFiles {
			assert.Contains(t, p.files, f, "should contain path: %s", f)
		}
	})

	t.Run("REMOVE", func(t *testing.T) {
		fsys := createFS([]string{"file1.txt", "file2.txt", "file3.txt"})
		p := newPoller(fsys)
		require.NoError(t, p.Add("."))

		wait := ExpectEvents(t, p, minWait, map[string]Event{
			"file2.txt": {Op: Remove, Name: "file2.txt"},
		})

		go p.Start(0)
		go mutate(p, func() { delete(fsys, "file2.txt") })

		wait()
		assert.NotContains(t, p.files, "file2.txt")
		assert.Contains(t, p.files, "file1.txt")
	})

	t.Run("REMOVE watched path", func(t *testing.T) {
		fsys := createFS([]string{
			j("folder1", "file1.txt"),
			j("temp", "file2.txt"),
		})
		p := newPoller(fsys)
		require.NoError(t, p.Add("temp"))
		require.NoError(t, p.Add("folder1"))

		wait := ExpectEvents(t, p, minWait, map[string]Event{
			j("temp", "file2.txt"): {Op: Remove, Name: j("temp", "file2.txt")},
		})

		go p.Start(0)
		go mutate(p, func() {
			delete(fsys, j("temp", "file2.txt"))
			delete(fsys, "temp")
		})

		wait()
		assert.NotContains(t, p.files, j("temp", "file2.txt"))
		assert.NotContains(t, p.watches, "temp", "shouldn't watch removed path")
		assert.Contains(t, p.watches, "folder1")
	})

	t.Run("WRITE", func(t *testing.T) {
		fsys := createFS([]string{"file1.txt", "file2.txt"})
		p := newPoller(fsys)
		require.NoError(t, p.Add("."))

		wait := ExpectEvents(t, p, minWait, map[string]Event{
			"file2.txt": {Op: Write, Name: "file2.txt"},
		})

		go p.Start(0)
		go mutate(p, func() {
			fsys["file2.txt"] = &fstest.MapFile{Data: []byte("changed"), ModTime: time.Now()}
		})

		wait()
		assert.EqualValues(t, len("changed"), p.files["file2.txt"].Size())
	})
}

func TestShouldSkipHook(t *testing.T) {
	skip := []string{"movie.mp4", "skip.md"}
	noskip := []string{"note.txt", j("dir", "page.sb")}
	fsys := createFS(noskip)
	for _, f := range skip {
		fsys[f] = &fstest.MapFile{}
	}
	p := newPoller(fsys)
	p.AddShouldSkipHook(func(path string, d fs.DirEntry) bool {
		if d.IsDir() {
			return false
		}
		ext := filepath.Ext(d.Name())
		return ext != ".txt" && ext != ".sb"
	})
	require.NoError(t, p.Add("."))

	for _, f := range skip {
		assert.NotContains(t, p.files, f)
	}
	for _, f := range noskip {
		assert.Contains(t, p.files, f)
	}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "CREATE", Create.String())
	assert.Equal(t, "WRITE", Write.String())
	assert.Equal(t, "REMOVE", Remove.String())
	assert.Equal(t, "?", Op(0).String())
}

func TestNewFsPoller(t *testing.T) {
	w := NewFsPoller(os.DirFS(t.TempDir()))
	require.NoError(t, w.Add("."))
	require.NoError(t, w.Close())
}

// ExpectEvents collects events until every wanted event has arrived or
// await has passed, then closes the poller. The returned func blocks until
// the collector is done.
func ExpectEvents(t *testing.T, p *fsPoller, await time.Duration, want map[string]Event) func() {
	t.Helper()
	collected := make(chan map[string]Event, 1)

	go func() {
		got := map[string]Event{}
		timeout := time.After(await)
		defer func() {
			p.Close()
			collected <- got
		}()
		for len(got) < len(want) {
			select {
			case event := <-p.Events():
				got[event.Name] = event
			case err := <-p.Errors():
				t.Errorf("watcher error event: %s", err)
				return
			case <-timeout:
				t.Errorf("Events were not triggered in time")
				return
			}
		}
	}()

	return func() {
		got := <-collected
		assert.Equal(t, want, got, "should trigger events")
	}
}
