package document

import (
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileList(t *testing.T) {
	emptyFile := []byte("")

	want := []string{
		filepath.Join("notes", "note.txt"),
		filepath.Join("page.sb"),
		filepath.Join("pages", "page.SCRAPBOX"),
	}

	skipFiles := []string{
		"skip/page.md",
		"skip/video.mp4",
		filepath.Join(".git/f.txt"),
		filepath.Join("node_modules/module/page.txt"),
	}

	fs := fstest.MapFS{
		want[0]: {Data: emptyFile},
		want[1]: {Data: emptyFile},
		want[2]: {Data: emptyFile},
	}

	for _, v := range skipFiles {
		fs[v] = &fstest.MapFile{Data: []byte("")}
	}

	got, err := FileList(fs, ".")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSkipEntry(t *testing.T) {
	fs := fstest.MapFS{
		"node_modules/x.txt": {},
		".hidden/x.txt":      {},
		"notes/x.txt":        {},
		"notes/x.md":         {},
	}
	entries, err := fs.ReadDir(".")
	require.NoError(t, err)

	skipped := map[string]bool{}
	for _, d := range entries {
		skipped[d.Name()] = SkipEntry(d.Name(), d)
	}
	assert.Equal(t, map[string]bool{"node_modules": true, ".hidden": true, "notes": false}, skipped)

	files, err := fs.ReadDir("notes")
	require.NoError(t, err)
	for _, d := range files {
		assert.Equal(t, d.Name() == "x.md", SkipEntry(d.Name(), d), d.Name())
	}
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "notes/page.md", OutputPath("notes/page.txt", false))
	assert.Equal(t, "notes/page.html", OutputPath("notes/page.sb", true))
	assert.Equal(t, "a.b.md", OutputPath("a.b.scrapbox", false))
}

func TestLoad(t *testing.T) {
	fs := fstest.MapFS{
		"plain.txt": {Data: []byte("[** Title]\r\nbody")},
		"meta.txt":  {Data: []byte("---\ntitle: Notes\ntags: [a]\n---\n[* x]\n")},
	}

	t.Run("without front matter", func(t *testing.T) {
		doc, err := Load(fs, "plain.txt")
		require.NoError(t, err)
		assert.Nil(t, doc.Meta)
		assert.Equal(t, "plain.txt", doc.Path)
		assert.Equal(t, "[** Title]\nbody", doc.Body)
	})

	t.Run("with front matter", func(t *testing.T) {
		doc, err := Load(fs, "meta.txt")
		require.NoError(t, err)
		assert.Equal(t, "Notes", doc.Meta["title"])
		assert.Equal(t, []any{"a"}, doc.Meta["tags"])
		assert.Equal(t, "[* x]", strings.TrimSpace(doc.Body))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(fs, "missing.txt")
		assert.Error(t, err)
	})
}

func TestEncode(t *testing.T) {
	t.Run("markdown without meta", func(t *testing.T) {
		out, err := Encode(nil, "## Title\n", false)
		require.NoError(t, err)
		assert.Equal(t, "## Title\n", string(out))
	})

	t.Run("markdown with meta", func(t *testing.T) {
		out, err := Encode(map[string]any{"title": "Notes"}, "text\n", false)
		require.NoError(t, err)
		assert.Equal(t, "---\ntitle: Notes\n---\ntext\n", string(out))
	})

	t.Run("html", func(t *testing.T) {
		out, err := Encode(map[string]any{"title": "Notes"}, "## Title\n~~gone~~\n", true)
		require.NoError(t, err)
		html := string(out)
		assert.Contains(t, html, "<h2>Title</h2>")
		assert.Contains(t, html, "<del>gone</del>")
		assert.NotContains(t, html, "title: Notes")
	})
}
