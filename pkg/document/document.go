/*
Package document reads source documents from disk and encodes converted
output. It knows nothing about the markup itself.
*/
package document

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/flytaly/scrapmd/pkg/parser"
)

// Document is a source file split into its front matter and body.
type Document struct {
	Path string
	Meta map[string]any
	Body string
}

// Load reads name from fsys
func Load(fsys fs.FS, name string) (*Document, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Parse(name, data)
}

// Parse normalizes line endings and splits off an optional front matter
// block, modifying source in place. A document without front matter has a
// nil Meta.
func Parse(name string, source []byte) (*Document, error) {
	source = parser.NormalizeNewlines(source)

	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse front matter of %s: %w", name, err)
	}

	return &Document{
		Path: name,
		Meta: meta,
		Body: string(body),
	}, nil
}

// Encode writes meta as a YAML front matter block followed by markdown.
// With html set the markdown is converted to an HTML fragment instead and
// meta is left out.
func Encode(meta map[string]any, markdown string, html bool) ([]byte, error) {
	var buf bytes.Buffer

	if html {
		engine := goldmark.New(goldmark.WithExtensions(extension.GFM))
		if err := engine.Convert([]byte(markdown), &buf); err != nil {
			return nil, fmt.Errorf("convert to html: %w", err)
		}
		return buf.Bytes(), nil
	}

	if len(meta) > 0 {
		out, err := yaml.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("encode front matter: %w", err)
		}
		buf.WriteString("---\n")
		buf.Write(out)
		buf.WriteString("---\n")
	}
	buf.WriteString(markdown)

	return buf.Bytes(), nil
}
