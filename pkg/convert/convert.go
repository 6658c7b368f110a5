/*
Package convert runs the whole pipeline: parse, promote decorations, collect
tags and render.
*/
package convert

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/flytaly/scrapmd/pkg/ast"
	"github.com/flytaly/scrapmd/pkg/document"
	"github.com/flytaly/scrapmd/pkg/log"
	"github.com/flytaly/scrapmd/pkg/markdown"
	"github.com/flytaly/scrapmd/pkg/parser"
	"github.com/flytaly/scrapmd/pkg/transform"
)

type Options struct {
	Transform transform.Config
	Render    markdown.Config
	// Tags merges the page's hashtags into the front matter
	Tags bool
	// HTML converts the Markdown output to HTML
	HTML bool
}

func DefaultOptions() Options {
	return Options{
		Transform: transform.DefaultConfig(),
		Render:    markdown.DefaultConfig(),
	}
}

type Converter struct {
	opts   Options
	parser *parser.Parser
	log    log.Logger
}

// Creates a new Converter
func New(opts Options, options ...func(*Converter)) *Converter {
	c := &Converter{
		opts: opts,
		log:  log.NewEmptyLog(),
	}

	for _, option := range options {
		option(c)
	}

	c.parser = parser.New(parser.WithLogger(c.log))
	return c
}

func WithLogger(logger log.Logger) func(*Converter) {
	return func(c *Converter) {
		c.log = logger
	}
}

var writeFile = func(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

type Result struct {
	Page     *ast.Page // tree after the transform passes
	Markdown string
	Tags     []string
}

// Convert converts a whole text
func (c *Converter) Convert(src string) Result {
	page := c.parser.Parse(src)
	transform.NewPromoter(c.opts.Transform).Apply(page)
	tags := transform.NewTagCollector().Collect(page)

	return Result{
		Page:     page,
		Markdown: markdown.Render(page, c.opts.Render),
		Tags:     tags,
	}
}

// ConvertDocument converts doc's body and encodes it with its front matter
func (c *Converter) ConvertDocument(doc *document.Document) ([]byte, error) {
	res := c.Convert(doc.Body)

	meta := doc.Meta
	if c.opts.Tags && len(res.Tags) > 0 {
		meta = withTags(meta, res.Tags)
	}

	out, err := document.Encode(meta, res.Markdown, c.opts.HTML)
	if err != nil {
		return nil, wrapEncodeError(err)
	}
	return out, nil
}

// ConvertFile converts name from fsys and writes the output next to it
// under root. It returns the written path.
func (c *Converter) ConvertFile(fsys fs.FS, root, name string) (string, error) {
	doc, err := document.Load(fsys, name)
	if err != nil {
		return "", wrapLoadError(err)
	}

	out, err := c.ConvertDocument(doc)
	if err != nil {
		return "", err
	}

	target := filepath.Join(root, filepath.FromSlash(document.OutputPath(name, c.opts.HTML)))
	if err := writeFile(target, out); err != nil {
		return "", wrapWriteError(err)
	}

	c.log.Info("Converted %s -> %s (%s)", name, target, humanize.Bytes(uint64(len(out))))
	return target, nil
}

// ConvertFiles converts every path with up to workers documents at a time.
// It stops scheduling on the first error or when ctx is done and returns
// after the running conversions finish.
func (c *Converter) ConvertFiles(ctx context.Context, fsys fs.FS, root string, paths []string, workers int) error {
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, name := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := c.ConvertFile(fsys, root, name)
			if err != nil {
				c.log.Error("Couldn't convert %s: %v", name, err)
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return wrapContextError(err)
	}
	return wrapContextError(ctx.Err())
}

func withTags(meta map[string]any, tags []string) map[string]any {
	out := make(map[string]any, len(meta)+1)
	for k, v := range meta {
		out[k] = v
	}

	var merged []string
	seen := map[string]struct{}{}
	add := func(tag string) {
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		merged = append(merged, tag)
	}

	switch existing := meta["tags"].(type) {
	case []any:
		for _, t := range existing {
			if s, ok := t.(string); ok {
				add(s)
			}
		}
	case []string:
		for _, s := range existing {
			add(s)
		}
	case string:
		add(existing)
	}
	for _, tag := range tags {
		add(tag)
	}

	out["tags"] = merged
	return out
}
