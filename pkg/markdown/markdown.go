/*
Package markdown renders an ast.Page as Markdown text.
*/
package markdown

import (
	"strings"

	"github.com/flytaly/scrapmd/pkg/ast"
	"github.com/flytaly/scrapmd/pkg/visitor"
)

const DefaultIndentUnit = "   "

type Config struct {
	// IndentUnit is written once per list level below the first
	IndentUnit string `yaml:"indent_unit"`
}

func DefaultConfig() Config {
	return Config{IndentUnit: DefaultIndentUnit}
}

// Render renders page with cfg
func Render(page *ast.Page, cfg Config) string {
	return NewRenderer(cfg).Render(page)
}

// Renderer is a visitor that writes every node it visits. It never asks
// for changes, so rendering doesn't modify the page.
type Renderer struct {
	visitor.Base
	cfg Config
	out strings.Builder
}

func NewRenderer(cfg Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Render returns the Markdown for page. Every line, the last one included,
// ends with a newline.
func (r *Renderer) Render(page *ast.Page) string {
	r.out.Reset()
	visitor.Walk(r, page)
	return r.out.String()
}

func (r *Renderer) VisitPage(w *visitor.Walker, page *ast.Page) {
	for i := range page.Lines {
		r.VisitLine(w, &page.Lines[i])
		r.out.WriteByte('\n')
	}
}

func (r *Renderer) VisitLine(w *visitor.Walker, line *ast.Line) {
	if line.List != nil {
		r.listPrefix(line.List)
	}
	w.Nodes(line)
}

func (r *Renderer) listPrefix(list *ast.List) {
	var marker string
	switch list.Kind {
	case ast.Disc:
		marker = "* "
	case ast.Decimal:
		marker = "1. "
	default:
		return
	}
	if list.Level > 1 {
		r.out.WriteString(strings.Repeat(r.cfg.IndentUnit, list.Level-1))
	}
	r.out.WriteString(marker)
}

func (r *Renderer) VisitHashTag(node *ast.HashTag) *visitor.Command {
	r.out.WriteString("[#" + node.Value + "](#" + node.Value + ".md)")
	return nil
}

// The .md suffix goes after the closing parenthesis; existing notes link
// to pages in this exact form.
func (r *Renderer) VisitInternalLink(node *ast.InternalLink) *visitor.Command {
	r.out.WriteString("[" + node.Title + "](" + node.Title + ").md")
	return nil
}

func (r *Renderer) VisitExternalLink(node *ast.ExternalLink) *visitor.Command {
	if node.Title == nil {
		r.out.WriteString(node.URL)
		return nil
	}
	r.out.WriteString("[" + *node.Title + "](" + node.URL + ")")
	return nil
}

// Strikethrough wraps italic, italic wraps bold.
func (r *Renderer) VisitDecoration(node *ast.Decoration) *visitor.Command {
	text := node.Text
	if node.Bold > 0 {
		text = "**" + text + "**"
	}
	if node.Italic > 0 {
		text = "*" + text + "*"
	}
	if node.Strikethrough > 0 {
		text = "~~" + text + "~~"
	}
	r.out.WriteString(text)
	return nil
}

func (r *Renderer) VisitHeading(node *ast.Heading) *visitor.Command {
	r.out.WriteString(strings.Repeat("#", int(node.Level)) + " " + node.Text)
	return nil
}

func (r *Renderer) VisitBlockQuote(node *ast.BlockQuote) *visitor.Command {
	r.out.WriteString(node.Value)
	return nil
}

func (r *Renderer) VisitText(node *ast.Text) *visitor.Command {
	r.out.WriteString(node.Value)
	return nil
}
