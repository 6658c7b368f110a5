/*
Package visitor walks an ast.Page and lets passes replace or delete nodes
without the parser or the tree knowing about any particular pass.

Embed Base to get the default behaviour for every node and override only the
methods a pass cares about:

	type dropQuotes struct{ visitor.Base }

	func (dropQuotes) VisitBlockQuote(*ast.BlockQuote) *visitor.Command {
		return visitor.Delete()
	}

	visitor.Walk(dropQuotes{}, page)
*/
package visitor

import "github.com/flytaly/scrapmd/pkg/ast"

type Op int

const (
	OpReplace Op = iota
	OpDelete
)

// Command is what a visit method asks the walker to do with the visited
// node. A nil *Command leaves the node as is.
type Command struct {
	Op   Op
	With ast.Syntax // replacement, only for OpReplace
}

func Replace(with ast.Syntax) *Command {
	return &Command{Op: OpReplace, With: with}
}

func Delete() *Command {
	return &Command{Op: OpDelete}
}

// Visitor has one method per node shape. Page, Line, Syntax and Bracket
// receive the Walker to continue the default traversal.
type Visitor interface {
	VisitPage(w *Walker, page *ast.Page)
	VisitLine(w *Walker, line *ast.Line)
	VisitSyntax(w *Walker, node ast.Syntax) *Command
	VisitBracket(w *Walker, node *ast.Bracket) *Command

	VisitHashTag(node *ast.HashTag) *Command
	VisitInternalLink(node *ast.InternalLink) *Command
	VisitExternalLink(node *ast.ExternalLink) *Command
	VisitDecoration(node *ast.Decoration) *Command
	VisitHeading(node *ast.Heading) *Command
	VisitBlockQuote(node *ast.BlockQuote) *Command
	VisitText(node *ast.Text) *Command
}

// Base recurses into children and leaves every node untouched.
type Base struct{}

func (Base) VisitPage(w *Walker, page *ast.Page) { w.Lines(page) }
func (Base) VisitLine(w *Walker, line *ast.Line) { w.Nodes(line) }

func (Base) VisitSyntax(w *Walker, node ast.Syntax) *Command {
	return w.Dispatch(node)
}

func (Base) VisitBracket(w *Walker, node *ast.Bracket) *Command {
	return w.DispatchBracket(node)
}

func (Base) VisitHashTag(*ast.HashTag) *Command           { return nil }
func (Base) VisitInternalLink(*ast.InternalLink) *Command { return nil }
func (Base) VisitExternalLink(*ast.ExternalLink) *Command { return nil }
func (Base) VisitDecoration(*ast.Decoration) *Command     { return nil }
func (Base) VisitHeading(*ast.Heading) *Command           { return nil }
func (Base) VisitBlockQuote(*ast.BlockQuote) *Command     { return nil }
func (Base) VisitText(*ast.Text) *Command                 { return nil }

// Walker carries the default traversal for a visitor. Methods of the
// visitor call back into it to descend.
type Walker struct {
	v Visitor
}

// Walk visits page with v, top to bottom and left to right.
func Walk(v Visitor, page *ast.Page) {
	v.VisitPage(&Walker{v: v}, page)
}

// Lines visits every line of page.
func (w *Walker) Lines(page *ast.Page) {
	for i := range page.Lines {
		w.v.VisitLine(w, &page.Lines[i])
	}
}

// Nodes visits every node of line and applies the returned commands after
// the whole line was visited: replacements first, by index, then deletions.
func (w *Walker) Nodes(line *ast.Line) {
	commands := map[int]*Command{}
	for i, node := range line.Values {
		if c := w.v.VisitSyntax(w, node); c != nil {
			commands[i] = c
		}
	}
	if len(commands) == 0 {
		return
	}

	deletes := 0
	for i, c := range commands {
		switch c.Op {
		case OpReplace:
			line.Values[i] = c.With
		case OpDelete:
			deletes++
		}
	}
	if deletes == 0 {
		return
	}

	kept := make([]ast.Syntax, 0, len(line.Values)-deletes)
	for i, node := range line.Values {
		if c, ok := commands[i]; ok && c.Op == OpDelete {
			continue
		}
		kept = append(kept, node)
	}
	line.Values = kept
}

// Dispatch calls the visit method matching the node's type.
func (w *Walker) Dispatch(node ast.Syntax) *Command {
	switch n := node.(type) {
	case *ast.HashTag:
		return w.v.VisitHashTag(n)
	case *ast.Bracket:
		return w.v.VisitBracket(w, n)
	case *ast.BlockQuote:
		return w.v.VisitBlockQuote(n)
	case *ast.Text:
		return w.v.VisitText(n)
	}
	return nil
}

// DispatchBracket calls the visit method matching the bracket's kind.
func (w *Walker) DispatchBracket(node *ast.Bracket) *Command {
	switch k := node.Kind.(type) {
	case *ast.InternalLink:
		return w.v.VisitInternalLink(k)
	case *ast.ExternalLink:
		return w.v.VisitExternalLink(k)
	case *ast.Decoration:
		return w.v.VisitDecoration(k)
	case *ast.Heading:
		return w.v.VisitHeading(k)
	}
	return nil
}
