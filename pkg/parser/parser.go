/*
Package parser implements parser for wiki-style markup text that generates AST (abstract syntax tree).
*/
package parser

import (
	"github.com/flytaly/scrapmd/pkg/ast"
	"github.com/flytaly/scrapmd/pkg/log"
)

// syntaxParser tries to recognize one node at the start of data.
// It returns the number of consumed bytes, or 0 if it doesn't match.
type syntaxParser func(p *Parser, data string) (int, ast.Syntax)

type Parser struct {
	rules []syntaxParser
	log   log.Logger
}

// New creates a parser with the rules in their priority order
func New(options ...func(*Parser)) *Parser {
	p := &Parser{
		rules: []syntaxParser{
			hashtag,
			blockQuote,
			bracket,
			bareLink,
			text,
		},
		log: log.NewEmptyLog(),
	}

	for _, option := range options {
		option(p)
	}

	return p
}

// WithLogger reports recovered positions at debug level
func WithLogger(logger log.Logger) func(*Parser) {
	return func(p *Parser) {
		p.log = logger
	}
}

// Parse parses text with the default parser
func Parse(text string) *ast.Page {
	return New().Parse(text)
}

// Parse splits input into lines and each line into syntax nodes.
// It never fails: fragments no rule can claim end up in Text nodes.
func (p *Parser) Parse(input string) *ast.Page {
	page := &ast.Page{}
	data := input
	for len(data) > 0 {
		consumed, line := p.line(data)
		if consumed == 0 {
			// a line that consumes nothing would never advance
			line.Values = append(line.Values, ast.NewText(data))
			consumed = len(data)
		}
		page.Lines = append(page.Lines, line)
		data = data[consumed:]
	}
	return page
}

// line parses a single line, starting with the newline that separates it
// from the previous one, if any.
func (p *Parser) line(data string) (int, ast.Line) {
	var line ast.Line
	i := 0
	if i < len(data) && data[i] == '\n' {
		i++
	}

	n, list := listMarker(data[i:])
	line.List = list
	i += n

	for i < len(data) {
		consumed, node := p.syntax(data[i:])
		if consumed == 0 {
			if data[i] == '\n' {
				break
			}
			consumed = recoverText(data[i:])
			node = ast.NewText(data[i : i+consumed])
			p.log.Debug("parser: no rule matched at line offset %d, kept %q as text", i, data[i:i+consumed])
		}
		line.Values = append(line.Values, node)
		i += consumed
	}

	return i, line
}

// syntax tries every rule in order, first match wins
func (p *Parser) syntax(data string) (int, ast.Syntax) {
	for _, rule := range p.rules {
		if consumed, node := rule(p, data); consumed > 0 {
			return consumed, node
		}
	}
	return 0, nil
}

// listMarker recognizes leading tabs, optionally followed by "<digits>. "
func listMarker(data string) (int, *ast.List) {
	tabs := skipChar(data, 0, '\t')
	if tabs == 0 {
		return 0, nil
	}

	i := tabs
	for i < len(data) && IsDigit(data[i]) {
		i++
	}
	if i > tabs && i+1 < len(data) && data[i] == '.' && data[i+1] == ' ' {
		return i + 2, &ast.List{Kind: ast.Decimal, Level: tabs}
	}

	return tabs, &ast.List{Kind: ast.Disc, Level: tabs}
}

// recoverText claims a stalled position as text: the current byte and the
// ordinary text that follows it.
func recoverText(data string) int {
	n := 1
	if len(data) > 1 && data[1] != '#' {
		n += textBoundary(data[1:])
	}
	return n
}

func skipChar(data string, start int, char byte) int {
	i := start
	for i < len(data) && data[i] == char {
		i++
	}
	return i
}

// IsDigit returns true if c is an ascii digit
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// NormalizeNewlines replaces CRLF and CR line endings with LF so the parser
// only deals with '\n'.
func NormalizeNewlines(d []byte) []byte {
	wi := 0
	n := len(d)
	for i := 0; i < n; i++ {
		c := d[i]
		if c != '\r' {
			d[wi] = c
			wi++
			continue
		}
		d[wi] = '\n'
		wi++
		if i < n-1 && d[i+1] == '\n' {
			i++
		}
	}
	return d[:wi]
}
