package parser

import (
	"strings"

	"github.com/flytaly/scrapmd/pkg/ast"
)

var protocols = []string{"https://", "http://"}

// '#': the tag runs until a space or a newline
func hashtag(p *Parser, data string) (int, ast.Syntax) {
	if len(data) == 0 || data[0] != '#' {
		return 0, nil
	}
	end := 1
	for end < len(data) && data[end] != ' ' && data[end] != '\n' {
		end++
	}
	return end, ast.NewHashTag(data[1:end])
}

// '`': no escaping, the quote must be closed on the same line
func blockQuote(p *Parser, data string) (int, ast.Syntax) {
	if len(data) == 0 || data[0] != '`' {
		return 0, nil
	}
	end := strings.IndexAny(data[1:], "`\n")
	if end < 0 || data[1+end] != '`' {
		return 0, nil
	}
	return end + 2, ast.NewBlockQuote(data[1 : 1+end])
}

// bracketKinds are tried in order on the bracket content
var bracketKinds = []func(content string) ast.BracketKind{
	decoration,
	externalLink,
	internalLink,
}

// '[': only a balanced pair on one line with no nested brackets
func bracket(p *Parser, data string) (int, ast.Syntax) {
	end := bracketEnd(data)
	if end < 0 {
		return 0, nil
	}
	content := data[1:end]
	for _, kind := range bracketKinds {
		if k := kind(content); k != nil {
			return end + 1, &ast.Bracket{Kind: k}
		}
	}
	return 0, nil
}

// bracketEnd returns the index of the closing ']' or -1
func bracketEnd(data string) int {
	if len(data) == 0 || data[0] != '[' {
		return -1
	}
	end := strings.IndexAny(data[1:], "[]\n")
	if end < 0 || data[1+end] != ']' {
		return -1
	}
	return 1 + end
}

// [*/- text]: any mix of markers, then exactly one space
func decoration(content string) ast.BracketKind {
	var bold, italic, strikethrough int
	i := 0
markers:
	for ; i < len(content); i++ {
		switch content[i] {
		case '*':
			bold++
		case '/':
			italic++
		case '-':
			strikethrough++
		default:
			break markers
		}
	}
	if i >= len(content) || content[i] != ' ' {
		return nil
	}
	return &ast.Decoration{
		Text:          content[i+1:],
		Bold:          bold,
		Italic:        italic,
		Strikethrough: strikethrough,
	}
}

// [https://url title], [title https://url] or [https://url]
func externalLink(content string) ast.BracketKind {
	space := strings.IndexByte(content, ' ')

	if hasProtocol(content) {
		if space < 0 {
			return newExternalLink("", content)
		}
		return newExternalLink(content[space+1:], content[:space])
	}

	if space >= 0 && hasProtocol(content[space+1:]) {
		return newExternalLink(content[:space], content[space+1:])
	}

	return nil
}

func newExternalLink(title, url string) *ast.ExternalLink {
	link := &ast.ExternalLink{URL: url}
	if title != "" {
		link.Title = ast.Title(title)
	}
	return link
}

// [title]
func internalLink(content string) ast.BracketKind {
	return &ast.InternalLink{Title: content}
}

// url outside of brackets, runs until a space or the end of the line
func bareLink(p *Parser, data string) (int, ast.Syntax) {
	if !hasProtocol(data) {
		return 0, nil
	}
	end := strings.IndexAny(data, " \n")
	if end < 0 {
		end = len(data)
	}
	return end, ast.NewExternalLink(nil, data[:end])
}

func hasProtocol(data string) bool {
	for _, protocol := range protocols {
		if strings.HasPrefix(data, protocol) {
			return true
		}
	}
	return false
}

// text takes everything up to the nearest place where another rule may
// start. It never starts on '#', that position belongs to hashtag.
func text(p *Parser, data string) (int, ast.Syntax) {
	if len(data) == 0 || data[0] == '#' {
		return 0, nil
	}
	n := textBoundary(data)
	if n == 0 {
		return 0, nil
	}
	return n, ast.NewText(data[:n])
}

// textBoundaries are independent forward scans. Each returns the length of
// the text before its boundary, or false if the boundary doesn't occur.
var textBoundaries = []func(data string) (int, bool){
	untilTag,
	untilNewline,
	untilBracket,
}

// textBoundary picks the nearest boundary; ties keep the scan order
func textBoundary(data string) int {
	nearest := -1
	for _, scan := range textBoundaries {
		n, ok := scan(data)
		if !ok {
			continue
		}
		if nearest < 0 || n < nearest {
			nearest = n
		}
	}
	if nearest < 0 {
		return 0
	}
	return nearest
}

// untilTag only applies when a " #" follows somewhere; the text then stops
// on the first '#', even one inside a word.
func untilTag(data string) (int, bool) {
	if !strings.Contains(data, " #") {
		return 0, false
	}
	return strings.IndexByte(data, '#'), true
}

func untilNewline(data string) (int, bool) {
	i := strings.IndexByte(data, '\n')
	if i < 0 {
		return 0, false
	}
	return i, true
}

// untilBracket always matches: without a '[' the text runs to the end
func untilBracket(data string) (int, bool) {
	i := strings.IndexByte(data, '[')
	if i < 0 {
		return len(data), true
	}
	return i, true
}
