/*
Package ast defines the tree produced by the parser: a Page of Lines, each Line
holding an ordered list of Syntax nodes.
*/
package ast

// Page is the root of the tree.
type Page struct {
	Lines []Line
}

// Line is one source line. List is nil for a normal line.
type Line struct {
	List   *List
	Values []Syntax
}

// IsList reports whether the line starts with a list marker.
func (l *Line) IsList() bool {
	return l.List != nil
}

type ListKind int

const (
	Disc ListKind = iota
	Decimal
	Alphabet // reserved, never produced by the parser
)

func (k ListKind) String() string {
	switch k {
	case Disc:
		return "disc"
	case Decimal:
		return "decimal"
	case Alphabet:
		return "alphabet"
	}
	return "?"
}

// List describes a list marker. Level is the number of leading tabs and is
// never 0.
type List struct {
	Kind  ListKind
	Level int
}

// Syntax is one parsed unit of a line. Implemented by *HashTag, *Bracket,
// *BlockQuote and *Text.
type Syntax interface {
	syntax()
}

// BracketKind is the content of a [...] construct. Implemented by
// *InternalLink, *ExternalLink, *Decoration and *Heading.
type BracketKind interface {
	bracket()
}

// HashTag represents #value
type HashTag struct {
	Value string
}

// Bracket wraps every [...] construct
type Bracket struct {
	Kind BracketKind
}

// BlockQuote represents `value`
type BlockQuote struct {
	Value string
}

// Text is everything the other rules did not claim
type Text struct {
	Value string
}

func (*HashTag) syntax()    {}
func (*Bracket) syntax()    {}
func (*BlockQuote) syntax() {}
func (*Text) syntax()       {}

// InternalLink represents [title]
type InternalLink struct {
	Title string
}

// ExternalLink represents [url title], [title url], [url] and bare urls.
// Title is nil when the link has no title.
type ExternalLink struct {
	Title *string
	URL   string
}

// Decoration represents [*/- text]. The counts are the number of each marker
// character seen before the space.
type Decoration struct {
	Text          string
	Bold          int
	Italic        int
	Strikethrough int
}

// Heading is only produced by transform passes.
type Heading struct {
	Text  string
	Level uint8
}

func (*InternalLink) bracket() {}
func (*ExternalLink) bracket() {}
func (*Decoration) bracket()   {}
func (*Heading) bracket()      {}

func NewHashTag(value string) Syntax {
	return &HashTag{Value: value}
}

func NewText(value string) Syntax {
	return &Text{Value: value}
}

func NewBlockQuote(value string) Syntax {
	return &BlockQuote{Value: value}
}

func NewInternalLink(title string) Syntax {
	return &Bracket{Kind: &InternalLink{Title: title}}
}

func NewExternalLink(title *string, url string) Syntax {
	return &Bracket{Kind: &ExternalLink{Title: title, URL: url}}
}

func NewDecoration(text string, bold, italic, strikethrough int) Syntax {
	return &Bracket{Kind: &Decoration{Text: text, Bold: bold, Italic: italic, Strikethrough: strikethrough}}
}

func NewHeading(text string, level uint8) Syntax {
	return &Bracket{Kind: &Heading{Text: text, Level: level}}
}

// Title returns a pointer to s, for building ExternalLink values.
func Title(s string) *string {
	return &s
}
