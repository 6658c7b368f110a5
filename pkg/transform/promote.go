/*
Package transform holds the passes run on a parsed page before rendering.
*/
package transform

import (
	"github.com/flytaly/scrapmd/pkg/ast"
	"github.com/flytaly/scrapmd/pkg/visitor"
)

const DefaultCeiling = 3

type Config struct {
	// Ceiling is the deepest heading level a decoration can become
	Ceiling int `yaml:"ceiling"`
	// PromoteSingle also promotes decorations with a single bold marker
	PromoteSingle bool `yaml:"promote_single"`
}

func DefaultConfig() Config {
	return Config{Ceiling: DefaultCeiling}
}

// Promoter turns bold decorations into headings: the more markers, the
// higher the heading. With the default ceiling [** x] becomes "## x" and
// [*** x] becomes "# x".
type Promoter struct {
	visitor.Base
	cfg Config
}

func NewPromoter(cfg Config) *Promoter {
	return &Promoter{cfg: cfg}
}

// Apply rewrites page in place.
func (p *Promoter) Apply(page *ast.Page) {
	visitor.Walk(p, page)
}

func (p *Promoter) VisitDecoration(node *ast.Decoration) *visitor.Command {
	level, ok := p.Level(node.Bold)
	if !ok {
		return nil
	}
	return visitor.Replace(ast.NewHeading(node.Text, level))
}

// Level returns the heading level for a decoration with bold markers, and
// false if it stays a decoration.
func (p *Promoter) Level(bold int) (uint8, bool) {
	level := p.cfg.Ceiling + 1 - bold
	if level < 0 {
		level = 0
	}
	if level == 0 || level > p.cfg.Ceiling || level > 255 {
		return 0, false
	}
	if !p.cfg.PromoteSingle && bold <= 1 {
		return 0, false
	}
	return uint8(level), true
}
