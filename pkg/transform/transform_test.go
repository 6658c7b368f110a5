package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flytaly/scrapmd/pkg/ast"
)

func decorations(bold ...int) *ast.Page {
	line := ast.Line{}
	for _, b := range bold {
		line.Values = append(line.Values, ast.NewDecoration("text", b, 0, 0))
	}
	return &ast.Page{Lines: []ast.Line{line}}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		bold      int
		wantLevel uint8
		wantOk    bool
	}{
		{"no bold", DefaultConfig(), 0, 0, false},
		{"single bold stays", DefaultConfig(), 1, 0, false},
		{"double bold", DefaultConfig(), 2, 2, true},
		{"triple bold", DefaultConfig(), 3, 1, true},
		{"clamped to zero", DefaultConfig(), 4, 0, false},
		{"far past the ceiling", DefaultConfig(), 5, 0, false},
		{"single bold promoted", Config{Ceiling: 3, PromoteSingle: true}, 1, 3, true},
		{"no bold with promote single", Config{Ceiling: 3, PromoteSingle: true}, 0, 0, false},
		{"deep ceiling", Config{Ceiling: 6}, 2, 5, true},
		{"max ceiling", Config{Ceiling: 255}, 2, 254, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, ok := NewPromoter(tt.cfg).Level(tt.bold)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantLevel, level)
		})
	}
}

func TestPromoter(t *testing.T) {
	page := decorations(1, 2, 5, 3)
	NewPromoter(DefaultConfig()).Apply(page)

	assert.Equal(t, []ast.Syntax{
		ast.NewDecoration("text", 1, 0, 0),
		ast.NewHeading("text", 2),
		ast.NewDecoration("text", 5, 0, 0),
		ast.NewHeading("text", 1),
	}, page.Lines[0].Values)
}

func TestPromoterKeepsOtherNodes(t *testing.T) {
	page := &ast.Page{Lines: []ast.Line{{Values: []ast.Syntax{
		ast.NewText("x"),
		ast.NewInternalLink("y"),
		ast.NewHeading("z", 4),
	}}}}
	want := &ast.Page{Lines: []ast.Line{{Values: []ast.Syntax{
		ast.NewText("x"),
		ast.NewInternalLink("y"),
		ast.NewHeading("z", 4),
	}}}}

	NewPromoter(DefaultConfig()).Apply(page)
	assert.Equal(t, want, page)
}

func TestTagCollector(t *testing.T) {
	page := &ast.Page{Lines: []ast.Line{
		{Values: []ast.Syntax{ast.NewHashTag("go"), ast.NewText(" "), ast.NewHashTag("")}},
		{Values: []ast.Syntax{ast.NewHashTag("notes"), ast.NewHashTag("go")}},
	}}

	c := NewTagCollector()
	tags := c.Collect(page)

	assert.Equal(t, []string{"go", "notes"}, tags)
	assert.Len(t, page.Lines[0].Values, 3, "collecting doesn't change the page")

	tags[0] = "changed"
	assert.Equal(t, []string{"go", "notes"}, c.Tags())
}
