package transform

import (
	"github.com/flytaly/scrapmd/pkg/ast"
	"github.com/flytaly/scrapmd/pkg/visitor"
)

// TagCollector gathers hashtag values in the order they first appear.
// It doesn't change the page.
type TagCollector struct {
	visitor.Base
	seen map[string]struct{}
	tags []string
}

func NewTagCollector() *TagCollector {
	return &TagCollector{seen: map[string]struct{}{}}
}

// Collect walks page and returns every tag seen so far
func (c *TagCollector) Collect(page *ast.Page) []string {
	visitor.Walk(c, page)
	return c.Tags()
}

func (c *TagCollector) Tags() []string {
	tags := make([]string, len(c.tags))
	copy(tags, c.tags)
	return tags
}

func (c *TagCollector) VisitHashTag(node *ast.HashTag) *visitor.Command {
	if node.Value == "" {
		return nil
	}
	if _, ok := c.seen[node.Value]; !ok {
		c.seen[node.Value] = struct{}{}
		c.tags = append(c.tags, node.Value)
	}
	return nil
}
