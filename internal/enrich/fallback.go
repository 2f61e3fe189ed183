package enrich

import (
	"dailybrief/internal/core"
	"dailybrief/internal/parser"
)

// fallbackClass is the deterministic classification assigned when AI
// enrichment fails for an article.
type fallbackClass struct {
	Category  string
	Highlight string
}

// fallbackBySource maps origin feeds to a static classification:
// research-oriented sources read as frontier material, tool-oriented sources
// as applications. Unknown sources take defaultFallback.
var fallbackBySource = map[string]fallbackClass{
	"huggingface": {Category: "AI前沿", Highlight: "技术论文"},
	"arxiv":       {Category: "AI前沿", Highlight: "技术论文"},
	"github-ai":   {Category: "AI应用", Highlight: "AI工具"},
	"futurepedia": {Category: "AI应用", Highlight: "AI工具"},
	"toolify":     {Category: "AI应用", Highlight: "AI工具"},
}

var defaultFallback = fallbackClass{Category: parser.FallbackCategory, Highlight: "技术资讯"}

// ApplyFallback fills the enrichment fields without AI involvement: the
// original description becomes the summary, category and highlight come from
// the source lookup, and the priority score is zeroed. Applying it twice
// yields the same result.
func ApplyFallback(article *core.Article) {
	class, ok := fallbackBySource[article.Source]
	if !ok {
		class = defaultFallback
	}

	article.AISummary = article.Description
	article.Category = class.Category
	article.Highlight = class.Highlight
	article.PriorityScore = 0
}
