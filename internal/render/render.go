// Package render turns the ranked article list and the optional sports
// block into the final markdown digest.
package render

import (
	"fmt"
	"strings"

	"dailybrief/internal/core"
)

// CategoryStyle pairs a known category with its display icon. The slice
// order returned by DefaultCategoryOrder is the display order; formatting
// logic never hardcodes its own iteration order.
type CategoryStyle struct {
	Name string
	Icon string
}

// DefaultCategoryOrder returns the fixed display order of known categories,
// AI subdivisions first.
func DefaultCategoryOrder() []CategoryStyle {
	return []CategoryStyle{
		{Name: "AI应用", Icon: "🚀"},
		{Name: "AI前沿", Icon: "🔬"},
		{Name: "AI", Icon: "🤖"},
		{Name: "Python", Icon: "🐍"},
		{Name: "Java", Icon: "☕"},
		{Name: "Go", Icon: "🔷"},
		{Name: "架构", Icon: "🏗️"},
		{Name: "前端", Icon: "🎨"},
		{Name: "其他", Icon: "📌"},
	}
}

// sourceLabels maps origin feed tags to their display labels. Unknown
// sources fall through to a generic label built from the tag itself.
var sourceLabels = map[string]string{
	"github":      "📦 GitHub",
	"github-ai":   "🤖 GitHub AI",
	"juejin":      "📝 掘金",
	"hackernews":  "🔶 Hacker News",
	"huggingface": "🤗 HuggingFace",
	"arxiv":       "📄 arXiv",
	"futurepedia": "🚀 AI工具",
	"toolify":     "🚀 AI工具",
}

// SourceLabel returns the human label for an origin feed tag.
func SourceLabel(source string) string {
	if label, ok := sourceLabels[source]; ok {
		return label
	}
	return "📄 " + source
}

// Renderer builds the digest document.
type Renderer struct {
	categories []CategoryStyle
}

// New creates a renderer with the given category display order; nil falls
// back to DefaultCategoryOrder.
func New(categories []CategoryStyle) *Renderer {
	if len(categories) == 0 {
		categories = DefaultCategoryOrder()
	}
	return &Renderer{categories: categories}
}

// Digest renders the full report: articles grouped by category in display
// order (unrecognized categories last, empty groups omitted), the sports
// section when present, and generation metadata with the included count.
// Articles keep their ranking order within each group.
func (r *Renderer) Digest(articles []core.Article, sports *core.SportsData, date string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# 📰 技术日报 - %s\n\n", date))
	sb.WriteString("---\n\n")

	grouped := make(map[string][]core.Article)
	for _, article := range articles {
		category := article.Category
		if category == "" {
			category = "其他"
		}
		grouped[category] = append(grouped[category], article)
	}

	index := 1
	for _, style := range r.categories {
		group, ok := grouped[style.Name]
		if !ok {
			continue
		}
		delete(grouped, style.Name)
		index = r.writeGroup(&sb, style.Icon, style.Name, group, index)
	}

	// Unrecognized categories come last, in the order their first article
	// appeared in the ranking.
	for _, name := range unknownOrder(articles, grouped) {
		index = r.writeGroup(&sb, "📎", name, grouped[name], index)
	}

	if sports != nil {
		sb.WriteString(renderSportsSection(sports))
	}

	sb.WriteString("*由 AI Tech Briefing Agent 自动生成*\n")
	sb.WriteString(fmt.Sprintf("*今日共推送 %d 篇精选文章*\n", len(articles)))

	return sb.String()
}

// writeGroup renders one category section and returns the next article index.
func (r *Renderer) writeGroup(sb *strings.Builder, icon, name string, group []core.Article, index int) int {
	sb.WriteString(fmt.Sprintf("## %s %s\n\n", icon, name))

	for _, article := range group {
		sb.WriteString(fmt.Sprintf("### %d. [%s](%s)\n", index, article.Title, article.URL))
		index++

		label := SourceLabel(article.Source)
		if article.Highlight != "" {
			sb.WriteString(fmt.Sprintf("🏷️ **%s** | %s\n", article.Highlight, label))
		} else {
			sb.WriteString(label + "\n")
		}

		summary := article.AISummary
		if summary == "" {
			summary = article.Description
		}
		sb.WriteString("> " + summary + "\n\n")
	}

	sb.WriteString("---\n\n")
	return index
}

// unknownOrder lists the categories left in grouped, ordered by first
// appearance in the ranked article list.
func unknownOrder(articles []core.Article, grouped map[string][]core.Article) []string {
	var order []string
	seen := make(map[string]bool)
	for _, article := range articles {
		category := article.Category
		if category == "" {
			category = "其他"
		}
		if _, ok := grouped[category]; ok && !seen[category] {
			seen[category] = true
			order = append(order, category)
		}
	}
	return order
}
