// Package parser extracts the structured classification fields from
// free-form model output. The upstream prompt asks for one "label: value"
// field per line (分类 / 亮点 / 摘要), but models decorate values with
// brackets and quotes and mix full-width and half-width colons, so matching
// is deliberately tolerant.
package parser

import (
	"errors"
	"regexp"
	"strings"
)

const (
	// MaxHighlightRunes is the hard cap on the highlight tag length.
	MaxHighlightRunes = 20
	// MaxSummaryRunes is the hard cap on the summary length before the
	// truncation marker is appended.
	MaxSummaryRunes = 200
	// TruncationMarker is appended to summaries cut at MaxSummaryRunes.
	TruncationMarker = "..."

	// FallbackCategory is used when the model output carries no category.
	FallbackCategory = "其他"
)

// ErrEmptyResponse indicates the model returned nothing usable.
var ErrEmptyResponse = errors.New("empty classifier response")

var (
	categoryPattern  = regexp.MustCompile(`分类[：:]\s*(.+?)(?:\n|$)`)
	highlightPattern = regexp.MustCompile(`亮点[：:]\s*(.+?)(?:\n|$)`)
	summaryPattern   = regexp.MustCompile(`(?s)摘要[：:]\s*(.+)`)

	decorations = strings.NewReplacer("[", "", "]", "", "【", "", "】", "", `"`, "", "'", "")
)

// Fields holds the three classification fields parsed from a response.
type Fields struct {
	Category  string
	Highlight string
	Summary   string
}

// Parse extracts category, highlight and summary from raw model text.
// Missing category defaults to FallbackCategory, missing highlight to the
// empty string, and a missing summary label makes the whole response the
// summary. An empty or whitespace-only response is a parse failure.
func Parse(raw string) (Fields, error) {
	if strings.TrimSpace(raw) == "" {
		return Fields{}, ErrEmptyResponse
	}

	fields := Fields{Category: FallbackCategory}

	if m := categoryPattern.FindStringSubmatch(raw); m != nil {
		if category := cleanValue(m[1]); category != "" {
			fields.Category = category
		}
	}

	if m := highlightPattern.FindStringSubmatch(raw); m != nil {
		fields.Highlight = truncateRunes(cleanValue(m[1]), MaxHighlightRunes)
	}

	if m := summaryPattern.FindStringSubmatch(raw); m != nil {
		fields.Summary = truncateSummary(strings.TrimSpace(m[1]))
	} else {
		fields.Summary = truncateSummary(strings.TrimSpace(raw))
	}

	return fields, nil
}

// cleanValue strips bracket and quote decorations around a field value.
func cleanValue(value string) string {
	return strings.TrimSpace(decorations.Replace(strings.TrimSpace(value)))
}

// truncateRunes hard-cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// truncateSummary caps the summary at MaxSummaryRunes and marks the cut.
func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxSummaryRunes {
		return s
	}
	return string(runes[:MaxSummaryRunes]) + TruncationMarker
}
