// Package rank implements the deterministic priority scoring and ranking
// stage of the briefing pipeline.
package rank

import (
	"sort"
	"strings"

	"dailybrief/internal/core"
)

// InterestBonus is added when the title or description signals high
// relevance regardless of the assigned category.
const InterestBonus = 15

// DefaultBonusKeywords are the relevance signals checked against the title
// and description. The set is configuration data, not fixed logic; these are
// the defaults.
func DefaultBonusKeywords() []string {
	return []string{"ai", "llm", "gpt", "机器学习", "深度学习", "ai应用", "大模型"}
}

// Scorer computes priority scores from the configured interest-tag ordering.
type Scorer struct {
	tags          []string
	bonusKeywords []string
}

// NewScorer creates a scorer. Tags are ordered by interest: the earlier a
// tag appears, the higher articles in that category score.
func NewScorer(tags []string, bonusKeywords []string) *Scorer {
	if len(bonusKeywords) == 0 {
		bonusKeywords = DefaultBonusKeywords()
	}
	return &Scorer{tags: tags, bonusKeywords: bonusKeywords}
}

// Score computes the priority score for one enriched article. The base score
// comes from the first interest tag contained (case-insensitively) in the
// article's category: (N-index)*10 for a tag list of length N. A keyword hit
// in the title or description adds InterestBonus on top.
func (s *Scorer) Score(article core.Article) int {
	score := 0

	category := strings.ToLower(article.Category)
	for i, tag := range s.tags {
		if strings.Contains(category, strings.ToLower(tag)) {
			score = (len(s.tags) - i) * 10
			break
		}
	}

	haystack := strings.ToLower(article.Title) + "\n" + strings.ToLower(article.Description)
	for _, keyword := range s.bonusKeywords {
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			score += InterestBonus
			break
		}
	}

	return score
}

// Rank sorts articles by priority score descending, stable with respect to
// the input order on ties, and truncates to at most maxArticles entries.
func Rank(articles []core.Article, maxArticles int) []core.Article {
	ranked := make([]core.Article, len(articles))
	copy(ranked, articles)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriorityScore > ranked[j].PriorityScore
	})

	if maxArticles > 0 && len(ranked) > maxArticles {
		ranked = ranked[:maxArticles]
	}

	return ranked
}
