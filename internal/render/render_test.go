package render

import (
	"strings"
	"testing"

	"dailybrief/internal/core"
)

func TestDigestGrouping(t *testing.T) {
	articles := []core.Article{
		{Title: "py tool", URL: "http://a", Source: "github", Category: "Python", Highlight: "开箱即用", AISummary: "一段描述。"},
		{Title: "agent", URL: "http://b", Source: "github-ai", Category: "AI应用", Highlight: "自动化", AISummary: "代理框架。"},
		{Title: "paper", URL: "http://c", Source: "arxiv", Category: "AI前沿", Highlight: "新架构", AISummary: "注意力改进。"},
	}

	digest := New(nil).Digest(articles, nil, "2026-09-01")

	if !strings.HasPrefix(digest, "# 📰 技术日报 - 2026-09-01\n") {
		t.Errorf("digest header missing, got %q", digest[:40])
	}

	// Display order overrides ranking order: AI应用 before AI前沿 before Python.
	appIdx := strings.Index(digest, "## 🚀 AI应用")
	frontierIdx := strings.Index(digest, "## 🔬 AI前沿")
	pyIdx := strings.Index(digest, "## 🐍 Python")
	if appIdx < 0 || frontierIdx < 0 || pyIdx < 0 {
		t.Fatalf("missing category headings in digest:\n%s", digest)
	}
	if !(appIdx < frontierIdx && frontierIdx < pyIdx) {
		t.Errorf("categories not in display order: app=%d frontier=%d py=%d", appIdx, frontierIdx, pyIdx)
	}

	// Numbering is global and follows display order.
	if !strings.Contains(digest, "### 1. [agent](http://b)") {
		t.Errorf("first display entry not numbered 1:\n%s", digest)
	}
	if !strings.Contains(digest, "### 3. [py tool](http://a)") {
		t.Errorf("python entry not numbered 3:\n%s", digest)
	}

	if !strings.Contains(digest, "🏷️ **开箱即用** | 📦 GitHub") {
		t.Errorf("highlight line with source label missing:\n%s", digest)
	}
	if !strings.Contains(digest, "> 一段描述。") {
		t.Errorf("summary quote missing:\n%s", digest)
	}
	if !strings.Contains(digest, "*今日共推送 3 篇精选文章*") {
		t.Errorf("footer count missing:\n%s", digest)
	}
	if !strings.Contains(digest, "*由 AI Tech Briefing Agent 自动生成*") {
		t.Errorf("generation footer missing:\n%s", digest)
	}
}

func TestDigestEmptyGroupsOmitted(t *testing.T) {
	articles := []core.Article{
		{Title: "t", URL: "http://a", Source: "juejin", Category: "Go", AISummary: "s"},
	}

	digest := New(nil).Digest(articles, nil, "2026-09-01")

	if strings.Contains(digest, "## 🤖 AI") {
		t.Errorf("empty AI group should be omitted:\n%s", digest)
	}
	if !strings.Contains(digest, "## 🔷 Go") {
		t.Errorf("Go group missing:\n%s", digest)
	}
}

func TestDigestUnknownCategoriesLast(t *testing.T) {
	articles := []core.Article{
		{Title: "odd", URL: "http://a", Source: "s", Category: "数据库", AISummary: "s1"},
		{Title: "known", URL: "http://b", Source: "s", Category: "Python", AISummary: "s2"},
	}

	digest := New(nil).Digest(articles, nil, "2026-09-01")

	unknownIdx := strings.Index(digest, "## 📎 数据库")
	knownIdx := strings.Index(digest, "## 🐍 Python")
	if unknownIdx < 0 {
		t.Fatalf("unknown category section missing:\n%s", digest)
	}
	if unknownIdx < knownIdx {
		t.Errorf("unknown category must render after known ones")
	}
}

func TestDigestEmptyCategoryBucketedAsOther(t *testing.T) {
	articles := []core.Article{
		{Title: "t", URL: "http://a", Source: "s", Description: "raw desc"},
	}

	digest := New(nil).Digest(articles, nil, "2026-09-01")

	if !strings.Contains(digest, "## 📌 其他") {
		t.Errorf("uncategorized article should land in 其他:\n%s", digest)
	}
	if !strings.Contains(digest, "> raw desc") {
		t.Errorf("missing summary should fall back to description:\n%s", digest)
	}
}

func TestSourceLabel(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{"github", "📦 GitHub"},
		{"github-ai", "🤖 GitHub AI"},
		{"juejin", "📝 掘金"},
		{"hackernews", "🔶 Hacker News"},
		{"huggingface", "🤗 HuggingFace"},
		{"arxiv", "📄 arXiv"},
		{"futurepedia", "🚀 AI工具"},
		{"toolify", "🚀 AI工具"},
		{"someblog", "📄 someblog"},
	}

	for _, tt := range tests {
		if got := SourceLabel(tt.source); got != tt.expected {
			t.Errorf("SourceLabel(%q) = %q, want %q", tt.source, got, tt.expected)
		}
	}
}

func TestDigestSportsSection(t *testing.T) {
	sports := &core.SportsData{
		Matches: &core.MatchList{Matches: []core.Match{
			{Status: "FINISHED", HomeTeam: "Arsenal", AwayTeam: "Chelsea", HomeScore: 2, AwayScore: 1},
			{Status: "FINISHED", HomeTeam: "Spurs", AwayTeam: "Liverpool", HomeScore: 0, AwayScore: 3},
			{Status: "FINISHED", HomeTeam: "Everton", AwayTeam: "Fulham", HomeScore: 1, AwayScore: 1},
			{Status: "SCHEDULED", HomeTeam: "Brighton", AwayTeam: "Wolves"},
		}},
		Standings: &core.StandingTable{Teams: []core.TeamRow{
			{Position: 1, Name: "Arsenal", Played: 10, Won: 8, Draw: 1, Lost: 1, Points: 25},
			{Position: 5, Name: "Villa", Played: 10, Won: 5, Draw: 2, Lost: 3, Points: 17},
		}},
	}

	digest := New(nil).Digest(nil, sports, "2026-09-01")

	if !strings.Contains(digest, "## ⚽ 英超快报") {
		t.Fatalf("sports heading missing:\n%s", digest)
	}
	if !strings.Contains(digest, "- **Arsenal** 2 - 1 Chelsea") {
		t.Errorf("home winner not bolded:\n%s", digest)
	}
	if !strings.Contains(digest, "- Spurs 0 - 3 **Liverpool**") {
		t.Errorf("away winner not bolded:\n%s", digest)
	}
	if !strings.Contains(digest, "- Everton 1 - 1 Fulham") {
		t.Errorf("draw should have no bold:\n%s", digest)
	}
	if strings.Contains(digest, "Brighton") {
		t.Errorf("unfinished match must be skipped:\n%s", digest)
	}
	if !strings.Contains(digest, "| **1** | **Arsenal** | 10 | 8 | 1 | 1 | **25** |") {
		t.Errorf("top-four row not bolded:\n%s", digest)
	}
	if !strings.Contains(digest, "| 5 | Villa | 10 | 5 | 2 | 3 | 17 |") {
		t.Errorf("non-qualifying row should be plain:\n%s", digest)
	}
}

func TestDigestSportsLimits(t *testing.T) {
	matches := make([]core.Match, 8)
	for i := range matches {
		matches[i] = core.Match{Status: "FINISHED", HomeTeam: "H", AwayTeam: "A", HomeScore: 1}
	}
	teams := make([]core.TeamRow, 10)
	for i := range teams {
		teams[i] = core.TeamRow{Position: i + 1, Name: "T"}
	}

	sports := &core.SportsData{
		Matches:   &core.MatchList{Matches: matches},
		Standings: &core.StandingTable{Teams: teams},
	}

	digest := New(nil).Digest(nil, sports, "2026-09-01")

	if got := strings.Count(digest, "- **H** 1 - 0 A"); got != maxRecentMatches {
		t.Errorf("rendered %d matches, want %d", got, maxRecentMatches)
	}
	// Header plus separator plus capped team rows.
	if got := strings.Count(digest, "\n|"); got != maxStandingRows+2 {
		t.Errorf("rendered %d table lines, want %d", got, maxStandingRows+2)
	}
}

func TestDigestEmptySportsOmitted(t *testing.T) {
	tests := []struct {
		name   string
		sports *core.SportsData
	}{
		{"nil payload", nil},
		{"empty payload", &core.SportsData{}},
		{"no finished matches", &core.SportsData{
			Matches: &core.MatchList{Matches: []core.Match{{Status: "SCHEDULED"}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest := New(nil).Digest(nil, tt.sports, "2026-09-01")
			if strings.Contains(digest, "英超快报") {
				t.Errorf("sports section should be omitted:\n%s", digest)
			}
		})
	}
}
