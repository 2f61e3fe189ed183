package core

// Article represents one harvested item flowing through the briefing
// pipeline. Identity fields are populated by the crawler and never change;
// enrichment fields are filled in by the enrichment pipeline.
type Article struct {
	ID          string         `json:"id"`          // Unique identifier assigned by the crawler
	Title       string         `json:"title"`       // Article or project title
	URL         string         `json:"url"`         // Canonical URL
	Source      string         `json:"source"`      // Origin feed tag (e.g. "github", "hackernews", "arxiv")
	Description string         `json:"description"` // Raw description from the source
	Extra       map[string]any `json:"extra"`       // Source-specific attributes (stars, points, ...)
	CrawlTime   string         `json:"crawl_time"`  // ISO timestamp recorded at harvest time

	// Enrichment fields, absent until the pipeline has processed the article.
	Category      string `json:"category,omitempty"`   // Assigned category label
	Highlight     string `json:"highlight,omitempty"`  // Short highlight tag, at most 20 runes
	AISummary     string `json:"ai_summary,omitempty"` // Generated summary, at most 200 runes
	PriorityScore int    `json:"priority_score"`       // Ranking signal, 0 when unscored
}

// RunStats accumulates per-run processing counters. A fresh value is created
// for every pipeline run; counters never leak across runs.
type RunStats struct {
	Success int `json:"success"` // Articles enriched by the classifier
	Failure int `json:"failure"` // Articles that fell back to static classification
	Retries int `json:"retries"` // Classifier calls retried after a transient failure
}

// SportsData is the auxiliary block merged into the digest. Both sub-blocks
// are optional; the renderer treats a missing block as an absent section.
type SportsData struct {
	Matches   *MatchList     `json:"matches"`
	Standings *StandingTable `json:"standings"`
}

// MatchList wraps recent match results.
type MatchList struct {
	Matches []Match `json:"matches"`
}

// Match is a single fixture as recorded by the crawler.
type Match struct {
	Status    string `json:"status"` // "FINISHED", "SCHEDULED", ...
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

// StandingTable wraps the league table rows.
type StandingTable struct {
	Teams []TeamRow `json:"teams"`
}

// TeamRow is one row of the league table.
type TeamRow struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Played   int    `json:"played"`
	Won      int    `json:"won"`
	Draw     int    `json:"draw"`
	Lost     int    `json:"lost"`
	Points   int    `json:"points"`
}
