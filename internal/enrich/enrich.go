// Package enrich drives per-article AI classification: prompt building,
// retried classifier calls, response parsing, fallback on failure, priority
// scoring, and ranking of the enriched batch.
package enrich

import (
	"context"
	"time"

	"dailybrief/internal/core"
	"dailybrief/internal/llm"
	"dailybrief/internal/logger"
	"dailybrief/internal/parser"
	"dailybrief/internal/rank"
)

// Classifier is the AI collaborator: one prompt in, raw model text out.
type Classifier interface {
	Classify(ctx context.Context, prompt string) (string, error)
}

// Options configures enrichment behavior.
type Options struct {
	// InterestTags order the categories by interest; earlier tags rank
	// higher and the list also feeds the classification prompt.
	InterestTags []string
	// BonusKeywords feed the priority scorer's relevance bonus.
	BonusKeywords []string
	// MaxArticles caps the ranked output.
	MaxArticles int
	// PacingBase and PacingStep control the inter-request delay:
	// base + (i%3)*step for the i-th article.
	PacingBase time.Duration
	PacingStep time.Duration
	// Retry overrides the classifier retry policy.
	Retry llm.RetryPolicy
}

// DefaultOptions returns the standard enrichment settings.
func DefaultOptions(interestTags []string) Options {
	return Options{
		InterestTags: interestTags,
		MaxArticles:  10,
		PacingBase:   500 * time.Millisecond,
		PacingStep:   200 * time.Millisecond,
		Retry:        llm.DefaultRetryPolicy(),
	}
}

// Enricher runs the enrichment pipeline over a batch of articles.
type Enricher struct {
	classifier Classifier
	scorer     *rank.Scorer
	opts       Options
}

// New creates an enricher.
func New(classifier Classifier, opts Options) *Enricher {
	if opts.MaxArticles <= 0 {
		opts.MaxArticles = 10
	}
	if opts.Retry.MaxAttempts == 0 {
		opts.Retry = llm.DefaultRetryPolicy()
	}
	return &Enricher{
		classifier: classifier,
		scorer:     rank.NewScorer(opts.InterestTags, opts.BonusKeywords),
		opts:       opts,
	}
}

// Process enriches every article in order, ranks the batch by priority score
// and truncates it to the configured maximum. A failing article never aborts
// the batch: it is degraded to the fallback classification and counted in
// the returned stats. Only context cancellation stops the run.
func (e *Enricher) Process(ctx context.Context, articles []core.Article) ([]core.Article, core.RunStats, error) {
	stats := core.RunStats{}
	enriched := make([]core.Article, len(articles))
	copy(enriched, articles)

	logger.Info("enrichment started", "articles", len(enriched))

	for i := range enriched {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		article := &enriched[i]
		logger.Info("processing article", "index", i+1, "total", len(enriched), "title", article.Title)

		retries, err := e.enrichOne(ctx, article)
		stats.Retries += retries
		if err != nil {
			if ctx.Err() != nil {
				return nil, stats, ctx.Err()
			}
			stats.Failure++
			logger.Warn("enrichment failed, applying fallback", "title", article.Title, "error", err.Error())
			ApplyFallback(article)
		} else {
			stats.Success++
			logger.Debug("article enriched", "category", article.Category, "score", article.PriorityScore)
		}

		// Pace requests to stay under upstream rate limits. The delay is a
		// blocking pause that must still honor cancellation.
		if i < len(enriched)-1 {
			if err := e.pace(ctx, i); err != nil {
				return nil, stats, err
			}
		}
	}

	ranked := rank.Rank(enriched, e.opts.MaxArticles)

	logger.Info("enrichment finished",
		"success", stats.Success,
		"failure", stats.Failure,
		"retries", stats.Retries,
		"selected", len(ranked))

	return ranked, stats, nil
}

// enrichOne classifies a single article, filling its enrichment fields on
// success. It returns the number of classifier retries performed.
func (e *Enricher) enrichOne(ctx context.Context, article *core.Article) (int, error) {
	prompt := BuildPrompt(*article, e.opts.InterestTags)

	response, retries, err := e.opts.Retry.Do(ctx, func(ctx context.Context) (string, error) {
		return e.classifier.Classify(ctx, prompt)
	})
	if err != nil {
		return retries, err
	}

	fields, err := parser.Parse(response)
	if err != nil {
		return retries, err
	}

	article.Category = fields.Category
	article.Highlight = fields.Highlight
	article.AISummary = fields.Summary
	article.PriorityScore = e.scorer.Score(*article)

	return retries, nil
}

// pace blocks for the inter-request delay after the i-th article:
// base + (i%3)*step, so consecutive requests are not evenly spaced.
func (e *Enricher) pace(ctx context.Context, i int) error {
	delay := e.opts.PacingBase + time.Duration(i%3)*e.opts.PacingStep
	if delay <= 0 {
		return nil
	}

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
