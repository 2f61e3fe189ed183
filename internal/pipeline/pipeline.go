// Package pipeline orchestrates one briefing run: read the staged batch,
// enrich and rank it, render the digest, and hand it to delivery.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"dailybrief/internal/core"
	"dailybrief/internal/email"
	"dailybrief/internal/logger"
	"dailybrief/internal/render"
)

// Store is the staging-store collaborator.
type Store interface {
	TodayArticles(ctx context.Context) ([]core.Article, error)
	SportsData(ctx context.Context) (*core.SportsData, error)
}

// Enricher is the enrichment-and-ranking stage.
type Enricher interface {
	Process(ctx context.Context, articles []core.Article) ([]core.Article, core.RunStats, error)
}

// Sender is the delivery collaborator.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// RunResult summarizes one completed briefing run.
type RunResult struct {
	RunID    string
	Fetched  int
	Included int
	Stats    core.RunStats
	Digest   string
	Sent     bool
}

// Pipeline wires the collaborators of one briefing run.
type Pipeline struct {
	store     Store
	enricher  Enricher
	renderer  *render.Renderer
	sender    Sender
	recipient string
}

// New creates a pipeline. A nil sender disables delivery (dry runs).
func New(store Store, enricher Enricher, renderer *render.Renderer, sender Sender, recipient string) *Pipeline {
	if renderer == nil {
		renderer = render.New(nil)
	}
	return &Pipeline{
		store:     store,
		enricher:  enricher,
		renderer:  renderer,
		sender:    sender,
		recipient: recipient,
	}
}

// Run executes one briefing run to completion. An empty staged batch
// short-circuits with an empty result and no error. Per-article enrichment
// failures are absorbed by the enricher; only collaborator failures (store
// unreachable, delivery failure) or cancellation surface as run errors. A
// digest is never delivered partially: it is rendered in full before the
// sender sees it.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{RunID: uuid.NewString()}
	logger.Info("briefing run started", "run_id", result.RunID)

	articles, err := p.store.TodayArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching staged articles: %w", err)
	}
	result.Fetched = len(articles)

	if len(articles) == 0 {
		logger.Warn("no staged articles for today, skipping run", "run_id", result.RunID)
		return result, nil
	}

	ranked, stats, err := p.enricher.Process(ctx, articles)
	if err != nil {
		return nil, fmt.Errorf("enriching articles: %w", err)
	}
	result.Stats = stats
	result.Included = len(ranked)

	// The sports block is decorative: a read failure degrades to a digest
	// without the section rather than failing the run.
	sports, err := p.store.SportsData(ctx)
	if err != nil {
		logger.Warn("sports data unavailable", "run_id", result.RunID, "error", err.Error())
		sports = nil
	}

	date := email.Today()
	result.Digest = p.renderer.Digest(ranked, sports, date)

	if p.sender != nil {
		if err := p.sender.Send(ctx, p.recipient, email.SubjectForDate(date), result.Digest); err != nil {
			return nil, fmt.Errorf("delivering digest: %w", err)
		}
		result.Sent = true
	}

	logger.Info("briefing run finished",
		"run_id", result.RunID,
		"fetched", result.Fetched,
		"included", result.Included,
		"success", stats.Success,
		"failure", stats.Failure,
		"retries", stats.Retries,
		"sent", result.Sent)

	return result, nil
}
