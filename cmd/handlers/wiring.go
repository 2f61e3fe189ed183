package handlers

import (
	"dailybrief/internal/config"
	"dailybrief/internal/email"
	"dailybrief/internal/enrich"
	"dailybrief/internal/llm"
	"dailybrief/internal/pipeline"
	"dailybrief/internal/render"
	"dailybrief/internal/store"
)

// newStore builds the staging-store client from configuration.
func newStore(cfg *config.Config) *store.Store {
	return store.New(store.Options{
		Addr:      cfg.Redis.Addr,
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		KeyPrefix: cfg.Briefing.RedisKeyPrefix,
	})
}

// newPipeline wires a full briefing pipeline. When dryRun is set the digest
// is rendered but not delivered.
func newPipeline(cfg *config.Config, st *store.Store, dryRun bool) *pipeline.Pipeline {
	classifier := llm.NewClient(llm.Options{
		APIURL:         cfg.AI.APIURL,
		APIKey:         cfg.AI.APIKey,
		Model:          cfg.AI.Model,
		MaxTokens:      cfg.AI.MaxTokens,
		Temperature:    cfg.AI.Temperature,
		ConnectTimeout: cfg.AI.ConnectTimeoutDuration(),
		RequestTimeout: cfg.AI.RequestTimeoutDuration(),
	})

	opts := enrich.DefaultOptions(cfg.Briefing.InterestTags)
	opts.BonusKeywords = cfg.Briefing.BonusKeywords
	opts.MaxArticles = cfg.Briefing.MaxArticles
	opts.PacingBase = cfg.Briefing.PacingBaseDuration()
	enricher := enrich.New(classifier, opts)

	var sender pipeline.Sender
	if !dryRun && cfg.Email.Host != "" {
		sender = email.NewSender(email.Options{
			Host:        cfg.Email.Host,
			Port:        cfg.Email.Port,
			Username:    cfg.Email.Username,
			Password:    cfg.Email.Password,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
		})
	}

	return pipeline.New(st, enricher, render.New(nil), sender, cfg.Briefing.RecipientEmail)
}
