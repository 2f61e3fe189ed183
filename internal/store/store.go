// Package store reads the day's staged content from Redis. The crawler
// writes articles as a list of JSON documents under a date-stamped key and
// the football block as a single JSON string; this side only ever reads.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dailybrief/internal/core"
	"dailybrief/internal/logger"
)

// Store is the staging-store client.
type Store struct {
	client    *redis.Client
	keyPrefix string
}

// Options configures the Redis connection and key layout.
type Options struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// New creates a staging-store client. The connection is lazy; use Ping to
// verify connectivity.
func New(opts Options) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	return &Store{
		client:    client,
		keyPrefix: opts.KeyPrefix,
	}
}

// todayKey returns the article list key for the current date.
func (s *Store) todayKey() string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, time.Now().Format("2006-01-02"))
}

// footballKey returns the sports block key for the current date.
func (s *Store) footballKey() string {
	return fmt.Sprintf("%s:football:%s", s.keyPrefix, time.Now().Format("2006-01-02"))
}

// TodayArticles reads the day's staged articles in crawl order. A missing
// key yields an empty slice, not an error. Individual documents that fail to
// decode are skipped with a warning so one bad entry cannot sink the batch.
func (s *Store) TodayArticles(ctx context.Context) ([]core.Article, error) {
	key := s.todayKey()
	logger.Debug("reading staged articles", "key", key)

	rawList, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading article list %s: %w", key, err)
	}

	articles := make([]core.Article, 0, len(rawList))
	for _, raw := range rawList {
		var article core.Article
		if err := json.Unmarshal([]byte(raw), &article); err != nil {
			logger.Warn("skipping malformed staged article", "key", key, "error", err.Error())
			continue
		}
		articles = append(articles, article)
	}

	logger.Info("staged articles loaded", "key", key, "count", len(articles))
	return articles, nil
}

// SportsData reads the day's football block. Absence is not an error: both
// a missing key and an unreadable payload yield nil, since the digest must
// render with or without the auxiliary section.
func (s *Store) SportsData(ctx context.Context) (*core.SportsData, error) {
	key := s.footballKey()

	raw, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logger.Debug("no sports data staged", "key", key)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sports data %s: %w", key, err)
	}

	var data core.SportsData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		logger.Warn("skipping malformed sports data", "key", key, "error", err.Error())
		return nil, nil
	}

	return &data, nil
}

// Ping verifies staging-store connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
