package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"dailybrief/internal/core"
	"dailybrief/internal/llm"
)

// scriptedClassifier answers per-article by matching the article title inside
// the prompt. Unmatched prompts succeed with a generic response.
type scriptedClassifier struct {
	responses map[string]string
	failures  map[string]error
	calls     map[string]int
}

func newScriptedClassifier() *scriptedClassifier {
	return &scriptedClassifier{
		responses: make(map[string]string),
		failures:  make(map[string]error),
		calls:     make(map[string]int),
	}
}

func (c *scriptedClassifier) Classify(_ context.Context, prompt string) (string, error) {
	for title, err := range c.failures {
		if strings.Contains(prompt, title) {
			c.calls[title]++
			return "", err
		}
	}
	for title, resp := range c.responses {
		if strings.Contains(prompt, title) {
			c.calls[title]++
			return resp, nil
		}
	}
	return "分类：其他\n亮点：无\n摘要：通用摘要。", nil
}

func fastOptions(tags []string) Options {
	opts := DefaultOptions(tags)
	opts.PacingBase = 0
	opts.PacingStep = 0
	opts.Retry = llm.RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		Multiplier:   1,
		Retryable:    llm.Retryable,
	}
	return opts
}

func TestProcessSuccessfulBatch(t *testing.T) {
	classifier := newScriptedClassifier()
	classifier.responses["模型压缩"] = "分类：AI前沿\n亮点：显存减半\n摘要：量化方法对比。"

	enricher := New(classifier, fastOptions([]string{"AI", "Python"}))

	articles := []core.Article{
		{ID: "1", Title: "模型压缩", Source: "arxiv", Description: "量化综述"},
	}

	ranked, stats, err := enricher.Process(context.Background(), articles)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if stats.Success != 1 || stats.Failure != 0 || stats.Retries != 0 {
		t.Errorf("stats = %+v, want 1 success, 0 failures, 0 retries", stats)
	}

	got := ranked[0]
	if got.Category != "AI前沿" {
		t.Errorf("Category = %q, want AI前沿", got.Category)
	}
	if got.Highlight != "显存减半" {
		t.Errorf("Highlight = %q, want 显存减半", got.Highlight)
	}
	if got.AISummary != "量化方法对比。" {
		t.Errorf("AISummary = %q, want 量化方法对比。", got.AISummary)
	}
	if got.PriorityScore == 0 {
		t.Errorf("PriorityScore = 0, want a category match score")
	}
}

func TestProcessMixedBatch(t *testing.T) {
	classifier := newScriptedClassifier()
	classifier.failures["bad auth"] = &llm.APIError{StatusCode: 401, Message: "API key invalid or expired"}
	classifier.failures["flaky one"] = &llm.APIError{StatusCode: 429, Message: "rate limited"}
	classifier.failures["flaky two"] = &llm.APIError{StatusCode: 503, Message: "overloaded"}

	enricher := New(classifier, fastOptions([]string{"AI"}))

	articles := make([]core.Article, 0, 12)
	for i := 0; i < 9; i++ {
		articles = append(articles, core.Article{
			ID:    fmt.Sprintf("ok-%d", i),
			Title: fmt.Sprintf("healthy article %d", i),
		})
	}
	articles = append(articles,
		core.Article{ID: "f1", Title: "bad auth", Source: "huggingface", Description: "auth desc"},
		core.Article{ID: "f2", Title: "flaky one", Source: "github-ai", Description: "flaky desc"},
		core.Article{ID: "f3", Title: "flaky two", Source: "unknown-src", Description: "flaky desc"},
	)

	ranked, stats, err := enricher.Process(context.Background(), articles)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if stats.Success != 9 {
		t.Errorf("Success = %d, want 9", stats.Success)
	}
	if stats.Failure != 3 {
		t.Errorf("Failure = %d, want 3", stats.Failure)
	}
	// Both retryable failures exhaust the 3-attempt budget (2 retries each);
	// the 401 aborts on the first attempt.
	if stats.Retries != 4 {
		t.Errorf("Retries = %d, want 4", stats.Retries)
	}
	if classifier.calls["bad auth"] != 1 {
		t.Errorf("non-retryable article called %d times, want 1", classifier.calls["bad auth"])
	}
	if classifier.calls["flaky one"] != 3 {
		t.Errorf("retryable article called %d times, want 3", classifier.calls["flaky one"])
	}

	if len(ranked) != 10 {
		t.Fatalf("len(ranked) = %d, want the configured maximum of 10", len(ranked))
	}
}

func TestProcessFallbackFields(t *testing.T) {
	classifier := newScriptedClassifier()
	classifier.failures["hf paper"] = &llm.APIError{StatusCode: 500, Message: "server error"}
	classifier.failures["tool drop"] = &llm.APIError{StatusCode: 500, Message: "server error"}
	classifier.failures["mystery"] = &llm.APIError{StatusCode: 500, Message: "server error"}

	enricher := New(classifier, fastOptions([]string{"AI"}))

	articles := []core.Article{
		{ID: "1", Title: "hf paper", Source: "huggingface", Description: "a dataset release"},
		{ID: "2", Title: "tool drop", Source: "futurepedia", Description: "a new tool"},
		{ID: "3", Title: "mystery", Source: "some-blog", Description: "general news"},
	}

	ranked, _, err := enricher.Process(context.Background(), articles)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	byID := make(map[string]core.Article, len(ranked))
	for _, a := range ranked {
		byID[a.ID] = a
	}

	tests := []struct {
		id                string
		expectedCategory  string
		expectedHighlight string
	}{
		{"1", "AI前沿", "技术论文"},
		{"2", "AI应用", "AI工具"},
		{"3", "其他", "技术资讯"},
	}
	for _, tt := range tests {
		a := byID[tt.id]
		if a.Category != tt.expectedCategory {
			t.Errorf("article %s Category = %q, want %q", tt.id, a.Category, tt.expectedCategory)
		}
		if a.Highlight != tt.expectedHighlight {
			t.Errorf("article %s Highlight = %q, want %q", tt.id, a.Highlight, tt.expectedHighlight)
		}
		if a.AISummary != a.Description {
			t.Errorf("article %s AISummary = %q, want the description", tt.id, a.AISummary)
		}
		if a.PriorityScore != 0 {
			t.Errorf("article %s PriorityScore = %d, want 0", tt.id, a.PriorityScore)
		}
	}
}

func TestProcessEmptyBatch(t *testing.T) {
	enricher := New(newScriptedClassifier(), fastOptions([]string{"AI"}))

	ranked, stats, err := enricher.Process(context.Background(), nil)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(ranked) != 0 {
		t.Errorf("len(ranked) = %d, want 0", len(ranked))
	}
	if stats != (core.RunStats{}) {
		t.Errorf("stats = %+v, want zero value", stats)
	}
}

func TestProcessContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	enricher := New(newScriptedClassifier(), fastOptions([]string{"AI"}))
	_, _, err := enricher.Process(ctx, []core.Article{{ID: "1", Title: "t"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	classifier := newScriptedClassifier()
	classifier.responses["shared"] = "分类：AI\n亮点：亮点\n摘要：摘要。"

	enricher := New(classifier, fastOptions([]string{"AI"}))

	articles := []core.Article{{ID: "1", Title: "shared"}}
	if _, _, err := enricher.Process(context.Background(), articles); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if articles[0].Category != "" {
		t.Errorf("input article was mutated: Category = %q", articles[0].Category)
	}
}
