package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/datatypes"

	"newsdesk-backend/internal/enhancement/domain"
	"newsdesk-backend/pkg/apperrors"
)

// fakeGenerator replays scripted responses and counts invocations.
type fakeGenerator struct {
	responses []string
	errs      []error
	calls     int
}

func (g *fakeGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	i := g.calls
	g.calls++
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i < len(g.responses) {
		return g.responses[i], nil
	}
	return "", fmt.Errorf("no scripted response for call %d", i)
}

// memoryCache is an in-memory ArtifactCacheRepository counting writes.
type memoryCache struct {
	summaries    map[string]*domain.SummaryCache
	sentiments   map[string]*domain.SentimentCache
	qas          map[string]*domain.QACache
	captions     map[string]*domain.CaptionCache
	enhancements map[string]*domain.EnhancementCache
	writes       int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		summaries:    make(map[string]*domain.SummaryCache),
		sentiments:   make(map[string]*domain.SentimentCache),
		qas:          make(map[string]*domain.QACache),
		captions:     make(map[string]*domain.CaptionCache),
		enhancements: make(map[string]*domain.EnhancementCache),
	}
}

func (c *memoryCache) GetSummary(hash string) (*domain.SummaryCache, error) {
	return c.summaries[hash], nil
}

func (c *memoryCache) SaveSummary(hash, summary, style, language string, ttl time.Duration) error {
	c.writes++
	c.summaries[hash] = &domain.SummaryCache{
		ContentHash: hash, Summary: summary, Style: style, Language: language,
		ExpiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (c *memoryCache) GetSentiment(hash string) (*domain.SentimentCache, error) {
	return c.sentiments[hash], nil
}

func (c *memoryCache) SaveSentiment(hash, sentiment string, confidence float64, ttl time.Duration) error {
	c.writes++
	c.sentiments[hash] = &domain.SentimentCache{
		ContentHash: hash, Sentiment: sentiment, Confidence: confidence,
		ExpiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (c *memoryCache) GetQA(hash string) (*domain.QACache, error) {
	return c.qas[hash], nil
}

func (c *memoryCache) SaveQA(hash string, questions []domain.QuestionAnswer, ttl time.Duration) error {
	c.writes++
	c.qas[hash] = &domain.QACache{
		ContentHash: hash, Questions: questions, ExpiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (c *memoryCache) GetCaption(hash string) (*domain.CaptionCache, error) {
	return c.captions[hash], nil
}

func (c *memoryCache) SaveCaption(hash, caption string, ttl time.Duration) error {
	c.writes++
	c.captions[hash] = &domain.CaptionCache{
		ContentHash: hash, Caption: caption, ExpiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (c *memoryCache) GetEnhancement(hash string) (*domain.EnhancementCache, error) {
	return c.enhancements[hash], nil
}

func (c *memoryCache) SaveEnhancement(hash, kind string, payload []byte, ttl time.Duration) error {
	c.writes++
	c.enhancements[hash] = &domain.EnhancementCache{
		ContentHash: hash, Kind: kind, Payload: datatypes.JSON(payload),
		ExpiresAt: time.Now().Add(ttl),
	}
	return nil
}

func newTestOrchestrator(generator *fakeGenerator) (*Orchestrator, *memoryCache) {
	cache := newMemoryCache()
	selector := newTestSelector(&stubQuota{allow: true, current: 1})
	ttls := CacheTTLs{
		Summary: time.Hour, Sentiment: time.Hour, QA: time.Hour,
		Caption: time.Hour, Enhancement: time.Hour,
	}
	return NewOrchestrator(cache, selector, generator, ttls), cache
}

const testArticle = "Apple reports record Q3 earnings driven by iPhone sales"

func TestSummarizeCachesResult(t *testing.T) {
	generator := &fakeGenerator{responses: []string{`{"summary":"Record iPhone earnings."}`}}
	orchestrator, cache := newTestOrchestrator(generator)
	ctx := context.Background()

	summary, err := orchestrator.Summarize(ctx, testArticle, "concise", "en")
	if err != nil {
		t.Fatal(err)
	}
	if summary != "Record iPhone earnings." {
		t.Errorf("summary = %q", summary)
	}
	if generator.calls != 1 {
		t.Fatalf("AI calls = %d, want 1", generator.calls)
	}
	if cache.writes != 1 {
		t.Errorf("cache writes = %d, want 1", cache.writes)
	}

	again, err := orchestrator.Summarize(ctx, testArticle, "concise", "en")
	if err != nil {
		t.Fatal(err)
	}
	if again != summary {
		t.Errorf("cached summary = %q, want %q", again, summary)
	}
	if generator.calls != 1 {
		t.Errorf("AI calls after cached read = %d, want still 1", generator.calls)
	}
	if cache.writes != 1 {
		t.Errorf("cache writes after cached read = %d, want still 1", cache.writes)
	}
}

func TestSummarizeStyleVariantsDoNotShareCache(t *testing.T) {
	generator := &fakeGenerator{responses: []string{
		`{"summary":"Concise take."}`,
		`{"summary":"A much more detailed take on the earnings report."}`,
	}}
	orchestrator, _ := newTestOrchestrator(generator)
	ctx := context.Background()

	concise, err := orchestrator.Summarize(ctx, testArticle, "concise", "en")
	if err != nil {
		t.Fatal(err)
	}
	detailed, err := orchestrator.Summarize(ctx, testArticle, "detailed", "en")
	if err != nil {
		t.Fatal(err)
	}
	if concise == detailed {
		t.Error("style variants returned the same artifact")
	}
	if generator.calls != 2 {
		t.Errorf("AI calls = %d, want 2", generator.calls)
	}
}

func TestSentimentInvalidEnumFallsBack(t *testing.T) {
	generator := &fakeGenerator{responses: []string{
		`{"sentiment":"ecstatic"}`,
		`{"sentiment":"positive","confidence":0.9}`,
	}}
	orchestrator, _ := newTestOrchestrator(generator)

	result, err := orchestrator.AnalyzeSentiment(context.Background(), testArticle)
	if err != nil {
		t.Fatal(err)
	}
	if result.Sentiment != "positive" || result.Confidence != 0.9 {
		t.Errorf("result = %+v, want positive/0.9", result)
	}
	if generator.calls != 2 {
		t.Errorf("AI calls = %d, want exactly 2", generator.calls)
	}
}

func TestSentimentAllModelsExhausted(t *testing.T) {
	boom := errors.New("upstream down")
	generator := &fakeGenerator{errs: []error{boom, boom, boom}}
	orchestrator, _ := newTestOrchestrator(generator)

	_, err := orchestrator.AnalyzeSentiment(context.Background(), testArticle)
	var exhausted *apperrors.UpstreamExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("err = %v, want UpstreamExhaustedError", err)
	}
	if generator.calls != 3 {
		t.Errorf("AI calls = %d, want one per chain model", generator.calls)
	}
}

func TestEnhanceEmptyContentFailsFast(t *testing.T) {
	generator := &fakeGenerator{}
	orchestrator, _ := newTestOrchestrator(generator)

	_, err := orchestrator.Enhance(context.Background(), "   ", []domain.TaskKind{domain.TaskSentiment})
	var validation *apperrors.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if generator.calls != 0 {
		t.Errorf("AI calls = %d, want 0 on empty content", generator.calls)
	}
}

func TestEnhanceIndependentTaskOutcomes(t *testing.T) {
	generator := &fakeGenerator{responses: []string{
		`{"sentiment":"neutral","confidence":0.7}`,
		`not json at all`,
		`still not json`,
		`nope`,
	}}
	orchestrator, _ := newTestOrchestrator(generator)

	outcomes, err := orchestrator.Enhance(context.Background(), testArticle,
		[]domain.TaskKind{domain.TaskSentiment, domain.TaskTags})
	if err != nil {
		t.Fatal(err)
	}
	if outcomes[domain.TaskSentiment].Err != nil {
		t.Errorf("sentiment errored: %v", outcomes[domain.TaskSentiment].Err)
	}
	if outcomes[domain.TaskTags].Err == nil {
		t.Error("tags should have exhausted the chain")
	}
}

func TestEnhanceCombinedPartialSuccess(t *testing.T) {
	generator := &fakeGenerator{responses: []string{
		`{"sentiment":{"sentiment":"negative","confidence":0.8},"complexity":"galactic"}`,
	}}
	orchestrator, _ := newTestOrchestrator(generator)

	combined, err := orchestrator.EnhanceCombined(context.Background(), testArticle,
		[]domain.TaskKind{domain.TaskSentiment, domain.TaskComplexityMeter, domain.TaskKeyPoints})
	if err != nil {
		t.Fatal(err)
	}
	if combined.Sentiment == nil || combined.Sentiment.Sentiment != "negative" {
		t.Errorf("sentiment = %+v", combined.Sentiment)
	}
	if combined.ComplexityMeter != nil {
		t.Error("out-of-enum complexity should not resolve")
	}
	if combined.TaskErrors[domain.TaskComplexityMeter] == nil {
		t.Error("expected a complexity task error")
	}
	if combined.TaskErrors[domain.TaskKeyPoints] == nil {
		t.Error("expected a key_points task error")
	}
	if generator.calls != 1 {
		t.Errorf("AI calls = %d, want 1", generator.calls)
	}
}

func TestEnhanceCombinedInvalidScopeFailsGeoTask(t *testing.T) {
	generator := &fakeGenerator{responses: []string{
		`{"sentiment":{"sentiment":"neutral","confidence":0.5},` +
			`"locations":[{"name":"Gotham","country":"US","scope":"galactic"}]}`,
	}}
	orchestrator, _ := newTestOrchestrator(generator)

	combined, err := orchestrator.EnhanceCombined(context.Background(), testArticle,
		[]domain.TaskKind{domain.TaskSentiment, domain.TaskGeoExtraction})
	if err != nil {
		t.Fatal(err)
	}
	if combined.Locations != nil {
		t.Errorf("locations = %+v, out-of-enum scope must not resolve", combined.Locations)
	}
	if combined.TaskErrors[domain.TaskGeoExtraction] == nil {
		t.Error("expected a geo_extraction task error for an invalid scope")
	}
	if combined.Sentiment == nil || combined.Sentiment.Sentiment != "neutral" {
		t.Errorf("sentiment = %+v, valid keys must still resolve", combined.Sentiment)
	}
}

func TestEnhanceCombinedNoValidKeyTriesNextModel(t *testing.T) {
	generator := &fakeGenerator{responses: []string{
		`{"complexity":"galactic"}`,
		`{"sentiment":{"sentiment":"positive","confidence":0.6},"complexity":"easy"}`,
	}}
	orchestrator, _ := newTestOrchestrator(generator)

	combined, err := orchestrator.EnhanceCombined(context.Background(), testArticle,
		[]domain.TaskKind{domain.TaskSentiment, domain.TaskComplexityMeter})
	if err != nil {
		t.Fatal(err)
	}
	if generator.calls != 2 {
		t.Fatalf("AI calls = %d, want 2 (zero valid keys forces fallback)", generator.calls)
	}
	if combined.Sentiment == nil || combined.Sentiment.Sentiment != "positive" {
		t.Errorf("sentiment = %+v", combined.Sentiment)
	}
	if combined.ComplexityMeter == nil || *combined.ComplexityMeter != "easy" {
		t.Error("complexity should resolve on the fallback model")
	}
}
