package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"newsdesk-backend/internal/enhancement/domain"
	"newsdesk-backend/internal/enhancement/repository"
	"newsdesk-backend/pkg/ai"
	"newsdesk-backend/pkg/apperrors"
)

// CacheTTLs configures artifact lifetimes per kind.
type CacheTTLs struct {
	Summary     time.Duration
	Sentiment   time.Duration
	QA          time.Duration
	Caption     time.Duration
	Enhancement time.Duration
}

// TaskOutcome is the per-task result of a multi-task request. One task's
// failure never invalidates another's success.
type TaskOutcome struct {
	Value any   `json:"value,omitempty"`
	Err   error `json:"-"`
}

// CombinedResult holds whichever fields of a combined enhancement call
// resolved, plus per-task errors for the keys that did not.
type CombinedResult struct {
	Sentiment       *domain.SentimentResult
	KeyPoints       []string
	ComplexityMeter *string
	Locations       []domain.Location
	Tags            []string
	Questions       []domain.QuestionAnswer
	Insights        []domain.NewsInsight
	TaskErrors      map[domain.TaskKind]error
}

// Orchestrator runs AI enhancement tasks against article content: cache
// first, then quota-gated model selection, generation, strict parsing and
// write-through.
type Orchestrator struct {
	cache     repository.ArtifactCacheRepository
	selector  *ModelSelector
	generator ai.TextGenerator
	ttls      CacheTTLs
}

func NewOrchestrator(cache repository.ArtifactCacheRepository, selector *ModelSelector, generator ai.TextGenerator, ttls CacheTTLs) *Orchestrator {
	return &Orchestrator{
		cache:     cache,
		selector:  selector,
		generator: generator,
		ttls:      ttls,
	}
}

// generateParsed walks the eligible model chain: generate, normalize, parse
// strictly. A parse failure on one model falls through to the next; when the
// chain runs out the task gets its terminal error.
func (o *Orchestrator) generateParsed(ctx context.Context, task, prompt string, parse func(raw string) error) error {
	models, err := o.selector.EligibleModels(1)
	if err != nil {
		return err
	}

	for _, model := range models {
		raw, err := o.generator.Generate(ctx, model, prompt)
		if err != nil {
			log.Printf("[Enhance] %s: model %s failed: %v, trying next", task, model, err)
			continue
		}
		if err := parse(raw); err != nil {
			perr := &apperrors.UpstreamParseError{Task: task, Model: model, Err: err}
			log.Printf("[Enhance] %v, trying next model", perr)
			continue
		}
		return nil
	}
	return &apperrors.UpstreamExhaustedError{Task: task}
}

// cacheWrite is a non-critical write-through: a failure is logged and
// swallowed, never aborting an otherwise-successful result.
func cacheWrite(what string, err error) {
	if err != nil {
		log.Printf("[Enhance] Failed to cache %s: %v", what, err)
	}
}

func requireContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return &apperrors.ValidationError{Message: "article content is required"}
	}
	return nil
}

// Summarize returns a summary in the requested style and language, cached
// under the hash of (content, style, language).
func (o *Orchestrator) Summarize(ctx context.Context, content, style, language string) (string, error) {
	if err := requireContent(content); err != nil {
		return "", err
	}
	hash := domain.ContentHash(content, style, language)
	if cached, err := o.cache.GetSummary(hash); err == nil && cached != nil {
		return cached.Summary, nil
	}

	var result struct {
		Summary string `json:"summary"`
	}
	err := o.generateParsed(ctx, "summarization", summaryPrompt(content, style, language), func(raw string) error {
		if err := ai.DecodeJSON(raw, &result); err != nil {
			return err
		}
		if strings.TrimSpace(result.Summary) == "" {
			return fmt.Errorf("missing summary field")
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	cacheWrite("summary", o.cache.SaveSummary(hash, result.Summary, style, language, o.ttls.Summary))
	return result.Summary, nil
}

// AnalyzeSentiment classifies article sentiment on the closed
// positive/negative/neutral scale.
func (o *Orchestrator) AnalyzeSentiment(ctx context.Context, content string) (*domain.SentimentResult, error) {
	if err := requireContent(content); err != nil {
		return nil, err
	}
	hash := domain.ContentHash(content, "sentiment")
	if cached, err := o.cache.GetSentiment(hash); err == nil && cached != nil {
		return &domain.SentimentResult{Sentiment: cached.Sentiment, Confidence: cached.Confidence}, nil
	}

	var result domain.SentimentResult
	err := o.generateParsed(ctx, "sentiment_analysis", sentimentPrompt(content), func(raw string) error {
		if err := ai.DecodeJSON(raw, &result); err != nil {
			return err
		}
		return ai.ValidateEnum("sentiment", result.Sentiment, domain.SentimentValues...)
	})
	if err != nil {
		return nil, err
	}

	cacheWrite("sentiment", o.cache.SaveSentiment(hash, result.Sentiment, result.Confidence, o.ttls.Sentiment))
	return &result, nil
}

// GenerateQuestions produces reader Q&A pairs for an article.
func (o *Orchestrator) GenerateQuestions(ctx context.Context, content string) ([]domain.QuestionAnswer, error) {
	if err := requireContent(content); err != nil {
		return nil, err
	}
	hash := domain.ContentHash(content, "questions")
	if cached, err := o.cache.GetQA(hash); err == nil && cached != nil {
		return cached.Questions, nil
	}

	var result struct {
		Questions []domain.QuestionAnswer `json:"questions"`
	}
	err := o.generateParsed(ctx, "question_generation", questionsPrompt(content), func(raw string) error {
		if err := ai.DecodeJSON(raw, &result); err != nil {
			return err
		}
		if len(result.Questions) == 0 {
			return fmt.Errorf("missing questions field")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cacheWrite("questions", o.cache.SaveQA(hash, result.Questions, o.ttls.QA))
	return result.Questions, nil
}

// GenerateCaption produces a social media caption for an article.
func (o *Orchestrator) GenerateCaption(ctx context.Context, content string) (string, error) {
	if err := requireContent(content); err != nil {
		return "", err
	}
	hash := domain.ContentHash(content, "caption")
	if cached, err := o.cache.GetCaption(hash); err == nil && cached != nil {
		return cached.Caption, nil
	}

	var result struct {
		Caption string `json:"caption"`
	}
	err := o.generateParsed(ctx, "caption_generation", captionPrompt(content), func(raw string) error {
		if err := ai.DecodeJSON(raw, &result); err != nil {
			return err
		}
		if strings.TrimSpace(result.Caption) == "" {
			return fmt.Errorf("missing caption field")
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	cacheWrite("caption", o.cache.SaveCaption(hash, result.Caption, o.ttls.Caption))
	return result.Caption, nil
}

// getGeneric reads a kind-scoped artifact from the generic enhancement cache.
func (o *Orchestrator) getGeneric(kind, hash string, dest any) bool {
	cached, err := o.cache.GetEnhancement(hash)
	if err != nil || cached == nil {
		return false
	}
	if err := json.Unmarshal(cached.Payload, dest); err != nil {
		log.Printf("[Enhance] Corrupt %s cache entry for %s: %v", kind, hash[:12], err)
		return false
	}
	return true
}

func (o *Orchestrator) saveGeneric(kind, hash string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		cacheWrite(kind, err)
		return
	}
	cacheWrite(kind, o.cache.SaveEnhancement(hash, kind, payload, o.ttls.Enhancement))
}

// ExtractTags produces topical tags for an article.
func (o *Orchestrator) ExtractTags(ctx context.Context, content string) ([]string, error) {
	if err := requireContent(content); err != nil {
		return nil, err
	}
	hash := domain.ContentHash(content, "tags")
	var tags []string
	if o.getGeneric("tags", hash, &tags) {
		return tags, nil
	}

	var result struct {
		Tags []string `json:"tags"`
	}
	err := o.generateParsed(ctx, "tag_extraction", tagsPrompt(content), func(raw string) error {
		if err := ai.DecodeJSON(raw, &result); err != nil {
			return err
		}
		if len(result.Tags) == 0 {
			return fmt.Errorf("missing tags field")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.saveGeneric("tags", hash, result.Tags)
	return result.Tags, nil
}

// ExtractKeyPoints produces the article's most important points.
func (o *Orchestrator) ExtractKeyPoints(ctx context.Context, content string) ([]string, error) {
	if err := requireContent(content); err != nil {
		return nil, err
	}
	hash := domain.ContentHash(content, "key_points")
	var points []string
	if o.getGeneric("key_points", hash, &points) {
		return points, nil
	}

	var result struct {
		KeyPoints []string `json:"key_points"`
	}
	err := o.generateParsed(ctx, "key_point_extraction", keyPointsPrompt(content), func(raw string) error {
		if err := ai.DecodeJSON(raw, &result); err != nil {
			return err
		}
		if len(result.KeyPoints) == 0 {
			return fmt.Errorf("missing key_points field")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.saveGeneric("key_points", hash, result.KeyPoints)
	return result.KeyPoints, nil
}

// RateComplexity classifies article difficulty on the closed
// easy/medium/hard scale.
func (o *Orchestrator) RateComplexity(ctx context.Context, content string) (string, error) {
	if err := requireContent(content); err != nil {
		return "", err
	}
	hash := domain.ContentHash(content, "complexity_meter")
	var level string
	if o.getGeneric("complexity_meter", hash, &level) {
		return level, nil
	}

	var result struct {
		Complexity string `json:"complexity"`
		Reason     string `json:"reason"`
	}
	err := o.generateParsed(ctx, "complexity_rating", complexityPrompt(content), func(raw string) error {
		if err := ai.DecodeJSON(raw, &result); err != nil {
			return err
		}
		return ai.ValidateEnum("complexity", result.Complexity, domain.ComplexityValues...)
	})
	if err != nil {
		return "", err
	}

	o.saveGeneric("complexity_meter", hash, result.Complexity)
	return result.Complexity, nil
}

// ExtractLocations extracts the places an article is about.
func (o *Orchestrator) ExtractLocations(ctx context.Context, content string) ([]domain.Location, error) {
	if err := requireContent(content); err != nil {
		return nil, err
	}
	hash := domain.ContentHash(content, "locations")
	var locations []domain.Location
	if o.getGeneric("locations", hash, &locations) {
		return locations, nil
	}

	var result struct {
		Locations []domain.Location `json:"locations"`
	}
	err := o.generateParsed(ctx, "geo_extraction", geoPrompt(content), func(raw string) error {
		if err := ai.DecodeJSON(raw, &result); err != nil {
			return err
		}
		for _, loc := range result.Locations {
			if loc.Scope != "" {
				if err := ai.ValidateEnum("scope", loc.Scope, domain.ImpactValues...); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.saveGeneric("locations", hash, result.Locations)
	return result.Locations, nil
}

// GenerateInsights produces analytical insights about an article.
func (o *Orchestrator) GenerateInsights(ctx context.Context, content string) ([]domain.NewsInsight, error) {
	if err := requireContent(content); err != nil {
		return nil, err
	}
	hash := domain.ContentHash(content, "insights")
	var insights []domain.NewsInsight
	if o.getGeneric("insights", hash, &insights) {
		return insights, nil
	}

	var result struct {
		Insights []domain.NewsInsight `json:"insights"`
	}
	err := o.generateParsed(ctx, "insight_generation", insightsPrompt(content), func(raw string) error {
		if err := ai.DecodeJSON(raw, &result); err != nil {
			return err
		}
		if len(result.Insights) == 0 {
			return fmt.Errorf("missing insights field")
		}
		for _, ins := range result.Insights {
			if err := ai.ValidateEnum("impact", ins.Impact, domain.ImpactValues...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.saveGeneric("insights", hash, result.Insights)
	return result.Insights, nil
}

// Enhance runs each requested task against the content. Empty content fails
// fast for all tasks; otherwise each task resolves or fails independently.
func (o *Orchestrator) Enhance(ctx context.Context, content string, tasks []domain.TaskKind) (map[domain.TaskKind]TaskOutcome, error) {
	if err := requireContent(content); err != nil {
		return nil, err
	}

	outcomes := make(map[domain.TaskKind]TaskOutcome, len(tasks))
	for _, task := range tasks {
		switch task {
		case domain.TaskSummary:
			value, err := o.Summarize(ctx, content, "standard", "en")
			outcomes[task] = TaskOutcome{Value: value, Err: err}
		case domain.TaskSentiment:
			value, err := o.AnalyzeSentiment(ctx, content)
			outcomes[task] = TaskOutcome{Value: value, Err: err}
		case domain.TaskKeyPoints:
			value, err := o.ExtractKeyPoints(ctx, content)
			outcomes[task] = TaskOutcome{Value: value, Err: err}
		case domain.TaskComplexityMeter:
			value, err := o.RateComplexity(ctx, content)
			outcomes[task] = TaskOutcome{Value: value, Err: err}
		case domain.TaskGeoExtraction:
			value, err := o.ExtractLocations(ctx, content)
			outcomes[task] = TaskOutcome{Value: value, Err: err}
		case domain.TaskTags:
			value, err := o.ExtractTags(ctx, content)
			outcomes[task] = TaskOutcome{Value: value, Err: err}
		case domain.TaskQuestionAnswer:
			value, err := o.GenerateQuestions(ctx, content)
			outcomes[task] = TaskOutcome{Value: value, Err: err}
		case domain.TaskNewsInsights:
			value, err := o.GenerateInsights(ctx, content)
			outcomes[task] = TaskOutcome{Value: value, Err: err}
		case domain.TaskSocialCaption:
			value, err := o.GenerateCaption(ctx, content)
			outcomes[task] = TaskOutcome{Value: value, Err: err}
		default:
			outcomes[task] = TaskOutcome{Err: &apperrors.ValidationError{Message: fmt.Sprintf("unknown task %q", task)}}
		}
	}
	return outcomes, nil
}

// EnhanceCombined runs the requested tasks through one composite prompt and
// one external call. Keys parse independently: a missing or invalid key
// fails only its own task. A response with no valid key at all counts as a
// parse failure and falls through to the next model.
func (o *Orchestrator) EnhanceCombined(ctx context.Context, content string, tasks []domain.TaskKind) (*CombinedResult, error) {
	if err := requireContent(content); err != nil {
		return nil, err
	}

	combined := &CombinedResult{TaskErrors: make(map[domain.TaskKind]error)}
	err := o.generateParsed(ctx, "combined_enhancement", combinedPrompt(content, tasks), func(raw string) error {
		var payload struct {
			Sentiment  *domain.SentimentResult `json:"sentiment"`
			KeyPoints  []string                `json:"key_points"`
			Complexity string                  `json:"complexity"`
			Locations  []domain.Location       `json:"locations"`
			Tags       []string                `json:"tags"`
			Questions  []domain.QuestionAnswer `json:"questions"`
			Insights   []domain.NewsInsight    `json:"insights"`
		}
		if err := ai.DecodeJSON(raw, &payload); err != nil {
			return err
		}

		result := &CombinedResult{TaskErrors: make(map[domain.TaskKind]error)}
		valid := 0
		for _, task := range tasks {
			switch task {
			case domain.TaskSentiment:
				if payload.Sentiment == nil {
					result.TaskErrors[task] = fmt.Errorf("missing sentiment key")
					continue
				}
				if err := ai.ValidateEnum("sentiment", payload.Sentiment.Sentiment, domain.SentimentValues...); err != nil {
					result.TaskErrors[task] = err
					continue
				}
				result.Sentiment = payload.Sentiment
				valid++
			case domain.TaskKeyPoints:
				if len(payload.KeyPoints) == 0 {
					result.TaskErrors[task] = fmt.Errorf("missing key_points key")
					continue
				}
				result.KeyPoints = payload.KeyPoints
				valid++
			case domain.TaskComplexityMeter:
				if err := ai.ValidateEnum("complexity", payload.Complexity, domain.ComplexityValues...); err != nil {
					result.TaskErrors[task] = err
					continue
				}
				result.ComplexityMeter = &payload.Complexity
				valid++
			case domain.TaskGeoExtraction:
				var scopeErr error
				for _, loc := range payload.Locations {
					if loc.Scope != "" {
						if err := ai.ValidateEnum("scope", loc.Scope, domain.ImpactValues...); err != nil {
							scopeErr = err
							break
						}
					}
				}
				if scopeErr != nil {
					result.TaskErrors[task] = scopeErr
					continue
				}
				result.Locations = payload.Locations
				valid++
			case domain.TaskTags:
				if len(payload.Tags) == 0 {
					result.TaskErrors[task] = fmt.Errorf("missing tags key")
					continue
				}
				result.Tags = payload.Tags
				valid++
			case domain.TaskQuestionAnswer:
				if len(payload.Questions) == 0 {
					result.TaskErrors[task] = fmt.Errorf("missing questions key")
					continue
				}
				result.Questions = payload.Questions
				valid++
			case domain.TaskNewsInsights:
				if len(payload.Insights) == 0 {
					result.TaskErrors[task] = fmt.Errorf("missing insights key")
					continue
				}
				result.Insights = payload.Insights
				valid++
			}
		}
		if valid == 0 {
			return fmt.Errorf("no task key parsed")
		}
		*combined = *result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return combined, nil
}
