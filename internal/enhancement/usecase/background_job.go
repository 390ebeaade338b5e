package usecase

import (
	"context"
	"log"
	"time"

	authdomain "newsdesk-backend/internal/auth/domain"
	"newsdesk-backend/internal/enhancement/domain"
	"newsdesk-backend/internal/enhancement/repository"
	"newsdesk-backend/internal/metrics"
)

// ArticleInput is one article submitted for background enhancement.
type ArticleInput struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// JobStatus is the polling view of a batch.
type JobStatus struct {
	Status   string `json:"status"` // processing | complete
	Progress int    `json:"progress"`
}

// combinedEnhancer is the slice of the orchestrator the background job uses.
type combinedEnhancer interface {
	EnhanceCombined(ctx context.Context, content string, tasks []domain.TaskKind) (*CombinedResult, error)
}

// blockChecker gates job entry on the caller's strike state.
type blockChecker interface {
	IsBlocked(user *authdomain.User) (bool, error)
}

// backgroundTasks is the fixed enhancement set a batch run computes per article.
var backgroundTasks = []domain.TaskKind{
	domain.TaskSentiment,
	domain.TaskKeyPoints,
	domain.TaskComplexityMeter,
	domain.TaskGeoExtraction,
}

// BackgroundEnhancer runs fire-and-forget enhancement batches decoupled from
// the triggering request. No cancellation: once started, a batch runs to
// completion or per-item failure.
type BackgroundEnhancer struct {
	records  repository.EnhancementRepository
	enhancer combinedEnhancer
	tracker  *JobTracker
	blocks   blockChecker
	delay    time.Duration
}

func NewBackgroundEnhancer(records repository.EnhancementRepository, enhancer combinedEnhancer, tracker *JobTracker, blocks blockChecker, delay time.Duration) *BackgroundEnhancer {
	return &BackgroundEnhancer{
		records:  records,
		enhancer: enhancer,
		tracker:  tracker,
		blocks:   blocks,
		delay:    delay,
	}
}

// Start schedules a batch. A blocked or missing caller declines silently: no
// record is created and no error surfaces, since this is background work the
// client never waits on. Returns the batch's article ids.
func (b *BackgroundEnhancer) Start(user *authdomain.User, articles []ArticleInput) []string {
	if user == nil || len(articles) == 0 {
		return nil
	}
	if blocked, err := b.blocks.IsBlocked(user); err != nil || blocked {
		if blocked {
			log.Printf("[EnhanceJob] Declining batch for blocked user %s", user.ID)
		}
		return nil
	}

	ids := make([]string, len(articles))
	for i, article := range articles {
		ids[i] = domain.ArticleID(article.URL)
	}
	b.tracker.Add(ids)

	go b.run(articles, ids)
	return ids
}

func (b *BackgroundEnhancer) run(articles []ArticleInput, ids []string) {
	// Short debounce so the triggering request finishes first.
	time.Sleep(b.delay)

	ctx := context.Background()
	for i, article := range articles {
		b.processArticle(ctx, ids[i], article)
		b.tracker.Remove(ids[i])
	}
	log.Printf("[EnhanceJob] Batch of %d articles finished", len(articles))
}

// processArticle enhances one article. Any failure marks this record failed
// and returns; one article's failure never aborts the rest of the batch.
func (b *BackgroundEnhancer) processArticle(ctx context.Context, id string, article ArticleInput) {
	existing, err := b.records.GetByID(id)
	if err != nil {
		log.Printf("[EnhanceJob] Failed to read record %s: %v", id[:12], err)
		return
	}
	if existing != nil && existing.ProcessingStatus == domain.StatusCompleted {
		metrics.EnhancementJobsTotal.WithLabelValues("skipped").Inc()
		return
	}

	record := &domain.ArticleEnhancement{
		ID:    id,
		URL:   article.URL,
		Title: article.Title,
	}
	if err := b.records.UpsertPending(record); err != nil {
		log.Printf("[EnhanceJob] Failed to mark %s pending: %v", id[:12], err)
		return
	}

	minutes, level := ReadingMetrics(article.Content)
	record.ReadingMinutes = &minutes
	record.Complexity = &level

	combined, err := b.enhancer.EnhanceCombined(ctx, article.Content, backgroundTasks)
	if err != nil {
		log.Printf("[EnhanceJob] Enhancement failed for %s: %v", id[:12], err)
		if ferr := b.records.Fail(id); ferr != nil {
			log.Printf("[EnhanceJob] Failed to mark %s failed: %v", id[:12], ferr)
		}
		metrics.EnhancementJobsTotal.WithLabelValues("failed").Inc()
		return
	}

	// Persist whichever fields resolved; partial results are valid.
	if combined.Sentiment != nil {
		record.Sentiment = &combined.Sentiment.Sentiment
		record.SentimentScore = &combined.Sentiment.Confidence
	}
	record.KeyPoints = combined.KeyPoints
	record.ComplexityMeter = combined.ComplexityMeter
	record.Locations = combined.Locations

	if err := b.records.Complete(record); err != nil {
		log.Printf("[EnhanceJob] Failed to complete %s: %v", id[:12], err)
		return
	}
	metrics.EnhancementJobsTotal.WithLabelValues("completed").Inc()
}

// GetStatus reports batch progress as resolved/total. While any id is still
// in the tracker the status stays processing even if every record reads as
// resolved, covering the window where database writes lag tracker removal.
func (b *BackgroundEnhancer) GetStatus(articleIDs []string) (JobStatus, error) {
	if len(articleIDs) == 0 {
		return JobStatus{Status: "complete", Progress: 100}, nil
	}

	records, err := b.records.GetByIDs(articleIDs)
	if err != nil {
		return JobStatus{}, err
	}

	resolved := 0
	for _, record := range records {
		if record.ProcessingStatus == domain.StatusCompleted || record.ProcessingStatus == domain.StatusFailed {
			resolved++
		}
	}

	status := JobStatus{Progress: resolved * 100 / len(articleIDs)}
	if resolved == len(articleIDs) && !b.tracker.AnyActive(articleIDs) {
		status.Status = "complete"
	} else {
		status.Status = "processing"
	}
	return status, nil
}
