package repository

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"newsdesk-backend/internal/enhancement/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.ArticleEnhancement{},
		&domain.SummaryCache{},
		&domain.SentimentCache{},
		&domain.QACache{},
		&domain.CaptionCache{},
		&domain.EnhancementCache{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestSummaryCacheRoundTrip(t *testing.T) {
	cache := NewArtifactCacheRepository(newTestDB(t))
	hash := domain.ContentHash("some article text", "concise", "en")

	if cached, err := cache.GetSummary(hash); err != nil || cached != nil {
		t.Fatalf("fresh get = (%v, %v), want miss", cached, err)
	}

	if err := cache.SaveSummary(hash, "A summary.", "concise", "en", time.Hour); err != nil {
		t.Fatal(err)
	}
	cached, err := cache.GetSummary(hash)
	if err != nil {
		t.Fatal(err)
	}
	if cached == nil || cached.Summary != "A summary." || cached.Style != "concise" {
		t.Fatalf("cached = %+v", cached)
	}

	// Rewriting the same hash overwrites rather than duplicates.
	if err := cache.SaveSummary(hash, "A fresher summary.", "concise", "en", time.Hour); err != nil {
		t.Fatal(err)
	}
	cached, err = cache.GetSummary(hash)
	if err != nil {
		t.Fatal(err)
	}
	if cached.Summary != "A fresher summary." {
		t.Errorf("summary = %q after rewrite", cached.Summary)
	}
}

func TestExpiredEntryReadsAsMiss(t *testing.T) {
	cache := NewArtifactCacheRepository(newTestDB(t))
	hash := domain.ContentHash("stale text", "sentiment")

	if err := cache.SaveSentiment(hash, "positive", 0.9, -time.Minute); err != nil {
		t.Fatal(err)
	}
	cached, err := cache.GetSentiment(hash)
	if err != nil {
		t.Fatal(err)
	}
	if cached != nil {
		t.Errorf("expired entry returned: %+v", cached)
	}
	// The lazy delete frees the hash for a fresh write.
	if err := cache.SaveSentiment(hash, "negative", 0.6, time.Hour); err != nil {
		t.Fatal(err)
	}
	cached, err = cache.GetSentiment(hash)
	if err != nil || cached == nil || cached.Sentiment != "negative" {
		t.Fatalf("refreshed entry = (%+v, %v)", cached, err)
	}
}

func TestQACacheSerializesQuestions(t *testing.T) {
	cache := NewArtifactCacheRepository(newTestDB(t))
	hash := domain.ContentHash("qa text", "questions")
	questions := []domain.QuestionAnswer{
		{Question: "What happened?", Answer: "Earnings rose."},
		{Question: "Why?", Answer: "iPhone sales."},
	}

	if err := cache.SaveQA(hash, questions, time.Hour); err != nil {
		t.Fatal(err)
	}
	cached, err := cache.GetQA(hash)
	if err != nil {
		t.Fatal(err)
	}
	if cached == nil || len(cached.Questions) != 2 || cached.Questions[1].Answer != "iPhone sales." {
		t.Fatalf("cached = %+v", cached)
	}
}

func TestEnhancementStateMachine(t *testing.T) {
	repo := NewEnhancementRepository(newTestDB(t))
	id := domain.ArticleID("https://news.example.com/story")

	if record, err := repo.GetByID(id); err != nil || record != nil {
		t.Fatalf("fresh get = (%v, %v), want absent", record, err)
	}

	if err := repo.UpsertPending(&domain.ArticleEnhancement{ID: id, URL: "https://news.example.com/story", Title: "Story"}); err != nil {
		t.Fatal(err)
	}
	record, err := repo.GetByID(id)
	if err != nil {
		t.Fatal(err)
	}
	if record.ProcessingStatus != domain.StatusPending {
		t.Fatalf("status = %q, want pending", record.ProcessingStatus)
	}

	sentiment := "positive"
	score := 0.8
	record.Sentiment = &sentiment
	record.SentimentScore = &score
	record.KeyPoints = []string{"first", "second"}
	if err := repo.Complete(record); err != nil {
		t.Fatal(err)
	}

	record, err = repo.GetByID(id)
	if err != nil {
		t.Fatal(err)
	}
	if record.ProcessingStatus != domain.StatusCompleted {
		t.Fatalf("status = %q, want completed", record.ProcessingStatus)
	}
	if record.Sentiment == nil || *record.Sentiment != "positive" {
		t.Errorf("sentiment = %v", record.Sentiment)
	}
	if len(record.KeyPoints) != 2 || record.KeyPoints[0] != "first" {
		t.Errorf("key points = %v, serializer should round-trip the slice", record.KeyPoints)
	}

	// A resolved record never moves backward.
	if err := repo.Fail(id); err != nil {
		t.Fatal(err)
	}
	record, _ = repo.GetByID(id)
	if record.ProcessingStatus != domain.StatusCompleted {
		t.Errorf("status = %q, completed must not regress to failed", record.ProcessingStatus)
	}
}

func TestUpsertPendingReopensFailedRecord(t *testing.T) {
	repo := NewEnhancementRepository(newTestDB(t))
	id := domain.ArticleID("https://news.example.com/retry")

	if err := repo.UpsertPending(&domain.ArticleEnhancement{ID: id, URL: "https://news.example.com/retry"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Fail(id); err != nil {
		t.Fatal(err)
	}

	if err := repo.UpsertPending(&domain.ArticleEnhancement{ID: id, URL: "https://news.example.com/retry", Title: "Retry"}); err != nil {
		t.Fatal(err)
	}
	record, err := repo.GetByID(id)
	if err != nil {
		t.Fatal(err)
	}
	if record.ProcessingStatus != domain.StatusPending {
		t.Errorf("status = %q, a re-run should reopen a failed record", record.ProcessingStatus)
	}
	if record.Title != "Retry" {
		t.Errorf("title = %q, upsert should refresh metadata", record.Title)
	}
}

func TestGetByIDsReturnsOnlyExisting(t *testing.T) {
	repo := NewEnhancementRepository(newTestDB(t))
	a := domain.ArticleID("https://news.example.com/a")
	b := domain.ArticleID("https://news.example.com/b")

	if err := repo.UpsertPending(&domain.ArticleEnhancement{ID: a, URL: "https://news.example.com/a"}); err != nil {
		t.Fatal(err)
	}

	records, err := repo.GetByIDs([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != a {
		t.Errorf("records = %+v, want only the existing one", records)
	}
	if records, _ := repo.GetByIDs(nil); records != nil {
		t.Errorf("empty id list should return nil, got %+v", records)
	}
}
