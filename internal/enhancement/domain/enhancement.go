package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// TaskKind identifies one AI enhancement task.
type TaskKind string

const (
	TaskSummary         TaskKind = "summary"
	TaskSentiment       TaskKind = "sentiment"
	TaskKeyPoints       TaskKind = "key_points"
	TaskComplexityMeter TaskKind = "complexity_meter"
	TaskGeoExtraction   TaskKind = "geo_extraction"
	TaskTags            TaskKind = "tags"
	TaskQuestionAnswer  TaskKind = "question_answer"
	TaskNewsInsights    TaskKind = "news_insights"
	TaskSocialCaption   TaskKind = "social_caption"
)

// ValidTaskKind reports whether kind names a known task.
func ValidTaskKind(kind TaskKind) bool {
	switch kind {
	case TaskSummary, TaskSentiment, TaskKeyPoints, TaskComplexityMeter,
		TaskGeoExtraction, TaskTags, TaskQuestionAnswer, TaskNewsInsights,
		TaskSocialCaption:
		return true
	}
	return false
}

// Processing status of a background-enhanced article. Transitions run
// pending→completed or pending→failed, never backward.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Closed enumerations validated against AI output.
var (
	SentimentValues  = []string{"positive", "negative", "neutral"}
	ComplexityValues = []string{"easy", "medium", "hard"}
	ImpactValues     = []string{"local", "regional", "national", "global"}
)

// SentimentResult is the outcome of sentiment analysis.
type SentimentResult struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// Location is one place extracted from article text.
type Location struct {
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Scope   string `json:"scope,omitempty"` // local, regional, national, global
}

// QuestionAnswer is one reader question with its answer.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// NewsInsight is one AI-derived observation about an article.
type NewsInsight struct {
	Insight string `json:"insight"`
	Impact  string `json:"impact"` // local, regional, national, global
}

// ArticleEnhancement is the persisted per-article enhancement record, keyed
// by the hash of the canonical article URL. Fields are optional; each fills
// in as its enhancement type resolves.
type ArticleEnhancement struct {
	ID               string           `json:"id" gorm:"primaryKey"` // hash of the canonical URL
	URL              string           `json:"url" gorm:"type:text"`
	Title            string           `json:"title" gorm:"type:text"`
	ProcessingStatus string           `json:"processing_status" gorm:"index;not null;default:'pending'"`
	Tags             []string         `json:"tags,omitempty" gorm:"type:json;serializer:json"`
	Sentiment        *string          `json:"sentiment,omitempty"`
	SentimentScore   *float64         `json:"sentiment_score,omitempty"`
	KeyPoints        []string         `json:"key_points,omitempty" gorm:"type:json;serializer:json"`
	ComplexityMeter  *string          `json:"complexity_meter,omitempty"`
	Locations        []Location       `json:"locations,omitempty" gorm:"type:json;serializer:json"`
	Questions        []QuestionAnswer `json:"questions,omitempty" gorm:"type:json;serializer:json"`
	NewsInsights     []NewsInsight    `json:"news_insights,omitempty" gorm:"type:json;serializer:json"`
	ReadingMinutes   *int             `json:"reading_minutes,omitempty"`
	Complexity       *string          `json:"complexity,omitempty"` // local reading-level metric
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (ArticleEnhancement) TableName() string {
	return "article_enhancements"
}

// ArticleID derives the enhancement key from the canonical article URL.
func ArticleID(url string) string {
	canonical := strings.TrimRight(strings.TrimSpace(url), "/")
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// ContentHash builds the cache key for an artifact: a digest of the content
// plus every variant parameter that changes the output, so identical text
// with a different style or language never collides.
func ContentHash(content string, variantParams ...string) string {
	h := sha256.New()
	h.Write([]byte(content))
	for _, p := range variantParams {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
