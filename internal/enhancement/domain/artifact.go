package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Cached AI artifacts, one table per kind. Kinds stay in separate keyspaces
// because their TTLs and value shapes differ even when derived from the same
// content. At most one live record per content hash; writes are idempotent
// upserts. Expiry is checked on read; the infrastructure sweep handles bulk
// cleanup.

type SummaryCache struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ContentHash string    `json:"content_hash" gorm:"uniqueIndex;not null"`
	Summary     string    `json:"summary" gorm:"type:text;not null"`
	Style       string    `json:"style"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"index"`
}

func (SummaryCache) TableName() string { return "summary_caches" }

func (c *SummaryCache) IsExpired() bool { return time.Now().After(c.ExpiresAt) }

type SentimentCache struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ContentHash string    `json:"content_hash" gorm:"uniqueIndex;not null"`
	Sentiment   string    `json:"sentiment" gorm:"not null"`
	Confidence  float64   `json:"confidence"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"index"`
}

func (SentimentCache) TableName() string { return "sentiment_caches" }

func (c *SentimentCache) IsExpired() bool { return time.Now().After(c.ExpiresAt) }

type QACache struct {
	ID          string           `json:"id" gorm:"primaryKey"`
	ContentHash string           `json:"content_hash" gorm:"uniqueIndex;not null"`
	Questions   []QuestionAnswer `json:"questions" gorm:"type:json;serializer:json"`
	CreatedAt   time.Time        `json:"created_at"`
	ExpiresAt   time.Time        `json:"expires_at" gorm:"index"`
}

func (QACache) TableName() string { return "qa_caches" }

func (c *QACache) IsExpired() bool { return time.Now().After(c.ExpiresAt) }

type CaptionCache struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ContentHash string    `json:"content_hash" gorm:"uniqueIndex;not null"`
	Caption     string    `json:"caption" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"index"`
}

func (CaptionCache) TableName() string { return "caption_caches" }

func (c *CaptionCache) IsExpired() bool { return time.Now().After(c.ExpiresAt) }

// EnhancementCache holds any other enhancement artifact keyed by content
// hash, with the payload stored as raw JSON and discriminated by Kind.
type EnhancementCache struct {
	ID          string         `json:"id" gorm:"primaryKey"`
	ContentHash string         `json:"content_hash" gorm:"uniqueIndex;not null"`
	Kind        string         `json:"kind" gorm:"index;not null"`
	Payload     datatypes.JSON `json:"payload" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	ExpiresAt   time.Time      `json:"expires_at" gorm:"index"`
}

func (EnhancementCache) TableName() string { return "enhancement_caches" }

func (c *EnhancementCache) IsExpired() bool { return time.Now().After(c.ExpiresAt) }
