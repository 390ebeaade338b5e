package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabaseURL      string
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	GeminiAPIKey     string
	AIPrimaryModel   string
	AIFallbackModels []string
	AIModelSoftCaps  map[string]int

	QuotaDailyLimits       map[string]int
	QuotaDefaultLimit      int
	QuotaConservativeRatio float64
	QuotaWarningRatio      float64
	QuotaResetTZ           string

	StrikeCooldownStrike  int
	StrikeCooldownMinutes int
	StrikeBlockDays       int
	StrikeAutoResetHours  int
	StrikeSweepInterval   time.Duration
	StrikeSweepWindow     time.Duration

	SummaryCacheTTL     time.Duration
	SentimentCacheTTL   time.Duration
	QACacheTTL          time.Duration
	CaptionCacheTTL     time.Duration
	EnhancementCacheTTL time.Duration

	BackgroundJobDelay time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=newsdesk port=5432 sslmode=disable"),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:  getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		JWTRefreshExpiry: getDuration("JWT_REFRESH_EXPIRY", 168*time.Hour),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		AIPrimaryModel:   getEnv("AI_PRIMARY_MODEL", "gemini-2.5-pro"),
		AIFallbackModels: getList("AI_FALLBACK_MODELS", []string{"gemini-2.5-flash", "gemini-2.0-flash"}),
		AIModelSoftCaps: getIntMap("AI_MODEL_SOFT_CAPS", map[string]int{
			"gemini-2.5-pro":   100,
			"gemini-2.5-flash": 400,
			"gemini-2.0-flash": 900,
		}),

		QuotaDailyLimits:       getIntMap("QUOTA_DAILY_LIMITS", map[string]int{"gemini": 1000}),
		QuotaDefaultLimit:      getInt("QUOTA_DEFAULT_LIMIT", 1000),
		QuotaConservativeRatio: getFloat("QUOTA_CONSERVATIVE_RATIO", 0.9),
		QuotaWarningRatio:      getFloat("QUOTA_WARNING_RATIO", 0.8),
		QuotaResetTZ:           getEnv("QUOTA_RESET_TZ", "America/Los_Angeles"),

		StrikeCooldownStrike:  getInt("STRIKE_COOLDOWN_STRIKE", 3),
		StrikeCooldownMinutes: getInt("STRIKE_COOLDOWN_MINUTES", 30),
		StrikeBlockDays:       getInt("STRIKE_BLOCK_DAYS", 7),
		StrikeAutoResetHours:  getInt("STRIKE_AUTO_RESET_HOURS", 48),
		StrikeSweepInterval:   getDuration("STRIKE_SWEEP_INTERVAL", 10*time.Minute),
		StrikeSweepWindow:     getDuration("STRIKE_SWEEP_WINDOW", time.Hour),

		SummaryCacheTTL:     getDuration("SUMMARY_CACHE_TTL", 7*24*time.Hour),
		SentimentCacheTTL:   getDuration("SENTIMENT_CACHE_TTL", 30*24*time.Hour),
		QACacheTTL:          getDuration("QA_CACHE_TTL", 7*24*time.Hour),
		CaptionCacheTTL:     getDuration("CAPTION_CACHE_TTL", 7*24*time.Hour),
		EnhancementCacheTTL: getDuration("ENHANCEMENT_CACHE_TTL", 30*24*time.Hour),

		BackgroundJobDelay: getDuration("BACKGROUND_JOB_DELAY", 2*time.Second),
	}
}

// DailyLimit returns the provider-documented daily request limit for a quota service.
func (c *Config) DailyLimit(service string) int {
	if limit, ok := c.QuotaDailyLimits[service]; ok {
		return limit
	}
	return c.QuotaDefaultLimit
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getList parses a comma-separated value, e.g. "gemini-2.5-flash,gemini-2.0-flash".
func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

// getIntMap parses "name=value" pairs, e.g. "gemini-2.5-pro=100,gemini-2.5-flash=400".
func getIntMap(key string, defaultValue map[string]int) map[string]int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result := make(map[string]int)
	for _, pair := range strings.Split(value, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			result[strings.TrimSpace(parts[0])] = n
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
