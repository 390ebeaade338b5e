package usecase

import "strings"

const wordsPerMinute = 200

// ReadingMetrics computes the local (non-AI) reading-time estimate and a
// coarse reading-level from sentence length. Cheap enough to run inline
// before any model call.
func ReadingMetrics(content string) (minutes int, complexity string) {
	words := strings.Fields(content)
	minutes = (len(words) + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	sentences := 0
	for _, r := range content {
		if r == '.' || r == '!' || r == '?' {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	avgSentenceLen := float64(len(words)) / float64(sentences)
	switch {
	case avgSentenceLen < 14:
		complexity = "easy"
	case avgSentenceLen < 22:
		complexity = "medium"
	default:
		complexity = "hard"
	}
	return minutes, complexity
}
