package usecase

import (
	"fmt"
	"strings"

	"newsdesk-backend/internal/enhancement/domain"
)

// Prompt builders. Every prompt demands bare JSON so the decoder can parse
// strictly after fence stripping.

func sentimentPrompt(content string) string {
	return fmt.Sprintf(`You are a news analysis assistant. Analyze the overall sentiment of the following article.

Respond with ONLY a JSON object, no other text:
{"sentiment": "positive" | "negative" | "neutral", "confidence": 0.0-1.0}

ARTICLE:
%s`, content)
}

func summaryPrompt(content, style, language string) string {
	styleHint := "2-3 sentences capturing the key facts"
	switch style {
	case "concise":
		styleHint = "one short sentence with only the essential fact"
	case "detailed":
		styleHint = "a full paragraph covering all major points"
	}
	return fmt.Sprintf(`You are a news summarization assistant. Summarize the following article as %s, written in language code %q.

Respond with ONLY a JSON object, no other text:
{"summary": "..."}

ARTICLE:
%s`, styleHint, language, content)
}

func keyPointsPrompt(content string) string {
	return fmt.Sprintf(`Extract the 3-5 most important points from the following news article.

Respond with ONLY a JSON object, no other text:
{"key_points": ["...", "..."]}

ARTICLE:
%s`, content)
}

func complexityPrompt(content string) string {
	return fmt.Sprintf(`Rate how difficult the following news article is for a general reader.

Respond with ONLY a JSON object, no other text:
{"complexity": "easy" | "medium" | "hard", "reason": "..."}

ARTICLE:
%s`, content)
}

func geoPrompt(content string) string {
	return fmt.Sprintf(`Extract the geographic locations the following news article is about.

Respond with ONLY a JSON object, no other text:
{"locations": [{"name": "...", "country": "...", "scope": "local" | "regional" | "national" | "global"}]}

Return an empty list if no location is mentioned.

ARTICLE:
%s`, content)
}

func tagsPrompt(content string) string {
	return fmt.Sprintf(`Generate 3-6 topical tags for the following news article. Tags are short lowercase phrases.

Respond with ONLY a JSON object, no other text:
{"tags": ["...", "..."]}

ARTICLE:
%s`, content)
}

func questionsPrompt(content string) string {
	return fmt.Sprintf(`Generate 3 questions a reader might ask about the following news article, each with a short answer grounded in the article.

Respond with ONLY a JSON object, no other text:
{"questions": [{"question": "...", "answer": "..."}]}

ARTICLE:
%s`, content)
}

func insightsPrompt(content string) string {
	return fmt.Sprintf(`Provide 2-3 analytical insights about the following news article: implications, context, or what to watch next.

Respond with ONLY a JSON object, no other text:
{"insights": [{"insight": "...", "impact": "local" | "regional" | "national" | "global"}]}

ARTICLE:
%s`, content)
}

func captionPrompt(content string) string {
	return fmt.Sprintf(`Write a single engaging social media caption (max 200 characters, no hashtag spam) for the following news article.

Respond with ONLY a JSON object, no other text:
{"caption": "..."}

ARTICLE:
%s`, content)
}

// combinedPrompt builds one composite prompt covering all requested tasks so
// a multi-task request costs a single external call. The response object has
// one key per task.
func combinedPrompt(content string, tasks []domain.TaskKind) string {
	var fields []string
	for _, task := range tasks {
		switch task {
		case domain.TaskSentiment:
			fields = append(fields, `"sentiment": {"sentiment": "positive" | "negative" | "neutral", "confidence": 0.0-1.0}`)
		case domain.TaskKeyPoints:
			fields = append(fields, `"key_points": ["...", "..."]`)
		case domain.TaskComplexityMeter:
			fields = append(fields, `"complexity": "easy" | "medium" | "hard"`)
		case domain.TaskGeoExtraction:
			fields = append(fields, `"locations": [{"name": "...", "country": "...", "scope": "local" | "regional" | "national" | "global"}]`)
		case domain.TaskTags:
			fields = append(fields, `"tags": ["...", "..."]`)
		case domain.TaskQuestionAnswer:
			fields = append(fields, `"questions": [{"question": "...", "answer": "..."}]`)
		case domain.TaskNewsInsights:
			fields = append(fields, `"insights": [{"insight": "...", "impact": "local" | "regional" | "national" | "global"}]`)
		}
	}
	return fmt.Sprintf(`You are a news analysis assistant. Analyze the following article and produce every requested field.

Respond with ONLY a JSON object of this exact shape, no other text:
{
  %s
}

ARTICLE:
%s`, strings.Join(fields, ",\n  "), content)
}
