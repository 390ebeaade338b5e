package dto

import "newsdesk-backend/internal/enhancement/usecase"

// EnhanceRequest asks for a set of tasks over raw content or a URL to scrape.
// Exactly one of Content and URL must be set.
type EnhanceRequest struct {
	Content string   `json:"content"`
	URL     string   `json:"url"`
	Tasks   []string `json:"tasks" binding:"required,min=1"`
}

// SummarizeRequest asks for a style/language summary variant. TranslateTo
// optionally post-translates the summary into another language.
type SummarizeRequest struct {
	Content     string `json:"content"`
	URL         string `json:"url"`
	Style       string `json:"style"`
	Language    string `json:"language"`
	TranslateTo string `json:"translate_to"`
}

// BackgroundRequest submits a batch of articles for asynchronous enhancement.
type BackgroundRequest struct {
	Articles []usecase.ArticleInput `json:"articles" binding:"required,min=1"`
}

// BackgroundResponse returns the ids to poll status with.
type BackgroundResponse struct {
	ArticleIDs []string `json:"article_ids"`
	Accepted   bool     `json:"accepted"`
}
