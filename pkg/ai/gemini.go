package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"newsdesk-backend/internal/metrics"
)

const (
	geminiAPIURL  = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	geminiTimeout = 60 * time.Second
)

// GeminiClient implements TextGenerator against the Gemini REST API.
type GeminiClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: geminiTimeout},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate sends a prompt to the given Gemini model and returns the raw
// completion text.
func (g *GeminiClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf(geminiAPIURL, model) + "?key=" + g.apiKey
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	metrics.AIRequestsTotal.WithLabelValues(model).Inc()

	resp, err := g.httpClient.Do(req)
	if err != nil {
		metrics.AIErrorsTotal.WithLabelValues("network").Inc()
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.AILatency.Observe(time.Since(start).Seconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.AIErrorsTotal.WithLabelValues("read").Inc()
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.AIErrorsTotal.WithLabelValues("api").Inc()
		return "", fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		metrics.AIErrorsTotal.WithLabelValues("parse").Inc()
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Error != nil {
		metrics.AIErrorsTotal.WithLabelValues("api").Inc()
		return "", fmt.Errorf("gemini API error %d: %s", result.Error.Code, result.Error.Message)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		metrics.AIErrorsTotal.WithLabelValues("empty").Inc()
		return "", fmt.Errorf("no completion returned")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
