package ai

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON object",
			input:    `{"sentiment":"positive"}`,
			expected: `{"sentiment":"positive"}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"sentiment\":\"positive\"}\n```",
			expected: `{"sentiment":"positive"}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"sentiment\":\"neutral\"}\n```",
			expected: `{"sentiment":"neutral"}`,
		},
		{
			name:     "prose before and after object",
			input:    "Here is the analysis:\n{\"tags\":[\"tech\"]}\nHope that helps!",
			expected: `{"tags":["tech"]}`,
		},
		{
			name:     "array response",
			input:    "```json\n[\"a\",\"b\"]\n```",
			expected: `["a","b"]`,
		},
		{
			name:     "array preferred when it opens first",
			input:    `[{"question":"q","answer":"a"}]`,
			expected: `[{"question":"q","answer":"a"}]`,
		},
		{
			name:     "surrounding whitespace",
			input:    "   \n{\"x\":1}\n\n",
			expected: `{"x":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripFences(tt.input)
			if got != tt.expected {
				t.Errorf("StripFences(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Sentiment  string  `json:"sentiment"`
		Confidence float64 `json:"confidence"`
	}
	raw := "```json\n{\"sentiment\":\"positive\",\"confidence\":0.9}\n```"
	if err := DecodeJSON(raw, &out); err != nil {
		t.Fatalf("DecodeJSON returned error: %v", err)
	}
	if out.Sentiment != "positive" || out.Confidence != 0.9 {
		t.Errorf("unexpected decode result: %+v", out)
	}

	if err := DecodeJSON("not json at all", &out); err == nil {
		t.Error("expected error for non-JSON input")
	}
}

func TestValidateEnum(t *testing.T) {
	if err := ValidateEnum("sentiment", "positive", "positive", "negative", "neutral"); err != nil {
		t.Errorf("valid enum value rejected: %v", err)
	}
	if err := ValidateEnum("sentiment", "ecstatic", "positive", "negative", "neutral"); err == nil {
		t.Error("out-of-enum value accepted")
	}
}
