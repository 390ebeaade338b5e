package ai

import "context"

// TextGenerator is the external text-completion capability. Implementations
// may fail per call; callers handle fallback across models.
type TextGenerator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}
