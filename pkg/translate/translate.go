package translate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"newsdesk-backend/pkg/ai"
)

// Translator renders text into a target language through a text model.
// Translation is best-effort: a failure returns the original text untouched
// so callers never lose content to a translation outage.
type Translator struct {
	generator ai.TextGenerator
	model     string
}

func NewTranslator(generator ai.TextGenerator, model string) *Translator {
	return &Translator{generator: generator, model: model}
}

// Translate returns text in the target language, or the input unchanged when
// the language is empty, "en", or the model call fails.
func (t *Translator) Translate(ctx context.Context, text, language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if text == "" || language == "" || language == "en" {
		return text
	}

	prompt := fmt.Sprintf(
		"Translate the following text into the language with ISO 639-1 code %q. "+
			"Reply with only the translated text, no preamble.\n\n%s",
		language, text)

	translated, err := t.generator.Generate(ctx, t.model, prompt)
	if err != nil {
		log.Printf("[Translator] Translation to %s failed, returning original: %v", language, err)
		return text
	}
	translated = strings.TrimSpace(translated)
	if translated == "" {
		return text
	}
	return translated
}
