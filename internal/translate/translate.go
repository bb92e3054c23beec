// Package translate provides the text-in/text-out translation capability
// consumed by the extractor. Backends are interchangeable; the pipeline only
// depends on the Translator interface.
package translate

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Translator converts text into the configured target language.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Resilient wraps a Translator with the pipeline's degrade rule: a failed
// translation falls back to the untranslated input and is logged, never
// propagated. A run must not abort because the translation service is down.
type Resilient struct {
	Inner Translator
}

func (r Resilient) Translate(ctx context.Context, text string) (string, error) {
	if r.Inner == nil {
		return text, nil
	}
	out, err := r.Inner.Translate(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("translation failed; keeping original text")
		return text, nil
	}
	return out, nil
}
