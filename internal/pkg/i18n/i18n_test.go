package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "Please select at least one timing (AM/PM)", T(ctx, "validation.timing.required"))
	assert.Equal(t, "missing.id", T(ctx, "missing.id"))
	assert.Equal(t, `No team member matches "ann"`, T(ctx, "schedule.no_match", map[string]any{"Term": "ann"}))
}

func TestLocale(t *testing.T) {
	ctx := WithLocale(context.Background(), "fr")
	assert.Equal(t, "fr", LocaleFromContext(ctx))
	assert.Equal(t, "en", LocaleFromContext(context.Background()))

	// unknown locales fall back to the bundle default
	assert.Equal(t, "WFH Portal", T(ctx, "app.title"))
	assert.Equal(t, "en", MatchAcceptLanguage("de-DE,en;q=0.5"))
	assert.Equal(t, "en", MatchAcceptLanguage("!!"))
}
