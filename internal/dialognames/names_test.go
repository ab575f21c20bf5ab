package dialognames

import (
	"testing"

	"github.com/allbox-app/allbox/internal/i18n"
	"github.com/stretchr/testify/assert"
)

func TestRandom_DrawsFromLanguagePool(t *testing.T) {
	en := map[string]struct{}{}
	for _, n := range names[i18n.LangEN] {
		en[n] = struct{}{}
	}

	for i := 0; i < 100; i++ {
		_, ok := en[Random(i18n.LangEN)]
		assert.True(t, ok)
	}
}

func TestRandom_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	en := map[string]struct{}{}
	for _, n := range names[i18n.LangEN] {
		en[n] = struct{}{}
	}
	_, ok := en[Random(i18n.Language("de"))]
	assert.True(t, ok)
}
