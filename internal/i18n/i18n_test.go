package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT_LookupAndPlaceholders(t *testing.T) {
	assert.Equal(t, "My Dialogs", T(LangEN, "myDialogs"))
	assert.Equal(t, "Мои диалоги", T(LangRU, "myDialogs"))
	assert.Equal(t, "Max 100.0 MB per file", T(LangEN, "maxSize", map[string]string{"size": "100.0 MB"}))
}

func TestT_FallsBackToKey(t *testing.T) {
	assert.Equal(t, "noSuchKey", T(LangEN, "noSuchKey"))
	assert.Equal(t, "noSuchKey", T(LangRU, "noSuchKey"))
}

func TestParse(t *testing.T) {
	assert.Equal(t, LangRU, Parse("ru"))
	assert.Equal(t, LangRU, Parse(" RU "))
	assert.Equal(t, LangEN, Parse("en"))
	assert.Equal(t, LangEN, Parse("de"))
	assert.Equal(t, LangEN, Parse(""))
}

func TestDetect_UsesEnv(t *testing.T) {
	t.Setenv("LC_ALL", "ru_RU.UTF-8")
	assert.Equal(t, LangRU, Detect())

	t.Setenv("LC_ALL", "en_US.UTF-8")
	assert.Equal(t, LangEN, Detect())
}
