package passcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LengthAndCharset(t *testing.T) {
	for digits := MinDigits; digits <= MaxDigits; digits++ {
		for i := 0; i < 50; i++ {
			p, err := Generate(digits)
			require.NoError(t, err)
			require.Len(t, p, digits)
			assert.NotEqual(t, byte('0'), p[0])
			for _, c := range p {
				assert.True(t, c >= '0' && c <= '9')
			}
		}
	}
}

func TestGenerate_RejectsOutOfRangeLength(t *testing.T) {
	_, err := Generate(3)
	require.Error(t, err)

	_, err = Generate(7)
	require.Error(t, err)
}

func TestHash_DeterministicAndSalted(t *testing.T) {
	h1 := Hash("1234")
	h2 := Hash("1234")
	require.Equal(t, h1, h2)
	require.Len(t, h1, 64)

	// plain sha256("1234") must not match, the salt has to participate
	assert.NotEqual(t, "03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4", h1)
	assert.NotEqual(t, h1, Hash("1235"))
}
