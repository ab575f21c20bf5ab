package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/allbox-app/allbox/internal/common"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("dlg-1", "dev-1", secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	dialogID, deviceID, err := ParseToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "dlg-1", dialogID)
	require.Equal(t, "dev-1", deviceID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("dlg-1", "dev-1", []byte("one"), time.Minute)
	require.NoError(t, err)

	_, _, err = ParseToken(token, []byte("another"))
	require.True(t, errors.Is(err, common.ErrInvalidToken))
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken("dlg-1", "dev-1", secret, -time.Minute)
	require.NoError(t, err)

	_, _, err = ParseToken(token, secret)
	require.True(t, errors.Is(err, common.ErrTokenExpired))
}

func TestParseToken_Garbage(t *testing.T) {
	_, _, err := ParseToken("not-a-token", []byte("secret"))
	require.True(t, errors.Is(err, common.ErrInvalidToken))
}
