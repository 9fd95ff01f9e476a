package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestVerifyAcceptsLocalToken(t *testing.T) {
	raw, err := MintLocalIDToken(testSecret, "42", "jane@example.com", time.Hour)
	require.NoError(t, err)

	v := New("", testSecret)
	ident, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "42", ident.UID)
	assert.Equal(t, "jane@example.com", ident.Email)
	assert.Equal(t, "local", ident.Provider)
}

func TestVerifyRejectsExpiredLocalToken(t *testing.T) {
	raw, err := MintLocalIDToken(testSecret, "42", "jane@example.com", -time.Minute)
	require.NoError(t, err)

	v := New("", testSecret)
	_, err = v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := MintLocalIDToken("other-secret", "42", "jane@example.com", time.Hour)
	require.NoError(t, err)

	v := New("", testSecret)
	_, err = v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignIssuer(t *testing.T) {
	// Correctly signed but not minted by our login route.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":   "someone-else",
		"sub":   "42",
		"email": "jane@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	raw, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	v := New("", testSecret)
	_, err = v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":   LocalIssuer,
		"email": "jane@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	raw, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	v := New("", testSecret)
	_, err = v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbageToken(t *testing.T) {
	v := New("", testSecret)
	_, err := v.Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
