package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRejectsEmptySecret(t *testing.T) {
	assert.Error(t, Init(""))
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	require.NoError(t, Init("test-secret"))

	tokenString, err := GenerateJWT(42, "ada@example.com")
	require.NoError(t, err)

	token, err := VerifyJWT(tokenString)
	require.NoError(t, err)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "ada@example.com", claims["email"])
	assert.NotZero(t, claims["exp"])
}

func TestVerifyJWTRejectsTamperedToken(t *testing.T) {
	require.NoError(t, Init("test-secret"))

	tokenString, err := GenerateJWT(42, "ada@example.com")
	require.NoError(t, err)

	_, err = VerifyJWT(tokenString + "x")
	assert.Error(t, err)
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	require.NoError(t, Init("test-secret"))

	tokenString, err := GenerateJWT(42, "ada@example.com")
	require.NoError(t, err)

	require.NoError(t, Init("other-secret"))

	_, err = VerifyJWT(tokenString)
	assert.Error(t, err)
}

func TestVerifyJWTRejectsUnsignedToken(t *testing.T) {
	require.NoError(t, Init("test-secret"))

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 42})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyJWT(tokenString)
	assert.Error(t, err)
}
