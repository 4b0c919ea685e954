package tokens

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateUserJWT(t *testing.T) {
	key := []byte("secret")
	userID := uuid.New()

	token, err := GenerateUserJWT(userID, "ann@example.com", time.Hour, key)
	require.NoError(t, err)

	claims, err := ValidateUserJWT(token, key)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", claims.Email)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, id)
}

func TestValidateUserJWT_Errors(t *testing.T) {
	key := []byte("secret")

	expired, err := GenerateUserJWT(uuid.New(), "", -time.Minute, key)
	require.NoError(t, err)
	_, err = ValidateUserJWT(expired, key)
	require.ErrorIs(t, err, ErrTokenExpired)

	valid, err := GenerateUserJWT(uuid.New(), "", time.Minute, key)
	require.NoError(t, err)
	_, err = ValidateUserJWT(valid, []byte("other"))
	require.Error(t, err)
}
