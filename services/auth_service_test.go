package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackgraver/simple-track/utils"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newTestDB(t), []byte("secret"))

	user, err := svc.Register(ctx, " Ana@Example.com ", "longenough", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEqual(t, "longenough", user.Password)

	_, err = svc.Register(ctx, "ana@example.com", "longenough", "Again")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Register(ctx, "bob@example.com", "short", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	token, err := svc.Login(ctx, "ANA@example.com", "longenough")
	require.NoError(t, err)

	id, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	_, err = svc.Login(ctx, "ana@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Login(ctx, "nobody@example.com", "longenough")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc := NewAuthService(newTestDB(t), []byte("secret"))

	token, err := utils.GenerateJWT([]byte("secret"), 99, "ghost@example.com")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)

	_, err = svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}
