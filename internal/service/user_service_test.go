package service

import (
	"context"
	"testing"

	"story-relay/internal/messaging"
	"story-relay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success normalizes email", func(t *testing.T) {
		env := newTestEnv(t, messaging.NoopPublisher{})
		user, err := env.users.Register(ctx, models.UserInput{Username: "  alice ", Email: " Alice@Example.COM "})
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		env := newTestEnv(t, messaging.NoopPublisher{})
		_, err := env.users.Register(ctx, models.UserInput{Username: "alice", Email: "alice@example.com"})
		require.NoError(t, err)

		_, err = env.users.Register(ctx, models.UserInput{Username: "alice2", Email: "ALICE@example.com"})
		assert.ErrorIs(t, err, models.ErrEmailAlreadyExists)
		assert.Len(t, env.users.List(ctx), 1)
	})

	t.Run("Validation", func(t *testing.T) {
		env := newTestEnv(t, messaging.NoopPublisher{})
		cases := []models.UserInput{
			{Username: "", Email: "a@b.co"},
			{Username: "bob", Email: "   "},
			{Username: "bob", Email: "not-an-email"},
		}
		for _, input := range cases {
			_, err := env.users.Register(ctx, input)
			assert.ErrorIs(t, err, models.ErrInvalidInput, "input %+v", input)
		}
		assert.Empty(t, env.users.List(ctx))
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, messaging.NoopPublisher{})

	user, created, err := env.users.Login(ctx, models.UserInput{Username: "carol", Email: "carol@example.com"})
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := env.users.Login(ctx, models.UserInput{Email: "CAROL@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)

	_, _, err = env.users.Login(ctx, models.UserInput{Username: "x"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUserService_Lookup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, messaging.NoopPublisher{})

	user, err := env.users.Register(ctx, models.UserInput{Username: "dave", Email: "dave@example.com"})
	require.NoError(t, err)

	got, err := env.users.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "dave", got.Username)

	got, err = env.users.GetByEmail(ctx, "Dave@Example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = env.users.Get(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	_, err = env.users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}
