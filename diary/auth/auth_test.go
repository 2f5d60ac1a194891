package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selfdiary/selfdiary/diary"
	"github.com/selfdiary/selfdiary/diary/auth"
	"github.com/selfdiary/selfdiary/internal/testutil"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquireStore(ctx, t, "auth")
	defer cleanup()

	require.NoError(t, auth.Register(ctx, store, "alice", "sup3r-Secret"))

	userID, username, err := auth.Login(ctx, store, "alice", "sup3r-Secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
	assert.NotZero(t, userID)
}

func TestRegisterValidatesBeforeHashing(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquireStore(ctx, t, "auth")
	defer cleanup()

	// both username and password are bad; the username message wins
	// because validation runs first
	err := auth.Register(ctx, store, "_bad", "weak")
	var invalid auth.ValidationError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "Invalid username format.", invalid.Message)

	err = auth.Register(ctx, store, "goodname", "weak")
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, invalid.Message, "at least 8 characters")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquireStore(ctx, t, "auth")
	defer cleanup()

	require.NoError(t, auth.Register(ctx, store, "alice", "sup3r-Secret"))
	err := auth.Register(ctx, store, "alice", "other-Secret1")
	var taken diary.UsernameTaken
	require.True(t, errors.As(err, &taken), "expected UsernameTaken, got %#v", err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquireStore(ctx, t, "auth")
	defer cleanup()

	require.NoError(t, auth.Register(ctx, store, "alice", "sup3r-Secret"))

	_, _, wrongPassword := auth.Login(ctx, store, "alice", "not-the-Secret1")
	_, _, missingUser := auth.Login(ctx, store, "nobody", "sup3r-Secret")

	require.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)
	require.ErrorIs(t, missingUser, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, missingUser, "the two failures must be the same value")
}
