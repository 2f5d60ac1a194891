package diary

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateAndLookupUser(t *testing.T) {
	ctx := context.Background()
	store, cleanup := tempStore(t, "users")
	defer cleanup()

	err := store.CreateUser(ctx, "alice", "$argon2id$fake", "2024-01-01 09:00:00")
	require.NoError(t, err)

	user, err := store.LookupUser(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "$argon2id$fake", user.PasswordHash)
	require.Equal(t, "2024-01-01 09:00:00", user.CreatedAt)
	require.NotZero(t, user.ID)
}

func TestLookupMissingUserIsNotAnError(t *testing.T) {
	ctx := context.Background()
	store, cleanup := tempStore(t, "users")
	defer cleanup()

	user, err := store.LookupUser(ctx, "nobody")
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store, cleanup := tempStore(t, "users")
	defer cleanup()

	require.NoError(t, store.CreateUser(ctx, "alice", "h1", "2024-01-01 09:00:00"))
	err := store.CreateUser(ctx, "alice", "h2", "2024-01-02 09:00:00")
	var taken UsernameTaken
	require.True(t, errors.As(err, &taken), "expected UsernameTaken, got %#v", err)
	require.Equal(t, "alice", taken.Username)
}

func tempStore(t interface {
	Fatal(...interface{})
	Log(...interface{})
}, name string) (*Store, func()) {
	dir, err := ioutil.TempDir("", "selfdiary-tests")
	if err != nil {
		t.Fatal(err)
	}
	store, err := Open(context.Background(), filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	return store, func() {
		err := store.Close()
		if err != nil {
			t.Log("unable to close store", err)
		}
		err = os.RemoveAll(dir)
		if err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}
