// Package session binds authenticated identities to opaque cookie tokens
// and authorizes entry requests against the bound identity. State lives in
// process memory only; a restart logs everyone out.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
)

type (
	// Identity is what a session holds once authenticated. Both fields
	// are always set together; a record missing either is treated as
	// anonymous, never as a partial identity.
	Identity struct {
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
	}

	// Registry maps tokens to identities. Expiry is delegated to the
	// cache's eviction window.
	Registry struct {
		cache *bigcache.BigCache
	}

	// BindError reports a failure writing session state.
	BindError struct {
		cause error
	}
)

// ErrUnauthorized is returned when a request's claimed resource owner does
// not match the session identity, or when there is no session at all.
var ErrUnauthorized = errors.New("unauthorized access")

func (b BindError) Error() string {
	return fmt.Sprintf("unable to write session state, cause %v", b.cause)
}

func (b BindError) Unwrap() error { return b.cause }

// NewRegistry creates a registry whose sessions expire after ttl.
func NewRegistry(ttl time.Duration) (*Registry, error) {
	cache, err := bigcache.NewBigCache(bigcache.DefaultConfig(ttl))
	if err != nil {
		return nil, fmt.Errorf("unable to create session registry, cause %w", err)
	}
	return &Registry{cache: cache}, nil
}

// NewToken issues a fresh opaque session token. Tokens are never parsed,
// only matched, so the encoding is free to change.
func NewToken() (string, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("unable to generate session token, cause %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf[:]), nil
}

// Bind stores both identity fields under token in one write. A failed
// write is surfaced, never swallowed: the caller must not hand out a
// cookie for a session that was only half-established.
func (r *Registry) Bind(ctx context.Context, token string, id Identity) error {
	buf, err := json.Marshal(id)
	if err != nil {
		return BindError{cause: err}
	}
	if err := r.cache.Set(token, buf); err != nil {
		return BindError{cause: err}
	}
	return nil
}

// Identity returns the identity bound to token. The second return is
// false for unknown tokens, expired sessions and records that somehow
// lack either field.
func (r *Registry) Identity(ctx context.Context, token string) (Identity, bool) {
	if token == "" {
		return Identity{}, false
	}
	buf, err := r.cache.Get(token)
	if err != nil {
		return Identity{}, false
	}
	var id Identity
	if err := json.Unmarshal(buf, &id); err != nil {
		return Identity{}, false
	}
	if id.UserID == 0 || id.Username == "" {
		return Identity{}, false
	}
	return id, true
}

// Authorize fails with ErrUnauthorized unless the session bound to token
// holds exactly claimedUserID. Request-supplied user ids are untrusted;
// every entry operation must pass through here before touching storage.
func (r *Registry) Authorize(ctx context.Context, token string, claimedUserID int64) error {
	id, ok := r.Identity(ctx, token)
	if !ok || id.UserID != claimedUserID {
		return ErrUnauthorized
	}
	return nil
}

// Purge drops the session unconditionally. Purging a token that was never
// bound is fine.
func (r *Registry) Purge(ctx context.Context, token string) {
	if token == "" {
		return
	}
	// Delete only fails for unknown keys, which purge does not care about
	_ = r.cache.Delete(token)
}
