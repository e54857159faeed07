package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type stubFlagCache struct {
	flags   map[string]bool
	err     error
	stores  int
	lookups int
}

func (c *stubFlagCache) Lookup(_ context.Context, username string) (bool, bool, error) {
	c.lookups++
	if c.err != nil {
		return false, false, c.err
	}
	active, ok := c.flags[username]
	return active, ok, nil
}

func (c *stubFlagCache) Store(_ context.Context, username string, active bool) error {
	c.stores++
	if c.err != nil {
		return c.err
	}
	c.flags[username] = active
	return nil
}

func TestAccountDirectory_CacheHitSkipsStore(t *testing.T) {
	cache := &stubFlagCache{flags: map[string]bool{"op_user": true}}
	dir := NewAccountDirectory(repoWith(t), cache, zerolog.Nop())

	active, err := dir.IsActive(context.Background(), "op_user")
	if err != nil {
		t.Fatalf("is active: %v", err)
	}
	if !active {
		t.Fatalf("cached flag ignored")
	}
	if cache.stores != 0 {
		t.Fatalf("cache hit must not trigger a store")
	}
}

func TestAccountDirectory_MissFallsThroughAndCaches(t *testing.T) {
	user := testUser()
	cache := &stubFlagCache{flags: map[string]bool{}}
	dir := NewAccountDirectory(repoWith(t, user), cache, zerolog.Nop())

	active, err := dir.IsActive(context.Background(), "op_user")
	if err != nil {
		t.Fatalf("is active: %v", err)
	}
	if !active {
		t.Fatalf("active user reported inactive")
	}
	if flag, ok := cache.flags["op_user"]; !ok || !flag {
		t.Fatalf("flag not written back to cache")
	}
}

func TestAccountDirectory_UnknownUserIsInactiveNotError(t *testing.T) {
	cache := &stubFlagCache{flags: map[string]bool{}}
	dir := NewAccountDirectory(repoWith(t), cache, zerolog.Nop())

	active, err := dir.IsActive(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unknown user must not be an error, got %v", err)
	}
	if active {
		t.Fatalf("unknown user reported active")
	}
}

func TestAccountDirectory_CacheFailureFallsThrough(t *testing.T) {
	user := testUser()
	cache := &stubFlagCache{err: errors.New("redis down")}
	dir := NewAccountDirectory(repoWith(t, user), cache, zerolog.Nop())

	active, err := dir.IsActive(context.Background(), "op_user")
	if err != nil {
		t.Fatalf("cache failure must fall through to the store, got %v", err)
	}
	if !active {
		t.Fatalf("active user reported inactive")
	}
}

func TestAccountDirectory_InactiveUser(t *testing.T) {
	user := testUser()
	user.Active = false
	dir := NewAccountDirectory(repoWith(t, user), &stubFlagCache{flags: map[string]bool{}}, zerolog.Nop())

	active, err := dir.IsActive(context.Background(), "op_user")
	if err != nil {
		t.Fatalf("is active: %v", err)
	}
	if active {
		t.Fatalf("deactivated user reported active")
	}
}
