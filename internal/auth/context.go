package auth

import (
	"context"
	"fmt"
	"sync/atomic"
)

type scopeContextKey struct{}

// scope is the lifetime of a store as seen by the accessor.
type scope struct {
	store  *Store
	closed atomic.Bool
}

// Provide returns a context through which Use finds store. The scope ends
// when release is called; Use fails for this context afterwards.
func Provide(ctx context.Context, store *Store) (context.Context, func()) {
	sc := &scope{store: store}
	return context.WithValue(ctx, scopeContextKey{}, sc), func() { sc.closed.Store(true) }
}

// Use returns the store provided to ctx. It returns ErrNoProvider when ctx
// carries no store or its scope has been released.
func Use(ctx context.Context) (*Store, error) {
	if ctx == nil {
		return nil, ErrNoProvider
	}
	sc, ok := ctx.Value(scopeContextKey{}).(*scope)
	if !ok || sc.store == nil || sc.closed.Load() {
		return nil, ErrNoProvider
	}
	return sc.store, nil
}

// MustUse is Use for call sites where a missing store is a wiring bug. It
// panics with an error wrapping ErrNoProvider.
func MustUse(ctx context.Context) *Store {
	s, err := Use(ctx)
	if err != nil {
		panic(fmt.Errorf("auth.MustUse: %w", err))
	}
	return s
}
