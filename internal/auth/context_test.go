package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/authdash/internal/auth"
)

func TestUseInsideScope(t *testing.T) {
	store := auth.New(&stubTransport{}, newMemStorage(nil))
	ctx, release := auth.Provide(context.Background(), store)
	defer release()

	got, err := auth.Use(ctx)
	require.NoError(t, err)
	assert.Same(t, store, got)
	assert.Same(t, store, auth.MustUse(ctx))
}

func TestUseOutsideScope(t *testing.T) {
	_, err := auth.Use(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoProvider)

	//nolint:staticcheck // nil context is the misuse under test
	_, err = auth.Use(nil)
	assert.ErrorIs(t, err, auth.ErrNoProvider)
}

func TestUseAfterRelease(t *testing.T) {
	store := auth.New(&stubTransport{}, newMemStorage(nil))
	ctx, release := auth.Provide(context.Background(), store)
	release()

	_, err := auth.Use(ctx)
	assert.ErrorIs(t, err, auth.ErrNoProvider)
}

func TestMustUsePanicsOutsideScope(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, auth.ErrNoProvider))
	}()
	auth.MustUse(context.Background())
	t.Fatal("MustUse returned outside of a scope")
}

func TestNestedScopesAreIndependent(t *testing.T) {
	outer := auth.New(&stubTransport{}, newMemStorage(nil))
	inner := auth.New(&stubTransport{}, newMemStorage(nil))

	ctx, releaseOuter := auth.Provide(context.Background(), outer)
	defer releaseOuter()
	innerCtx, releaseInner := auth.Provide(ctx, inner)

	assert.Same(t, inner, auth.MustUse(innerCtx))
	releaseInner()
	_, err := auth.Use(innerCtx)
	assert.ErrorIs(t, err, auth.ErrNoProvider)
	assert.Same(t, outer, auth.MustUse(ctx))
}
