package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStorage runs the behaviour every backend must share.
func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, err := s.GetItem(ctx, "quickcart_cart")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, s.SetItem(ctx, "quickcart_cart", `{"2":3,"5":1}`))
	val, err := s.GetItem(ctx, "quickcart_cart")
	require.NoError(t, err)
	assert.Equal(t, `{"2":3,"5":1}`, val)

	require.NoError(t, s.SetItem(ctx, "quickcart_cart", `{}`))
	val, err = s.GetItem(ctx, "quickcart_cart")
	require.NoError(t, err)
	assert.Equal(t, `{}`, val)

	require.NoError(t, s.RemoveItem(ctx, "quickcart_cart"))
	_, err = s.GetItem(ctx, "quickcart_cart")
	assert.True(t, errors.Is(err, ErrNotFound))

	// Removing a missing key is not an error.
	assert.NoError(t, s.RemoveItem(ctx, "quickcart_cart"))

	assert.True(t, errors.Is(s.SetItem(ctx, "", "x"), ErrInvalidKey))
}

func TestMemory(t *testing.T) {
	exerciseStorage(t, NewMemory())
}

func TestWithPrefix(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()

	a := WithPrefix(base, "session:a:")
	b := WithPrefix(base, "session:b:")

	require.NoError(t, a.SetItem(ctx, "quickcart_cart", `{"1":1}`))
	require.NoError(t, b.SetItem(ctx, "quickcart_cart", `{"2":2}`))

	val, err := base.GetItem(ctx, "session:a:quickcart_cart")
	require.NoError(t, err)
	assert.Equal(t, `{"1":1}`, val)

	val, err = b.GetItem(ctx, "quickcart_cart")
	require.NoError(t, err)
	assert.Equal(t, `{"2":2}`, val)

	require.NoError(t, a.RemoveItem(ctx, "quickcart_cart"))
	_, err = a.GetItem(ctx, "quickcart_cart")
	assert.True(t, errors.Is(err, ErrNotFound))

	exerciseStorage(t, WithPrefix(NewMemory(), "p:"))
}

func TestWithPrefix_RejectsEmptyKey(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	p := WithPrefix(base, "session:x:")

	assert.True(t, errors.Is(p.SetItem(ctx, "", "x"), ErrInvalidKey))
	_, err := p.GetItem(ctx, "")
	assert.True(t, errors.Is(err, ErrInvalidKey))
	assert.True(t, errors.Is(p.RemoveItem(ctx, ""), ErrInvalidKey))

	_, err = base.GetItem(ctx, "session:x:")
	assert.True(t, errors.Is(err, ErrNotFound))
}
