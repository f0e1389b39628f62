package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*redis.IntCmd)
}

func TestRedis_GetItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := new(MockRedisClient)
		client.On("Get", ctx, "quickcart_cart").Return(redis.NewStringResult(`{"2":3}`, nil))

		val, err := NewRedis(client, 0).GetItem(ctx, "quickcart_cart")
		assert.NoError(t, err)
		assert.Equal(t, `{"2":3}`, val)
		client.AssertExpectations(t)
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(MockRedisClient)
		client.On("Get", ctx, "quickcart_cart").Return(redis.NewStringResult("", redis.Nil))

		_, err := NewRedis(client, 0).GetItem(ctx, "quickcart_cart")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("Connection error", func(t *testing.T) {
		client := new(MockRedisClient)
		client.On("Get", ctx, "quickcart_cart").Return(redis.NewStringResult("", errors.New("dial tcp: refused")))

		_, err := NewRedis(client, 0).GetItem(ctx, "quickcart_cart")
		assert.True(t, errors.Is(err, ErrUnavailable))
	})
}

func TestRedis_SetItem(t *testing.T) {
	ctx := context.Background()
	ttl := 24 * time.Hour

	t.Run("Success", func(t *testing.T) {
		client := new(MockRedisClient)
		client.On("Set", ctx, "quickcart_cart", `{"2":3}`, ttl).Return(redis.NewStatusResult("OK", nil))

		assert.NoError(t, NewRedis(client, ttl).SetItem(ctx, "quickcart_cart", `{"2":3}`))
		client.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		client := new(MockRedisClient)
		client.On("Set", ctx, "quickcart_cart", `{}`, ttl).Return(redis.NewStatusResult("", errors.New("READONLY")))

		err := NewRedis(client, ttl).SetItem(ctx, "quickcart_cart", `{}`)
		assert.True(t, errors.Is(err, ErrUnavailable))
	})

	t.Run("Empty key", func(t *testing.T) {
		client := new(MockRedisClient)
		err := NewRedis(client, ttl).SetItem(ctx, "", `{}`)
		assert.True(t, errors.Is(err, ErrInvalidKey))
		client.AssertNotCalled(t, "Set")
	})
}

func TestRedis_RemoveItem(t *testing.T) {
	ctx := context.Background()

	client := new(MockRedisClient)
	client.On("Del", ctx, []string{"quickcart_cart"}).Return(redis.NewIntResult(1, nil))

	assert.NoError(t, NewRedis(client, 0).RemoveItem(ctx, "quickcart_cart"))
	client.AssertExpectations(t)
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	client, err := NewRedisClient(context.Background(), "not-a-url://")
	assert.Error(t, err)
	assert.Nil(t, client)
}
