package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_NoHost(t *testing.T) {
	client, err := NewRedisClient(context.Background(), &Options{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// 端口 1 上不会有 redis
	client, err := NewRedisClient(ctx, &Options{Host: "127.0.0.1", Port: 1})
	assert.Error(t, err)
	assert.Nil(t, client)
}

// 未连接 redis 时缓存退化为空操作
func TestCache_Disabled(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(nil, "deeplink:")
	assert.False(t, cache.Enabled())

	require.NoError(t, cache.SetJSON(ctx, "records", []string{"a"}, time.Minute))

	var dest []string
	hit, err := cache.GetJSON(ctx, "records", &dest)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, dest)

	assert.NoError(t, cache.Delete(ctx, "records"))
}
