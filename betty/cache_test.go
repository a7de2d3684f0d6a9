package betty

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingService struct {
	gets    int
	uploads int
	err     error
}

func (s *countingService) GetImage(_ context.Context, id int64) (*Image, error) {
	s.gets++
	if s.err != nil {
		return nil, s.err
	}
	return &Image{ID: id, Name: "Lenna.png"}, nil
}

func (s *countingService) Upload(_ context.Context, name string, _ io.Reader) (*Image, error) {
	s.uploads++
	return &Image{ID: 777, Name: name}, nil
}

func (s *countingService) UpdateImage(_ context.Context, id int64, update ImageUpdate) (*Image, error) {
	if s.err != nil {
		return nil, s.err
	}
	img := &Image{ID: id}
	if update.Name != nil {
		img.Name = *update.Name
	}
	return img, nil
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, &Image{ID: 1, Name: "a"}, time.Minute))

	img, ok, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", img.Name)

	now = now.Add(time.Minute)
	_, ok, err = cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCachedServiceGetImage(t *testing.T) {
	ctx := context.Background()
	inner := &countingService{}
	svc := NewCachedService(inner, NewMemoryCache(), time.Minute)

	for i := 0; i < 3; i++ {
		img, err := svc.GetImage(ctx, 12345)
		require.NoError(t, err)
		assert.Equal(t, int64(12345), img.ID)
	}
	assert.Equal(t, 1, inner.gets)
}

func TestCachedServiceUploadPrimesCache(t *testing.T) {
	ctx := context.Background()
	inner := &countingService{}
	svc := NewCachedService(inner, NewMemoryCache(), time.Minute)

	img, err := svc.Upload(ctx, "Lenna.png", nil)
	require.NoError(t, err)

	cached, err := svc.GetImage(ctx, img.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lenna.png", cached.Name)
	assert.Equal(t, 0, inner.gets)
}

func TestCachedServiceUpdateFailureEvicts(t *testing.T) {
	ctx := context.Background()
	inner := &countingService{}
	cache := NewMemoryCache()
	svc := NewCachedService(inner, cache, time.Minute)

	_, err := svc.GetImage(ctx, 5)
	require.NoError(t, err)

	inner.err = errors.New("down")
	_, err = svc.UpdateImage(ctx, 5, ImageUpdate{})
	require.Error(t, err)

	_, ok, _ := cache.Get(ctx, 5)
	assert.False(t, ok)
}

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client), server
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	cache, server := newRedisCache(t)

	_, ok, err := cache.Get(ctx, 424242)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, &Image{ID: 424242, Name: "redis.png", Width: 512}, time.Minute))
	assert.True(t, server.Exists("betty:image:424242"))
	assert.Equal(t, time.Minute, server.TTL("betty:image:424242"))

	img, ok, err := cache.Get(ctx, 424242)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "redis.png", img.Name)
	assert.Equal(t, 512, img.Width)

	require.NoError(t, cache.Delete(ctx, 424242))
	_, ok, err = cache.Get(ctx, 424242)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheExpires(t *testing.T) {
	ctx := context.Background()
	cache, server := newRedisCache(t)

	require.NoError(t, cache.Set(ctx, &Image{ID: 7}, time.Second))
	server.FastForward(2 * time.Second)

	_, ok, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheErrors(t *testing.T) {
	ctx := context.Background()
	cache, server := newRedisCache(t)

	require.NoError(t, server.Set("betty:image:9", "not json"))
	_, ok, err := cache.Get(ctx, 9)
	assert.Error(t, err)
	assert.False(t, ok)

	server.Close()
	_, _, err = cache.Get(ctx, 9)
	assert.Error(t, err)
}

func TestCachedServiceOverRedis(t *testing.T) {
	ctx := context.Background()
	cache, _ := newRedisCache(t)
	inner := &countingService{}
	svc := NewCachedService(inner, cache, time.Minute)

	for i := 0; i < 3; i++ {
		img, err := svc.GetImage(ctx, 12345)
		require.NoError(t, err)
		assert.Equal(t, int64(12345), img.ID)
	}
	assert.Equal(t, 1, inner.gets)
}
