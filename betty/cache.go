package betty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"betty_server_go/metrics"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Cache хранит метаданные изображений Betty между запросами.
type Cache interface {
	Get(ctx context.Context, id int64) (*Image, bool, error)
	Set(ctx context.Context, img *Image, ttl time.Duration) error
	Delete(ctx context.Context, id int64) error
}

func cacheKey(id int64) string {
	return fmt.Sprintf("betty:image:%d", id)
}

// RedisCache - кэш в Redis, значения хранятся как JSON.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache создает кэш поверх готового клиента Redis.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, id int64) (*Image, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get image %d: %w", id, err)
	}
	var img Image
	if err := json.Unmarshal(raw, &img); err != nil {
		return nil, false, fmt.Errorf("redis decode image %d: %w", id, err)
	}
	return &img, true, nil
}

func (c *RedisCache) Set(ctx context.Context, img *Image, ttl time.Duration) error {
	raw, err := json.Marshal(img)
	if err != nil {
		return fmt.Errorf("redis encode image %d: %w", img.ID, err)
	}
	return c.client.Set(ctx, cacheKey(img.ID), raw, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, id int64) error {
	return c.client.Del(ctx, cacheKey(id)).Err()
}

type memoryEntry struct {
	img     Image
	expires time.Time
}

// MemoryCache - кэш в памяти процесса, используется когда Redis не настроен.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[int64]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[int64]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, id int64) (*Image, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[id]
	if !ok {
		return nil, false, nil
	}
	if !entry.expires.IsZero() && !c.now().Before(entry.expires) {
		delete(c.entries, id)
		return nil, false, nil
	}
	img := entry.img
	return &img, true, nil
}

func (c *MemoryCache) Set(_ context.Context, img *Image, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := memoryEntry{img: *img}
	if ttl > 0 {
		entry.expires = c.now().Add(ttl)
	}
	c.entries[img.ID] = entry
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

// CachedService оборачивает Service кэшем метаданных.
// Ошибки кэша только логируются: источник правды - сам Betty.
type CachedService struct {
	Service
	cache Cache
	ttl   time.Duration
}

func NewCachedService(service Service, cache Cache, ttl time.Duration) *CachedService {
	return &CachedService{Service: service, cache: cache, ttl: ttl}
}

func (s *CachedService) GetImage(ctx context.Context, id int64) (*Image, error) {
	img, ok, err := s.cache.Get(ctx, id)
	if err != nil {
		log.Warnf("Betty cache: ошибка чтения ID %d: %v", id, err)
	} else if ok {
		metrics.BettyCacheResults.WithLabelValues("hit").Inc()
		return img, nil
	}
	metrics.BettyCacheResults.WithLabelValues("miss").Inc()

	img, err = s.Service.GetImage(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, img)
	return img, nil
}

func (s *CachedService) Upload(ctx context.Context, name string, file io.Reader) (*Image, error) {
	img, err := s.Service.Upload(ctx, name, file)
	if err != nil {
		return nil, err
	}
	s.store(ctx, img)
	return img, nil
}

func (s *CachedService) UpdateImage(ctx context.Context, id int64, update ImageUpdate) (*Image, error) {
	img, err := s.Service.UpdateImage(ctx, id, update)
	if err != nil {
		if delErr := s.cache.Delete(ctx, id); delErr != nil {
			log.Warnf("Betty cache: ошибка удаления ID %d: %v", id, delErr)
		}
		return nil, err
	}
	s.store(ctx, img)
	return img, nil
}

func (s *CachedService) store(ctx context.Context, img *Image) {
	if err := s.cache.Set(ctx, img, s.ttl); err != nil {
		log.Warnf("Betty cache: ошибка записи ID %d: %v", img.ID, err)
	}
}
