package adapters

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/shard-legends/codex-service/internal/storage"
)

// BackendMemory - имя внутрипроцессного бэкенда кеша в метриках
const BackendMemory = "memory"

// MemoryCache реализует storage.CacheInterface в памяти процесса.
// Используется, когда Redis не настроен.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache создает кеш с TTL по умолчанию и периодом очистки
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) storage.CacheInterface {
	return &MemoryCache{cache: gocache.New(defaultTTL, cleanupInterval)}
}

// Get получает значение по ключу; отсутствующий ключ дает пустую строку
func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	v, ok := c.cache.Get(key)
	if !ok {
		return "", nil
	}
	s, _ := v.(string)
	return s, nil
}

// Set устанавливает значение с TTL; нулевой TTL означает TTL по умолчанию
func (c *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, value, ttl)
	return nil
}

// Del удаляет ключ
func (c *MemoryCache) Del(_ context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

// Health всегда успешен
func (c *MemoryCache) Health(_ context.Context) error {
	return nil
}

// Backend возвращает имя бэкенда
func (c *MemoryCache) Backend() string {
	return BackendMemory
}
