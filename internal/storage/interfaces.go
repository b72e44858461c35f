package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/shard-legends/codex-service/internal/models"
)

// ErrNotFound возвращается, когда запрошенная запись отсутствует
var ErrNotFound = errors.New("record not found")

// SnapshotRepository определяет интерфейс для работы с сохраненными снимками инвентаря
type SnapshotRepository interface {
	// EnsureSchema создает схему и таблицу, если их еще нет
	EnsureSchema(ctx context.Context) error

	// Save сохраняет снимок
	Save(ctx context.Context, snapshot *models.SavedSnapshot) error

	// Get возвращает снимок по ID
	Get(ctx context.Context, id uuid.UUID) (*models.SavedSnapshot, error)

	// ListByOwner возвращает снимки владельца, новые первыми
	ListByOwner(ctx context.Context, owner string, limit int) ([]models.SavedSnapshot, error)

	// Delete удаляет снимок
	Delete(ctx context.Context, id uuid.UUID) error
}

// RepositoryDependencies содержит зависимости для создания репозиториев
type RepositoryDependencies struct {
	DB               DatabaseInterface
	MetricsCollector MetricsInterface
}

// DatabaseInterface определяет интерфейс для работы с базой данных
type DatabaseInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) Row
	Query(ctx context.Context, query string, args ...interface{}) (Rows, error)
	Exec(ctx context.Context, query string, args ...interface{}) (int64, error)
	BeginTx(ctx context.Context) (Tx, error)
	Health(ctx context.Context) error
}

// CacheInterface определяет интерфейс для работы с кешем документов.
// Get возвращает пустую строку без ошибки, если ключа нет.
type CacheInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Health(ctx context.Context) error
	Backend() string
}

// MetricsInterface определяет интерфейс для сбора метрик
type MetricsInterface interface {
	IncDBQuery(operation string)
	IncCacheHit(cacheType string)
	IncCacheMiss(cacheType string)
	ObserveDBQueryDuration(operation string, duration time.Duration)
}

// Row интерфейс для работы с результатом одной строки
type Row interface {
	Scan(dest ...interface{}) error
}

// Rows интерфейс для работы с результатом множества строк
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
	Close()
}

// Tx интерфейс для работы с транзакциями
type Tx interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) Row
	Query(ctx context.Context, query string, args ...interface{}) (Rows, error)
	Exec(ctx context.Context, query string, args ...interface{}) (int64, error)
	Commit() error
	Rollback() error
}
