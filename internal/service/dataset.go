package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/catalog"
	"github.com/shard-legends/codex-service/internal/models"
	"github.com/shard-legends/codex-service/pkg/metrics"
)

// DatasetLoader загружает полный набор документов
type DatasetLoader interface {
	Load(ctx context.Context) (*models.Dataset, error)
}

// State - неизменяемое активное состояние: набор документов, каталог и индексы фидов
type State struct {
	Dataset *models.Dataset
	Catalog *catalog.Catalog

	market  map[string]models.MarketListing
	wiki    map[string]models.WikiEntry
	sources map[string]models.Source
	quests  map[string]models.Quest
}

// NewState строит состояние из набора документов.
// Для повторяющихся имен в фидах побеждает первая запись.
func NewState(ds *models.Dataset) *State {
	s := &State{
		Dataset: ds,
		Catalog: catalog.New(catalog.WithImages(ds.Items, ds.Wiki), ds.Recipes),
		market:  make(map[string]models.MarketListing, len(ds.Market)),
		wiki:    make(map[string]models.WikiEntry, len(ds.Wiki)),
		sources: make(map[string]models.Source, len(ds.Sources)),
		quests:  make(map[string]models.Quest, len(ds.Quests)),
	}
	for _, m := range ds.Market {
		putFirst(s.market, m.Name, m)
	}
	for _, w := range ds.Wiki {
		putFirst(s.wiki, w.Name, w)
	}
	for _, src := range ds.Sources {
		putFirst(s.sources, src.Name, src)
	}
	for _, q := range ds.Quests {
		putFirst(s.quests, q.Name, q)
	}
	return s
}

func putFirst[T any](m map[string]T, name string, v T) {
	key := catalog.Normalize(name)
	if key == "" {
		return
	}
	if _, exists := m[key]; !exists {
		m[key] = v
	}
}

// Market возвращает рыночную запись предмета
func (s *State) Market(name string) (models.MarketListing, bool) {
	m, ok := s.market[catalog.Normalize(name)]
	return m, ok
}

// Wiki возвращает вики-запись предмета
func (s *State) Wiki(name string) (models.WikiEntry, bool) {
	w, ok := s.wiki[catalog.Normalize(name)]
	return w, ok
}

// Source возвращает источник по имени
func (s *State) Source(name string) (models.Source, bool) {
	src, ok := s.sources[catalog.Normalize(name)]
	return src, ok
}

// Quest возвращает квест по имени
func (s *State) Quest(name string) (models.Quest, bool) {
	q, ok := s.quests[catalog.Normalize(name)]
	return q, ok
}

// DatasetHolder хранит активное состояние и перезагружает его
type DatasetHolder struct {
	loader DatasetLoader
	logger *zap.Logger

	current atomic.Pointer[State]
	// reloadMu не дает двум перезагрузкам идти одновременно
	reloadMu sync.Mutex
}

// NewDatasetHolder создает хранилище состояния; до первой загрузки оно пустое
func NewDatasetHolder(loader DatasetLoader, logger *zap.Logger) *DatasetHolder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetHolder{loader: loader, logger: logger.Named("dataset")}
}

// Current возвращает активное состояние
func (h *DatasetHolder) Current() (*State, error) {
	s := h.current.Load()
	if s == nil {
		return nil, ErrDatasetNotLoaded
	}
	return s, nil
}

// Set публикует состояние напрямую
func (h *DatasetHolder) Set(ds *models.Dataset) *State {
	s := NewState(ds)
	h.current.Store(s)
	metrics.SetDatasetSize(s.Catalog.Len(), len(s.Catalog.Recipes()), len(ds.Sources), len(ds.Quests))
	return s
}

// Reload загружает документы и публикует новое состояние.
// При ошибке предыдущее состояние остается активным.
func (h *DatasetHolder) Reload(ctx context.Context) (*State, error) {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	start := time.Now()
	ds, err := h.loader.Load(ctx)
	if err != nil {
		metrics.RecordDatasetReload("error")
		h.logger.Error("Dataset reload failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}

	s := h.Set(ds)
	if skipped := s.Catalog.Skipped(); skipped > 0 {
		metrics.RecordMalformedEntries("catalog", skipped)
	}
	metrics.RecordDatasetReload("success")

	h.logger.Info("Dataset loaded",
		zap.Int("items", s.Catalog.Len()),
		zap.Int("recipes", len(s.Catalog.Recipes())),
		zap.Int("duplicates", s.Catalog.Skipped()),
		zap.Any("origins", ds.Origins),
		zap.Duration("duration", time.Since(start)),
	)
	return s, nil
}

// invalidator - загрузчик, умеющий сбрасывать свой кэш документов
type invalidator interface {
	Invalidate(ctx context.Context) error
}

// ForceReload сбрасывает кэш загрузчика и перезагружает состояние
func (h *DatasetHolder) ForceReload(ctx context.Context) (*State, error) {
	if inv, ok := h.loader.(invalidator); ok {
		if err := inv.Invalidate(ctx); err != nil {
			h.logger.Warn("Failed to invalidate document cache", zap.Error(err))
		}
	}
	return h.Reload(ctx)
}

// Run перезагружает состояние с интервалом до отмены контекста
func (h *DatasetHolder) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = h.Reload(ctx)
		}
	}
}
