package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/models"
	"github.com/shard-legends/codex-service/internal/storage"
)

// CodexService определяет интерфейс сервиса справочника предметов и рецептов
type CodexService interface {
	// ListItems возвращает отфильтрованные и отсортированные предметы
	ListItems(ctx context.Context, filter models.ItemFilter) (*models.ItemsResponse, error)

	// GetItemPage возвращает все известное о предмете
	GetItemPage(ctx context.Context, name string) (*models.ItemPage, error)

	// ListRecipes возвращает отфильтрованные и отсортированные рецепты
	ListRecipes(ctx context.Context, filter models.RecipeFilter) (*models.RecipesResponse, error)

	// Search ищет предметы по имени и описанию
	Search(ctx context.Context, query string, limit int) (*models.SearchResponse, error)

	// Categories возвращает типы предметов и группы рецептов
	Categories(ctx context.Context) (*models.CategoriesResponse, error)

	// ResolvePage классифицирует запрос и строит страницу
	ResolvePage(ctx context.Context, query string) (*models.Page, error)

	// Craftable проверяет, какие рецепты можно создать из инвентаря
	Craftable(ctx context.Context, stacks []models.RawStack, onlyNew bool) (*models.CraftableResponse, error)

	// Appraise оценивает инвентарь и сортирует его записи
	Appraise(ctx context.Context, stacks []models.RawStack, sort, order string) (*models.AppraiseResponse, error)

	// ScrapePage извлекает стеки из сохраненной страницы инвентаря
	ScrapePage(ctx context.Context, page io.Reader) (*models.ScrapeResponse, error)

	// ImportSaveFile извлекает стеки из файла сохранения
	ImportSaveFile(ctx context.Context, file io.Reader) (*models.ScrapeResponse, error)

	// Reload перезагружает данные
	Reload(ctx context.Context) (*models.ReloadResponse, error)
}

// SnapshotService определяет интерфейс сервиса сохраненных снимков инвентаря
type SnapshotService interface {
	// Save сохраняет снимок
	Save(ctx context.Context, req *models.SaveSnapshotRequest) (*models.SavedSnapshot, error)

	// Get возвращает снимок по ID
	Get(ctx context.Context, id uuid.UUID) (*models.SavedSnapshot, error)

	// List возвращает снимки владельца
	List(ctx context.Context, owner string, limit int) ([]models.SavedSnapshot, error)

	// Delete удаляет снимок
	Delete(ctx context.Context, id uuid.UUID) error

	// Evaluate проверяет сохраненный снимок по текущим данным
	Evaluate(ctx context.Context, id uuid.UUID, onlyNew bool) (*models.CraftableResponse, error)

	// Enabled сообщает, настроено ли хранилище
	Enabled() bool
}

// ServiceDependencies содержит зависимости для создания сервисов
type ServiceDependencies struct {
	Dataset   *DatasetHolder
	Snapshots storage.SnapshotRepository
	Logger    *zap.Logger
}

// Service объединяет все сервисы
type Service struct {
	Dataset   *DatasetHolder
	Codex     CodexService
	Snapshots SnapshotService
}

// NewService создает новый экземпляр Service со всеми сервисами
func NewService(deps *ServiceDependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{
		Dataset:   deps.Dataset,
		Codex:     NewCodexService(deps),
		Snapshots: NewSnapshotService(deps),
	}
}
