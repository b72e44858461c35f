package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/catalog"
	"github.com/shard-legends/codex-service/internal/inventory"
	"github.com/shard-legends/codex-service/internal/matcher"
	"github.com/shard-legends/codex-service/internal/models"
	"github.com/shard-legends/codex-service/internal/ranking"
	"github.com/shard-legends/codex-service/pkg/metrics"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
	suggestionLimit    = 5
)

// codexService реализует CodexService
type codexService struct {
	dataset *DatasetHolder
	logger  *zap.Logger
}

// NewCodexService создает новый экземпляр сервиса справочника
func NewCodexService(deps *ServiceDependencies) CodexService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &codexService{
		dataset: deps.Dataset,
		logger:  logger.Named("codex"),
	}
}

// ListItems возвращает отфильтрованные и отсортированные предметы
func (s *codexService) ListItems(ctx context.Context, filter models.ItemFilter) (*models.ItemsResponse, error) {
	state, err := s.dataset.Current()
	if err != nil {
		return nil, err
	}

	var rarity models.Rarity
	if filter.Rarity != "" {
		if rarity, err = models.ValidateRarityFilter(filter.Rarity); err != nil {
			return nil, err
		}
	}

	var cmp ranking.Comparator[models.Item]
	if filter.Sort != "" {
		desc, err := models.ValidateOrder(filter.Order)
		if err != nil {
			return nil, err
		}
		if cmp, err = ranking.LookupItem(filter.Sort, desc); err != nil {
			return nil, err
		}
	}

	var items []models.Item
	if filter.Type != "" {
		items = state.Catalog.ItemsOfType(filter.Type)
	} else {
		items = state.Catalog.Items()
	}

	filtered := make([]models.Item, 0, len(items))
	for _, item := range items {
		if rarity != "" && item.Rarity != rarity {
			continue
		}
		filtered = append(filtered, item)
	}

	if cmp != nil {
		ranking.SortItems(filtered, cmp)
	}

	total := len(filtered)
	filtered = paginate(filtered, filter.Offset, filter.Limit)

	return &models.ItemsResponse{Items: filtered, Total: total}, nil
}

func paginate[T any](list []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// GetItemPage возвращает все известное о предмете
func (s *codexService) GetItemPage(ctx context.Context, name string) (*models.ItemPage, error) {
	state, err := s.dataset.Current()
	if err != nil {
		return nil, err
	}

	item, ok := state.Catalog.FindItemByName(name)
	if !ok {
		return nil, &NotFoundError{Query: name, Suggestions: state.Catalog.Suggest(name, suggestionLimit)}
	}
	return buildItemPage(state, item), nil
}

// ListRecipes возвращает отфильтрованные и отсортированные рецепты
func (s *codexService) ListRecipes(ctx context.Context, filter models.RecipeFilter) (*models.RecipesResponse, error) {
	state, err := s.dataset.Current()
	if err != nil {
		return nil, err
	}

	var cmp ranking.Comparator[models.Recipe]
	if filter.Sort != "" {
		desc, err := models.ValidateOrder(filter.Order)
		if err != nil {
			return nil, err
		}
		if cmp, err = ranking.LookupRecipe(filter.Sort, desc); err != nil {
			return nil, err
		}
	}

	var recipes []models.Recipe
	switch {
	case filter.Uses != "":
		recipes = state.Catalog.FindRecipesUsing(filter.Uses)
	case filter.Group != "":
		recipes = state.Catalog.RecipesInGroup(filter.Group, filter.Subgroup)
	default:
		recipes = state.Catalog.Recipes()
	}

	if filter.Uses != "" && filter.Group != "" {
		wantGroup := catalog.Normalize(filter.Group)
		wantSub := catalog.Normalize(filter.Subgroup)
		narrowed := recipes[:0]
		for _, r := range recipes {
			class := r.Class()
			if catalog.Normalize(class.Group) != wantGroup {
				continue
			}
			if wantSub != "" && catalog.Normalize(class.Subgroup) != wantSub {
				continue
			}
			narrowed = append(narrowed, r)
		}
		recipes = narrowed
	}

	if cmp != nil {
		ranking.SortRecipes(recipes, cmp)
	}

	views := toRecipeViews(recipes)
	return &models.RecipesResponse{Recipes: views, Total: len(views)}, nil
}

// Search ищет предметы по имени и описанию; при пустом результате добавляет подсказки
func (s *codexService) Search(ctx context.Context, query string, limit int) (*models.SearchResponse, error) {
	state, err := s.dataset.Current()
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	items := state.Catalog.Search(query, limit)
	if items == nil {
		items = []models.Item{}
	}
	resp := &models.SearchResponse{Query: query, Items: items}
	if len(items) == 0 {
		resp.Suggestions = state.Catalog.Suggest(query, suggestionLimit)
	}
	return resp, nil
}

// Categories возвращает типы предметов и группы рецептов
func (s *codexService) Categories(ctx context.Context) (*models.CategoriesResponse, error) {
	state, err := s.dataset.Current()
	if err != nil {
		return nil, err
	}
	return &models.CategoriesResponse{
		Types:  state.Catalog.Categories(),
		Groups: state.Catalog.RecipeGroups(),
	}, nil
}

// ResolvePage классифицирует запрос и строит страницу
func (s *codexService) ResolvePage(ctx context.Context, query string) (*models.Page, error) {
	state, err := s.dataset.Current()
	if err != nil {
		return nil, err
	}

	class, ok := Classify(state, query)
	if !ok {
		return nil, &NotFoundError{Query: query, Suggestions: state.Catalog.Suggest(query, suggestionLimit)}
	}
	page, ok := Resolve(state, class)
	if !ok {
		return nil, &NotFoundError{Query: query}
	}
	return page, nil
}

// Craftable проверяет, какие рецепты можно создать из инвентаря
func (s *codexService) Craftable(ctx context.Context, stacks []models.RawStack, onlyNew bool) (*models.CraftableResponse, error) {
	state, err := s.dataset.Current()
	if err != nil {
		return nil, err
	}
	return evaluate(state, stacks, onlyNew), nil
}

func evaluate(state *State, stacks []models.RawStack, onlyNew bool) *models.CraftableResponse {
	snap := inventory.Build(state.Catalog, stacks)
	metrics.RecordCraftabilityCheck(len(stacks))

	results := matcher.Results(state.Catalog, snap)
	if onlyNew {
		fresh := make([]models.CraftabilityResult, 0, len(results))
		for _, r := range results {
			if r.IsNew {
				fresh = append(fresh, r)
			}
		}
		results = fresh
	}

	return &models.CraftableResponse{
		Results:   results,
		Appraisal: matcher.Appraise(snap),
		Skipped:   snap.Skipped,
	}
}

// Appraise оценивает инвентарь и сортирует его записи
func (s *codexService) Appraise(ctx context.Context, stacks []models.RawStack, sort, order string) (*models.AppraiseResponse, error) {
	state, err := s.dataset.Current()
	if err != nil {
		return nil, err
	}

	var cmp ranking.Comparator[models.InventoryEntry]
	if sort != "" {
		desc, err := models.ValidateOrder(order)
		if err != nil {
			return nil, err
		}
		if cmp, err = ranking.Lookup(sort, desc); err != nil {
			return nil, err
		}
	}

	snap := inventory.Build(state.Catalog, stacks)
	entries := snap.Entries
	if cmp != nil {
		ranking.SortEntries(entries, cmp)
	}

	return &models.AppraiseResponse{
		Entries:   entries,
		Appraisal: matcher.Appraise(snap),
		Skipped:   snap.Skipped,
	}, nil
}

// ScrapePage извлекает стеки из сохраненной страницы инвентаря
func (s *codexService) ScrapePage(ctx context.Context, page io.Reader) (*models.ScrapeResponse, error) {
	stacks, err := inventory.ParsePageHTML(page, inventory.DefaultSelectors)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if stacks == nil {
		stacks = []models.RawStack{}
	}
	s.logger.Debug("Inventory page scraped", zap.Int("stacks", len(stacks)))
	return &models.ScrapeResponse{Stacks: stacks}, nil
}

// ImportSaveFile извлекает стеки из файла сохранения
func (s *codexService) ImportSaveFile(ctx context.Context, file io.Reader) (*models.ScrapeResponse, error) {
	stacks, err := inventory.ParseSaveFile(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &models.ScrapeResponse{Stacks: stacks}, nil
}

// Reload перезагружает данные в обход кэша документов
func (s *codexService) Reload(ctx context.Context) (*models.ReloadResponse, error) {
	state, err := s.dataset.ForceReload(ctx)
	if err != nil {
		return nil, err
	}
	return &models.ReloadResponse{
		Items:    state.Catalog.Len(),
		Recipes:  len(state.Catalog.Recipes()),
		Skipped:  state.Dataset.Skipped,
		Origins:  state.Dataset.Origins,
		LoadedAt: state.Dataset.LoadedAt,
	}, nil
}
