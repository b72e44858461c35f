package service

import (
	"strings"

	"github.com/shard-legends/codex-service/internal/models"
)

// Classification - результат классификации запроса страницы
type Classification struct {
	Kind models.PageKind
	Key  string
}

// Classify определяет вид страницы по запросу.
// Порядок проверок: предмет, источник, квест, тип предмета, группа рецептов.
func Classify(s *State, query string) (Classification, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Classification{}, false
	}

	if item, ok := s.Catalog.FindItemByName(query); ok {
		return Classification{Kind: models.PageKindItem, Key: item.Name}, true
	}
	if src, ok := s.Source(query); ok {
		return Classification{Kind: models.PageKindSource, Key: src.Name}, true
	}
	if q, ok := s.Quest(query); ok {
		return Classification{Kind: models.PageKindQuest, Key: q.Name}, true
	}
	if s.Catalog.HasType(query) {
		return Classification{Kind: models.PageKindCategory, Key: query}, true
	}
	if class := models.ParseRecipeType(query); s.Catalog.HasRecipeGroup(class.Group) {
		if class.Subgroup == "" || len(s.Catalog.RecipesInGroup(class.Group, class.Subgroup)) > 0 {
			return Classification{Kind: models.PageKindCollection, Key: query}, true
		}
	}
	return Classification{}, false
}

// Resolve строит страницу для классифицированного запроса
func Resolve(s *State, c Classification) (*models.Page, bool) {
	var page *models.Page
	switch c.Kind {
	case models.PageKindItem:
		page = resolveItemPage(s, c.Key)
	case models.PageKindSource:
		page = resolveSourcePage(s, c.Key)
	case models.PageKindQuest:
		page = resolveQuestPage(s, c.Key)
	case models.PageKindCategory:
		page = resolveCategoryPage(s, c.Key)
	case models.PageKindCollection:
		page = resolveCollectionPage(s, c.Key)
	}
	if page == nil {
		return nil, false
	}
	return page, true
}

func resolveItemPage(s *State, key string) *models.Page {
	item, ok := s.Catalog.FindItemByName(key)
	if !ok {
		return nil
	}
	return &models.Page{Kind: models.PageKindItem, Key: item.Name, Item: buildItemPage(s, item)}
}

func buildItemPage(s *State, item models.Item) *models.ItemPage {
	page := &models.ItemPage{
		Item:   item,
		UsedIn: s.Catalog.FindRecipesUsing(item.Name),
	}
	if recipe, ok := s.Catalog.FindRecipeByResult(item.Name); ok {
		page.ProducedBy = &recipe
	}
	if m, ok := s.Market(item.Name); ok {
		page.Market = &m
	}
	if w, ok := s.Wiki(item.Name); ok {
		page.Wiki = &w
	}
	return page
}

func resolveSourcePage(s *State, key string) *models.Page {
	src, ok := s.Source(key)
	if !ok {
		return nil
	}
	items, unresolved := resolveNames(s, src.Items)

	// предметы, ссылающиеся на источник со своей стороны
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		seen[it.Name] = struct{}{}
	}
	for _, it := range s.Catalog.Items() {
		if _, dup := seen[it.Name]; dup {
			continue
		}
		for _, name := range it.Sources {
			if strings.EqualFold(strings.TrimSpace(name), src.Name) {
				items = append(items, it)
				seen[it.Name] = struct{}{}
				break
			}
		}
	}

	return &models.Page{
		Kind:   models.PageKindSource,
		Key:    src.Name,
		Source: &models.SourcePage{Source: src, Items: items, Unresolved: unresolved},
	}
}

func resolveQuestPage(s *State, key string) *models.Page {
	q, ok := s.Quest(key)
	if !ok {
		return nil
	}
	reqs, _ := resolveNames(s, q.Requirements)
	rewards, _ := resolveNames(s, q.Rewards)
	return &models.Page{
		Kind:  models.PageKindQuest,
		Key:   q.Name,
		Quest: &models.QuestPage{Quest: q, Requirements: reqs, Rewards: rewards},
	}
}

func resolveCategoryPage(s *State, key string) *models.Page {
	items := s.Catalog.ItemsOfType(key)
	if len(items) == 0 {
		return nil
	}
	return &models.Page{
		Kind:     models.PageKindCategory,
		Key:      key,
		Category: &models.CategoryPage{Type: items[0].Type, Items: items},
	}
}

func resolveCollectionPage(s *State, key string) *models.Page {
	class := models.ParseRecipeType(key)
	recipes := s.Catalog.RecipesInGroup(class.Group, class.Subgroup)
	if len(recipes) == 0 {
		return nil
	}
	views := toRecipeViews(recipes)
	return &models.Page{
		Kind: models.PageKindCollection,
		Key:  key,
		Collection: &models.CollectionPage{
			Group:    views[0].Group,
			Subgroup: class.Subgroup,
			Recipes:  views,
		},
	}
}

func resolveNames(s *State, names []string) ([]models.Item, []string) {
	items := make([]models.Item, 0, len(names))
	var unresolved []string
	for _, name := range names {
		if item, ok := s.Catalog.FindItemByName(name); ok {
			items = append(items, item)
			continue
		}
		unresolved = append(unresolved, name)
	}
	return items, unresolved
}

func toRecipeViews(recipes []models.Recipe) []models.RecipeView {
	views := make([]models.RecipeView, 0, len(recipes))
	for _, r := range recipes {
		class := r.Class()
		views = append(views, models.RecipeView{Recipe: r, Group: class.Group, Subgroup: class.Subgroup})
	}
	return views
}
