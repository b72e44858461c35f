// Package catalog indexes items and recipes for lookup by name and id.
//
// A Catalog is built once and never mutated afterwards, so it is safe to share
// between goroutines. Lookups report absence with a boolean, never with an error.
package catalog

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/shard-legends/codex-service/internal/models"
)

// Catalog is an immutable index over items and recipes
type Catalog struct {
	items   []models.Item
	recipes []models.Recipe

	byName         map[string]int
	byID           map[int]int
	byImage        map[string]int
	recipeByResult map[string]int
	recipesUsing   map[string][]int

	skipped int
}

// Normalize is the single name normalization used for every case-insensitive comparison
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var imagePattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// ImageKey extracts the lowercased image UUID from an image URL, file name or bare
// UUID. It returns "" when there is none.
func ImageKey(ref string) string {
	return strings.ToLower(imagePattern.FindString(path.Base(strings.TrimSpace(ref))))
}

// WithImages returns a copy of items where an item without an image takes the image
// of the first wiki entry carrying its name
func WithImages(items []models.Item, wiki []models.WikiEntry) []models.Item {
	images := make(map[string]string, len(wiki))
	for _, w := range wiki {
		key := Normalize(w.Name)
		if key == "" || strings.TrimSpace(w.Image) == "" {
			continue
		}
		if _, dup := images[key]; !dup {
			images[key] = strings.TrimSpace(w.Image)
		}
	}

	out := make([]models.Item, len(items))
	copy(out, items)
	for i := range out {
		if out[i].Image == "" {
			out[i].Image = images[Normalize(out[i].Name)]
		}
	}
	return out
}

// New builds a catalog. Items without a name and items whose name or id repeats an
// earlier item are not indexed and are counted in Skipped.
func New(items []models.Item, recipes []models.Recipe) *Catalog {
	c := &Catalog{
		items:          make([]models.Item, 0, len(items)),
		recipes:        make([]models.Recipe, 0, len(recipes)),
		byName:         make(map[string]int, len(items)),
		byID:           make(map[int]int, len(items)),
		byImage:        make(map[string]int),
		recipeByResult: make(map[string]int, len(recipes)),
		recipesUsing:   make(map[string][]int),
	}

	for _, item := range items {
		key := Normalize(item.Name)
		if key == "" {
			c.skipped++
			continue
		}
		if _, dup := c.byName[key]; dup {
			c.skipped++
			continue
		}
		if item.ID != 0 {
			if _, dup := c.byID[item.ID]; dup {
				c.skipped++
				continue
			}
		}

		idx := len(c.items)
		c.items = append(c.items, item)
		c.byName[key] = idx
		if item.ID != 0 {
			c.byID[item.ID] = idx
		}
		if img := ImageKey(item.Image); img != "" {
			if _, dup := c.byImage[img]; !dup {
				c.byImage[img] = idx
			}
		}
	}

	for _, recipe := range recipes {
		key := Normalize(recipe.Result)
		if key == "" {
			c.skipped++
			continue
		}

		idx := len(c.recipes)
		c.recipes = append(c.recipes, recipe)
		if _, exists := c.recipeByResult[key]; !exists {
			c.recipeByResult[key] = idx
		}

		seen := make(map[string]struct{}, len(recipe.Ingredients)+len(recipe.Tools))
		for _, name := range recipe.Requirements() {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			c.recipesUsing[name] = append(c.recipesUsing[name], idx)
		}
	}

	return c
}

// Skipped returns the number of entries rejected while building the catalog
func (c *Catalog) Skipped() int {
	return c.skipped
}

// Len returns the number of indexed items
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns a copy of the indexed items in load order
func (c *Catalog) Items() []models.Item {
	out := make([]models.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Recipes returns a copy of the indexed recipes in load order
func (c *Catalog) Recipes() []models.Recipe {
	out := make([]models.Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// FindItemByName looks an item up by name, ignoring case and surrounding space
func (c *Catalog) FindItemByName(name string) (models.Item, bool) {
	idx, ok := c.byName[Normalize(name)]
	if !ok {
		return models.Item{}, false
	}
	return c.items[idx], true
}

// FindItemByID looks an item up by id
func (c *Catalog) FindItemByID(id int) (models.Item, bool) {
	if id == 0 {
		return models.Item{}, false
	}
	idx, ok := c.byID[id]
	if !ok {
		return models.Item{}, false
	}
	return c.items[idx], true
}

// FindItemByImage looks an item up by the UUID in its image reference
func (c *Catalog) FindItemByImage(ref string) (models.Item, bool) {
	key := ImageKey(ref)
	if key == "" {
		return models.Item{}, false
	}
	idx, ok := c.byImage[key]
	if !ok {
		return models.Item{}, false
	}
	return c.items[idx], true
}

// FindRecipeByResult returns the first recipe producing name
func (c *Catalog) FindRecipeByResult(name string) (models.Recipe, bool) {
	idx, ok := c.recipeByResult[Normalize(name)]
	if !ok {
		return models.Recipe{}, false
	}
	return c.recipes[idx], true
}

// FindRecipesUsing returns recipes listing itemName as an ingredient or tool.
// The match is exact and case-sensitive, as stored in the recipe.
func (c *Catalog) FindRecipesUsing(itemName string) []models.Recipe {
	idxs := c.recipesUsing[itemName]
	out := make([]models.Recipe, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, c.recipes[idx])
	}
	return out
}

// ItemsOfType returns items whose type tag equals itemType, ignoring case
func (c *Catalog) ItemsOfType(itemType string) []models.Item {
	want := Normalize(itemType)
	var out []models.Item
	for _, item := range c.items {
		if Normalize(item.Type) == want {
			out = append(out, item)
		}
	}
	return out
}

// HasType reports whether any item carries itemType
func (c *Catalog) HasType(itemType string) bool {
	want := Normalize(itemType)
	if want == "" {
		return false
	}
	for _, item := range c.items {
		if Normalize(item.Type) == want {
			return true
		}
	}
	return false
}

// Categories returns the distinct item types with item counts, sorted by type
func (c *Catalog) Categories() []models.CategoryCount {
	counts := make(map[string]int)
	display := make(map[string]string)
	for _, item := range c.items {
		key := Normalize(item.Type)
		if key == "" {
			continue
		}
		if _, ok := display[key]; !ok {
			display[key] = strings.TrimSpace(item.Type)
		}
		counts[key]++
	}

	out := make([]models.CategoryCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, models.CategoryCount{Type: display[key], Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// RecipeGroups returns the distinct recipe groups with their subgroups, sorted by group
func (c *Catalog) RecipeGroups() []models.RecipeGroupSummary {
	type acc struct {
		display   string
		count     int
		subgroups map[string]string
	}
	groups := make(map[string]*acc)

	for _, recipe := range c.recipes {
		class := recipe.Class()
		key := Normalize(class.Group)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &acc{display: class.Group, subgroups: make(map[string]string)}
			groups[key] = g
		}
		g.count++
		if sub := Normalize(class.Subgroup); sub != "" {
			if _, seen := g.subgroups[sub]; !seen {
				g.subgroups[sub] = class.Subgroup
			}
		}
	}

	out := make([]models.RecipeGroupSummary, 0, len(groups))
	for _, g := range groups {
		subs := make([]string, 0, len(g.subgroups))
		for _, s := range g.subgroups {
			subs = append(subs, s)
		}
		sort.Strings(subs)
		out = append(out, models.RecipeGroupSummary{Group: g.display, Subgroups: subs, Count: g.count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out
}

// HasRecipeGroup reports whether any recipe belongs to group
func (c *Catalog) HasRecipeGroup(group string) bool {
	want := Normalize(group)
	if want == "" {
		return false
	}
	for _, recipe := range c.recipes {
		if Normalize(recipe.Class().Group) == want {
			return true
		}
	}
	return false
}

// RecipesInGroup returns recipes of a group; an empty subgroup matches the whole group
func (c *Catalog) RecipesInGroup(group, subgroup string) []models.Recipe {
	wantGroup := Normalize(group)
	wantSub := Normalize(subgroup)
	var out []models.Recipe
	for _, recipe := range c.recipes {
		class := recipe.Class()
		if Normalize(class.Group) != wantGroup {
			continue
		}
		if wantSub != "" && Normalize(class.Subgroup) != wantSub {
			continue
		}
		out = append(out, recipe)
	}
	return out
}
