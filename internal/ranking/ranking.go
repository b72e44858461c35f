// Package ranking provides total-order comparators for items, inventory entries and recipes.
//
// A comparator returns a negative number when a sorts before b, zero when they are
// equal and a positive number otherwise. Descending comparators are always built
// with Reverse from the ascending one.
package ranking

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shard-legends/codex-service/internal/models"
)

// Comparator orders two values
type Comparator[T any] func(a, b T) int

// Reverse swaps the arguments of c
func Reverse[T any](c Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		return c(b, a)
	}
}

// Then applies next when c reports equality
func Then[T any](c, next Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		if r := c(a, b); r != 0 {
			return r
		}
		return next(a, b)
	}
}

// Sort keys
const (
	KeyID         = "id"
	KeyName       = "name"
	KeyRarity     = "rarity"
	KeyType       = "type"
	KeyValue      = "value"
	KeyQuantity   = "quantity"
	KeyStackValue = "stackValue"
)

// Keys returns every entry sort key
func Keys() []string {
	return []string{KeyID, KeyName, KeyRarity, KeyType, KeyValue, KeyQuantity, KeyStackValue}
}

// collate.Collator keeps internal buffers and is not safe for concurrent use
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English)
)

// CompareNames compares two names with English collation rules
func CompareNames(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// Entry comparators, ascending

// ByID compares catalog ids
func ByID(a, b models.InventoryEntry) int {
	return cmp.Compare(a.Item.ID, b.Item.ID)
}

// ByName compares item names by collation
func ByName(a, b models.InventoryEntry) int {
	return CompareNames(a.Item.Name, b.Item.Name)
}

// ByRarity compares rarity ranks; unknown rarity sorts last
func ByRarity(a, b models.InventoryEntry) int {
	return cmp.Compare(a.Item.Rarity.Rank(), b.Item.Rarity.Rank())
}

// ByType compares type tags, then names
func ByType(a, b models.InventoryEntry) int {
	if r := strings.Compare(a.Item.Type, b.Item.Type); r != 0 {
		return r
	}
	return ByName(a, b)
}

// ByValue compares unit values; equal values put the larger quantity first
func ByValue(a, b models.InventoryEntry) int {
	if r := cmp.Compare(a.Item.Value, b.Item.Value); r != 0 {
		return r
	}
	return cmp.Compare(b.Quantity, a.Quantity)
}

// ByQuantity compares quantities; equal quantities put the larger value first
func ByQuantity(a, b models.InventoryEntry) int {
	if r := cmp.Compare(a.Quantity, b.Quantity); r != 0 {
		return r
	}
	return cmp.Compare(b.Item.Value, a.Item.Value)
}

// ByStackValue compares value multiplied by quantity
func ByStackValue(a, b models.InventoryEntry) int {
	return cmp.Compare(a.StackValue(), b.StackValue())
}

var entryComparators = map[string]Comparator[models.InventoryEntry]{
	KeyID:         ByID,
	KeyName:       ByName,
	KeyRarity:     ByRarity,
	KeyType:       ByType,
	KeyValue:      ByValue,
	KeyQuantity:   ByQuantity,
	KeyStackValue: ByStackValue,
}

// Lookup returns the entry comparator registered for key. Keys are matched
// ignoring case; desc wraps the comparator with Reverse.
func Lookup(key string, desc bool) (Comparator[models.InventoryEntry], error) {
	c, ok := findEntryComparator(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidSort, key)
	}
	if desc {
		return Reverse(c), nil
	}
	return c, nil
}

func findEntryComparator(key string) (Comparator[models.InventoryEntry], bool) {
	for k, c := range entryComparators {
		if strings.EqualFold(k, key) {
			return c, true
		}
	}
	return nil, false
}

// ItemKeys returns the sort keys meaningful for catalog items, which carry no quantity
func ItemKeys() []string {
	return []string{KeyID, KeyName, KeyRarity, KeyType, KeyValue}
}

// LookupItem returns an item comparator for key. Quantity based keys are rejected.
func LookupItem(key string, desc bool) (Comparator[models.Item], error) {
	if strings.EqualFold(key, KeyQuantity) || strings.EqualFold(key, KeyStackValue) {
		return nil, fmt.Errorf("%w: %s is not available for items", models.ErrInvalidSort, key)
	}
	c, err := Lookup(key, desc)
	if err != nil {
		return nil, err
	}
	return func(a, b models.Item) int {
		return c(models.InventoryEntry{Item: a}, models.InventoryEntry{Item: b})
	}, nil
}

// SortEntries sorts entries in place, keeping the input order of equal entries
func SortEntries(entries []models.InventoryEntry, c Comparator[models.InventoryEntry]) {
	slices.SortStableFunc(entries, c)
}

// SortItems sorts items in place, keeping the input order of equal items
func SortItems(items []models.Item, c Comparator[models.Item]) {
	slices.SortStableFunc(items, c)
}

// Recipe sort keys
const (
	RecipeKeyResult      = "result"
	RecipeKeyIngredients = "ingredients"
	RecipeKeyGroup       = "group"
)

var recipeComparators = map[string]Comparator[models.Recipe]{
	RecipeKeyResult: func(a, b models.Recipe) int {
		return CompareNames(a.Result, b.Result)
	},
	RecipeKeyIngredients: func(a, b models.Recipe) int {
		if r := cmp.Compare(len(a.Ingredients)+len(a.Tools), len(b.Ingredients)+len(b.Tools)); r != 0 {
			return r
		}
		return CompareNames(a.Result, b.Result)
	},
	RecipeKeyGroup: func(a, b models.Recipe) int {
		ca, cb := a.Class(), b.Class()
		if r := strings.Compare(ca.Group, cb.Group); r != 0 {
			return r
		}
		if r := strings.Compare(ca.Subgroup, cb.Subgroup); r != 0 {
			return r
		}
		return CompareNames(a.Result, b.Result)
	},
}

// LookupRecipe returns the recipe comparator for key
func LookupRecipe(key string, desc bool) (Comparator[models.Recipe], error) {
	c, ok := recipeComparators[strings.ToLower(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidSort, key)
	}
	if desc {
		return Reverse(c), nil
	}
	return c, nil
}

// SortRecipes sorts recipes in place, keeping the input order of equal recipes
func SortRecipes(recipes []models.Recipe, c Comparator[models.Recipe]) {
	slices.SortStableFunc(recipes, c)
}
