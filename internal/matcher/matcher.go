// Package matcher decides which recipes an inventory can craft and values the inventory.
//
// Every function is pure: results are rebuilt on each call from the catalog and
// snapshot passed in. Craftability only checks that each required name is owned at
// all; quantities and consumption across several crafts are not modelled.
package matcher

import (
	"github.com/shard-legends/codex-service/internal/catalog"
	"github.com/shard-legends/codex-service/internal/inventory"
	"github.com/shard-legends/codex-service/internal/models"
)

// Craftable returns the recipes of cat whose ingredients and tools are all owned,
// in catalog order. A recipe with no ingredients and no tools is never craftable.
func Craftable(cat *catalog.Catalog, snap inventory.Snapshot) []models.Recipe {
	owned := snap.OwnedNames()
	out := make([]models.Recipe, 0)
	if cat == nil || len(owned) == 0 {
		return out
	}
	for _, recipe := range cat.Recipes() {
		if satisfied(recipe, owned) {
			out = append(out, recipe)
		}
	}
	return out
}

// NewlyCraftable returns the craftable recipes whose result is not owned yet
func NewlyCraftable(cat *catalog.Catalog, snap inventory.Snapshot) []models.Recipe {
	owned := snap.OwnedNames()
	out := make([]models.Recipe, 0)
	for _, recipe := range Craftable(cat, snap) {
		if _, have := owned[catalog.Normalize(recipe.Result)]; !have {
			out = append(out, recipe)
		}
	}
	return out
}

// Results returns every craftable recipe annotated with whether its result is new
func Results(cat *catalog.Catalog, snap inventory.Snapshot) []models.CraftabilityResult {
	owned := snap.OwnedNames()
	craftable := Craftable(cat, snap)
	out := make([]models.CraftabilityResult, 0, len(craftable))
	for _, recipe := range craftable {
		_, have := owned[catalog.Normalize(recipe.Result)]
		out = append(out, models.CraftabilityResult{Recipe: recipe, IsNew: !have})
	}
	return out
}

// CanCraft reports whether a single recipe is satisfied by snap
func CanCraft(recipe models.Recipe, snap inventory.Snapshot) bool {
	return satisfied(recipe, snap.OwnedNames())
}

// Missing returns the ingredient and tool names of recipe that snap does not own,
// in requirement order with repeats removed
func Missing(recipe models.Recipe, snap inventory.Snapshot) []string {
	owned := snap.OwnedNames()
	seen := make(map[string]struct{})
	var missing []string
	for _, name := range recipe.Requirements() {
		key := catalog.Normalize(name)
		if _, have := owned[key]; have {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		missing = append(missing, name)
	}
	return missing
}

// Appraise totals a snapshot. Unknown stacks count towards TotalItemCount and
// UnknownCount but carry no value.
func Appraise(snap inventory.Snapshot) models.Appraisal {
	var a models.Appraisal
	for _, e := range snap.Entries {
		a.UniqueStacks++
		a.TotalItemCount += e.Quantity
		if !e.Known() {
			a.UnknownCount++
			continue
		}
		a.TotalValue += e.StackValue()
	}
	return a
}

// satisfied is false for a recipe that lists nothing: such entries are data gaps
func satisfied(recipe models.Recipe, owned map[string]struct{}) bool {
	if len(recipe.Ingredients)+len(recipe.Tools) == 0 {
		return false
	}
	for _, name := range recipe.Ingredients {
		if _, ok := owned[catalog.Normalize(name)]; !ok {
			return false
		}
	}
	for _, name := range recipe.Tools {
		if _, ok := owned[catalog.Normalize(name)]; !ok {
			return false
		}
	}
	return true
}
