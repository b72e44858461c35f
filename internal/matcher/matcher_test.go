package matcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shard-legends/codex-service/internal/catalog"
	"github.com/shard-legends/codex-service/internal/inventory"
	"github.com/shard-legends/codex-service/internal/models"
)

var spearRecipe = models.Recipe{Result: "Spear", Ingredients: []string{"Stick"}, Tools: []string{}}

func spearCatalog() *catalog.Catalog {
	return catalog.New([]models.Item{
		{ID: 1, Name: "Stick", Rarity: models.RarityCommon, Type: "Material", Value: 5},
		{ID: 2, Name: "Spear", Rarity: models.RarityUncommon, Type: "Tool", Value: 30},
	}, []models.Recipe{spearRecipe})
}

func snapshot(cat *catalog.Catalog, stacks ...models.RawStack) inventory.Snapshot {
	return inventory.Build(cat, stacks)
}

func TestCraftable_NewResult(t *testing.T) {
	cat := spearCatalog()
	snap := snapshot(cat, models.RawStack{Key: "Stick", Quantity: "1"})

	assert.Equal(t, []models.Recipe{spearRecipe}, Craftable(cat, snap))
	assert.Equal(t, []models.Recipe{spearRecipe}, NewlyCraftable(cat, snap))

	results := Results(cat, snap)
	require.Len(t, results, 1)
	assert.True(t, results[0].IsNew)
}

func TestCraftable_ResultAlreadyOwned(t *testing.T) {
	cat := spearCatalog()
	snap := snapshot(cat,
		models.RawStack{Key: "Stick", Quantity: "1"},
		models.RawStack{Key: "Spear", Quantity: "1"},
	)

	assert.Equal(t, []models.Recipe{spearRecipe}, Craftable(cat, snap))
	assert.Empty(t, NewlyCraftable(cat, snap))

	results := Results(cat, snap)
	require.Len(t, results, 1)
	assert.False(t, results[0].IsNew)
}

func TestCraftable_MissingIngredient(t *testing.T) {
	cat := spearCatalog()
	snap := snapshot(cat, models.RawStack{Key: "Spear", Quantity: "1"})

	assert.Empty(t, Craftable(cat, snap))
	assert.Empty(t, NewlyCraftable(cat, snap))
	assert.Equal(t, []string{"Stick"}, Missing(spearRecipe, snap))
}

func TestCraftable_ToolsRequiredButNotConsumed(t *testing.T) {
	recipe := models.Recipe{Result: "Plank", Ingredients: []string{"Log"}, Tools: []string{"Saw"}}
	cat := catalog.New([]models.Item{
		{ID: 1, Name: "Log"}, {ID: 2, Name: "Saw"},
	}, []models.Recipe{recipe})

	onlyLog := snapshot(cat, models.RawStack{Key: "log", Quantity: "1"})
	assert.False(t, CanCraft(recipe, onlyLog))
	assert.Equal(t, []string{"Saw"}, Missing(recipe, onlyLog))

	both := snapshot(cat,
		models.RawStack{Key: "Log", Quantity: "1"},
		models.RawStack{Key: "SAW", Quantity: "1"},
	)
	assert.True(t, CanCraft(recipe, both))
	assert.Empty(t, Missing(recipe, both))
}

func TestCraftable_QuantityIgnored(t *testing.T) {
	recipe := models.Recipe{Result: "Wall", Ingredients: []string{"Brick", "Brick", "Brick"}}
	cat := catalog.New([]models.Item{{ID: 1, Name: "Brick"}}, []models.Recipe{recipe})

	snap := snapshot(cat, models.RawStack{Key: "Brick", Quantity: "1"})
	assert.Equal(t, []models.Recipe{recipe}, Craftable(cat, snap))
}

func TestCraftable_SentinelNameDoesNotSatisfy(t *testing.T) {
	recipe := models.Recipe{Result: "Thing", Ingredients: []string{models.UnknownItemName}}
	cat := catalog.New(nil, []models.Recipe{recipe})

	snap := snapshot(cat, models.RawStack{Key: "mystery", Quantity: "3"})
	require.Len(t, snap.Entries, 1)
	assert.Empty(t, Craftable(cat, snap))
}

func stickOnlyCatalog() *catalog.Catalog {
	return catalog.New([]models.Item{
		{ID: 1, Name: "Stick", Rarity: models.RarityCommon, Type: "Material", Value: 5},
	}, []models.Recipe{spearRecipe})
}

func TestCraftable_ResultOutsideCatalog(t *testing.T) {
	cat := stickOnlyCatalog()

	fresh := snapshot(cat, models.RawStack{Key: "Stick", Quantity: "1"})
	assert.Equal(t, []models.Recipe{spearRecipe}, Craftable(cat, fresh))
	assert.Equal(t, []models.Recipe{spearRecipe}, NewlyCraftable(cat, fresh))

	owned := snapshot(cat,
		models.RawStack{Key: "Stick", Quantity: "1"},
		models.RawStack{Key: "Spear", Quantity: "1"},
	)
	require.True(t, owned.Entries[1].Item.IsUnknown())
	assert.Equal(t, []models.Recipe{spearRecipe}, Craftable(cat, owned))
	assert.Empty(t, NewlyCraftable(cat, owned))

	results := Results(cat, owned)
	require.Len(t, results, 1)
	assert.False(t, results[0].IsNew)
}

func TestCraftable_FromScrapedPage(t *testing.T) {
	cat := catalog.New(catalog.WithImages(
		[]models.Item{{ID: 1, Name: "Stick", Value: 5}, {ID: 2, Name: "Stone", Value: 3}},
		[]models.WikiEntry{{Name: "Stone", Image: "https://wiki.example.com/img/5f0c1e2d-0000-4000-8000-0000000000aa.png"}},
	), []models.Recipe{{Result: "Axe", Ingredients: []string{"Stick", "Stone"}}})

	page := `<div class="inventory-slot" data-item-name="Stick">
  <img src="/i/0a1b2c3d-0000-4000-8000-00000000beef.png"><span class="quantity">x3</span>
</div>
<div class="inventory-slot">
  <img src="/i/5F0C1E2D-0000-4000-8000-0000000000AA.png"><span class="quantity">2</span>
</div>`
	stacks, err := inventory.ParsePageHTML(strings.NewReader(page), inventory.DefaultSelectors)
	require.NoError(t, err)

	snap := inventory.Build(cat, stacks)
	require.Len(t, snap.Entries, 2)
	assert.Zero(t, Appraise(snap).UnknownCount)

	results := Results(cat, snap)
	require.Len(t, results, 1)
	assert.Equal(t, "Axe", results[0].Recipe.Result)
	assert.True(t, results[0].IsNew)
}

func TestCraftable_EmptyRequirements(t *testing.T) {
	recipe := models.Recipe{Result: "Air"}
	cat := catalog.New([]models.Item{{ID: 1, Name: "Stick"}}, []models.Recipe{recipe})

	snap := snapshot(cat, models.RawStack{Key: "Stick", Quantity: "1"})
	assert.Empty(t, Craftable(cat, snap))
}

func TestEmptySnapshot(t *testing.T) {
	cat := spearCatalog()
	snap := snapshot(cat)

	craftable := Craftable(cat, snap)
	assert.NotNil(t, craftable)
	assert.Empty(t, craftable)
	assert.Empty(t, NewlyCraftable(cat, snap))
	assert.Empty(t, Results(cat, snap))
	assert.Equal(t, models.Appraisal{}, Appraise(snap))
}

func TestNilCatalog(t *testing.T) {
	snap := snapshot(nil, models.RawStack{Key: "Stick", Quantity: "1"})
	assert.Empty(t, Craftable(nil, snap))
	assert.Empty(t, NewlyCraftable(nil, snap))
}

func TestAppraise(t *testing.T) {
	cat := catalog.New([]models.Item{{ID: 1, Name: "Gem", Value: 10}}, nil)
	snap := snapshot(cat,
		models.RawStack{Key: "Gem", Quantity: "3"},
		models.RawStack{Key: "u2", Quantity: "1"},
	)

	assert.Equal(t, models.Appraisal{
		UniqueStacks:   2,
		TotalItemCount: 4,
		TotalValue:     30,
		UnknownCount:   1,
	}, Appraise(snap))
}

func propertyFixture() (*catalog.Catalog, []inventory.Snapshot) {
	items := []models.Item{
		{ID: 1, Name: "Stick", Value: 1},
		{ID: 2, Name: "Stone", Value: 2},
		{ID: 3, Name: "Knife", Value: 20},
		{ID: 4, Name: "Spear", Value: 40},
		{ID: 5, Name: "Rope", Value: 3},
		{ID: 6, Name: "Bow", Value: 50},
	}
	recipes := []models.Recipe{
		{Result: "Knife", Ingredients: []string{"Stone", "Stick"}},
		{Result: "Spear", Ingredients: []string{"Stick", "Stone"}, Tools: []string{"Knife"}},
		{Result: "Bow", Ingredients: []string{"Stick", "Rope"}, Tools: []string{"Knife"}},
		{Result: "Rope", Ingredients: []string{"Fiber"}},
		{Result: "Trap", Ingredients: []string{"Rope", "Stick"}},
	}
	cat := catalog.New(items, recipes)

	stackSets := [][]models.RawStack{
		nil,
		{{Key: "Stick", Quantity: "2"}},
		{{Key: "Stick", Quantity: "2"}, {Key: "Stone", Quantity: "1"}},
		{{Key: "Stick", Quantity: "1"}, {Key: "Stone", Quantity: "1"}, {Key: "Knife", Quantity: "1"}},
		{{Key: "stick", Quantity: "5"}, {Key: "ROPE", Quantity: "1"}, {Key: "Knife", Quantity: "1"}, {Key: "Bow", Quantity: "1"}},
		{{Key: "Stick", Quantity: "1"}, {Key: "Stick", Quantity: "9"}, {Key: "zzz", Quantity: "4"}, {Key: "6", Quantity: "2"}},
	}
	snaps := make([]inventory.Snapshot, 0, len(stackSets))
	for _, stacks := range stackSets {
		snaps = append(snaps, inventory.Build(cat, stacks))
	}
	return cat, snaps
}

func TestProperty_CraftableIsCompleteAndSound(t *testing.T) {
	cat, snaps := propertyFixture()

	for i, snap := range snaps {
		owned := snap.OwnedNames()
		craftable := make(map[string]bool)
		for _, r := range Craftable(cat, snap) {
			craftable[r.Result] = true
		}

		for _, r := range cat.Recipes() {
			all := true
			for _, name := range r.Requirements() {
				if _, ok := owned[catalog.Normalize(name)]; !ok {
					all = false
				}
			}
			assert.Equal(t, all, craftable[r.Result], "snapshot %d recipe %s", i, r.Result)
		}
	}
}

func TestProperty_NewlyCraftableSubset(t *testing.T) {
	cat, snaps := propertyFixture()

	for i, snap := range snaps {
		craftable := Craftable(cat, snap)
		for _, r := range NewlyCraftable(cat, snap) {
			assert.Contains(t, craftable, r, "snapshot %d", i)
		}

		var newCount int
		for _, res := range Results(cat, snap) {
			if res.IsNew {
				newCount++
			}
		}
		assert.Len(t, NewlyCraftable(cat, snap), newCount)
	}
}

func TestProperty_TotalItemCount(t *testing.T) {
	_, snaps := propertyFixture()

	for i, snap := range snaps {
		sum := 0
		for _, e := range snap.Entries {
			sum += e.Quantity
		}
		assert.Equal(t, sum, Appraise(snap).TotalItemCount, "snapshot %d", i)
	}
}

func TestProperty_Idempotent(t *testing.T) {
	cat, snaps := propertyFixture()

	for _, snap := range snaps {
		assert.Equal(t, Craftable(cat, snap), Craftable(cat, snap))
		assert.Equal(t, NewlyCraftable(cat, snap), NewlyCraftable(cat, snap))
		assert.Equal(t, Results(cat, snap), Results(cat, snap))
		assert.Equal(t, Appraise(snap), Appraise(snap))
	}
}

func TestResults_MutationDoesNotLeak(t *testing.T) {
	cat, snaps := propertyFixture()
	snap := snaps[3]

	first := Craftable(cat, snap)
	require.NotEmpty(t, first)
	first[0].Result = "Changed"

	second := Craftable(cat, snap)
	assert.NotEqual(t, "Changed", second[0].Result)
}
