package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shard-legends/codex-service/internal/models"
)

func entry(id int, name string, rarity models.Rarity, typ string, value, qty int) models.InventoryEntry {
	return models.InventoryEntry{
		Item:      models.Item{ID: id, Name: name, Rarity: rarity, Type: typ, Value: value},
		UniqueKey: name,
		Quantity:  qty,
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func fixture() []models.InventoryEntry {
	return []models.InventoryEntry{
		entry(3, "Spear", models.RarityUncommon, "Tool", 40, 1),
		entry(1, "stick", models.RarityCommon, "Material", 5, 12),
		entry(5, "Ruby", models.RarityMythic, "Material", 500, 1),
		entry(2, "Stone", models.RarityCommon, "Material", 5, 3),
		{Item: models.UnknownItem(), UniqueKey: "u9", Quantity: 2},
		entry(4, "Knife", models.RarityRare, "Tool", 20, 2),
	}
}

func names(entries []models.InventoryEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Item.Name)
	}
	return out
}

func TestValueAscending_TieBreaksOnQuantity(t *testing.T) {
	entries := []models.InventoryEntry{
		entry(1, "A", models.RarityCommon, "Material", 10, 2),
		entry(2, "B", models.RarityCommon, "Material", 10, 5),
	}
	c, err := Lookup(KeyValue, false)
	require.NoError(t, err)

	SortEntries(entries, c)
	assert.Equal(t, 5, entries[0].Quantity)
	assert.Equal(t, 2, entries[1].Quantity)
}

func TestSortEntries_ByKey(t *testing.T) {
	tests := []struct {
		key  string
		desc bool
		want []string
	}{
		{KeyID, false, []string{"Unknown", "stick", "Stone", "Spear", "Knife", "Ruby"}},
		{KeyName, false, []string{"Knife", "Ruby", "Spear", "stick", "Stone", "Unknown"}},
		{KeyRarity, false, []string{"stick", "Stone", "Spear", "Knife", "Ruby", "Unknown"}},
		{KeyRarity, true, []string{"Unknown", "Ruby", "Knife", "Spear", "stick", "Stone"}},
		{KeyType, false, []string{"Ruby", "stick", "Stone", "Knife", "Spear", "Unknown"}},
		{KeyValue, false, []string{"Unknown", "stick", "Stone", "Knife", "Spear", "Ruby"}},
		{KeyValue, true, []string{"Ruby", "Spear", "Knife", "Stone", "stick", "Unknown"}},
		{KeyQuantity, false, []string{"Ruby", "Spear", "Knife", "Unknown", "Stone", "stick"}},
		{KeyStackValue, true, []string{"Ruby", "stick", "Spear", "Knife", "Stone", "Unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c, err := Lookup(tt.key, tt.desc)
			require.NoError(t, err)

			entries := fixture()
			SortEntries(entries, c)
			assert.Equal(t, tt.want, names(entries))
		})
	}
}

func TestLookup_UnknownKey(t *testing.T) {
	_, err := Lookup("weight", false)
	assert.ErrorIs(t, err, models.ErrInvalidSort)

	c, err := Lookup("STACKVALUE", false)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestComparators_Antisymmetric(t *testing.T) {
	entries := fixture()
	for _, key := range Keys() {
		asc, err := Lookup(key, false)
		require.NoError(t, err)
		desc, err := Lookup(key, true)
		require.NoError(t, err)

		for _, a := range entries {
			for _, b := range entries {
				assert.Equal(t, sign(asc(a, b)), -sign(asc(b, a)), "%s antisymmetry %s/%s", key, a.Item.Name, b.Item.Name)
				assert.Equal(t, sign(asc(a, b)), -sign(desc(a, b)), "%s asc vs desc %s/%s", key, a.Item.Name, b.Item.Name)
			}
		}
	}
}

func TestRarity_UnknownSortsLast(t *testing.T) {
	mythic := entry(1, "M", models.RarityMythic, "", 0, 1)
	unknown := entry(2, "U", models.RarityUnknown, "", 0, 1)
	assert.Negative(t, ByRarity(mythic, unknown))
	assert.Zero(t, ByRarity(mythic, mythic))
}

func TestCompareNames(t *testing.T) {
	assert.Negative(t, CompareNames("apple", "Banana"))
	assert.Negative(t, CompareNames("élan", "zebra"))
	assert.Zero(t, CompareNames("Stone", "Stone"))
}

func TestThen(t *testing.T) {
	c := Then(Comparator[models.InventoryEntry](ByRarity), ByName)
	a := entry(1, "B", models.RarityCommon, "", 0, 1)
	b := entry(2, "A", models.RarityCommon, "", 0, 1)
	assert.Positive(t, c(a, b))
}

func TestLookupItem(t *testing.T) {
	items := []models.Item{
		{ID: 2, Name: "Gem", Value: 10},
		{ID: 1, Name: "Stick", Value: 1},
		{ID: 3, Name: "Axe", Value: 10},
	}

	c, err := LookupItem(KeyValue, true)
	require.NoError(t, err)
	SortItems(items, c)
	assert.Equal(t, "Gem", items[0].Name, "equal values keep input order")
	assert.Equal(t, "Axe", items[1].Name)
	assert.Equal(t, "Stick", items[2].Name)

	_, err = LookupItem(KeyQuantity, false)
	assert.ErrorIs(t, err, models.ErrInvalidSort)
	_, err = LookupItem(KeyStackValue, false)
	assert.ErrorIs(t, err, models.ErrInvalidSort)
}

func TestSortRecipes(t *testing.T) {
	recipes := []models.Recipe{
		{Result: "Spear", Ingredients: []string{"Stick", "Stone"}, Tools: []string{"Knife"}, Type: "Tools/Weapons"},
		{Result: "Bread", Ingredients: []string{"Flour"}, Type: "Food"},
		{Result: "Knife", Ingredients: []string{"Stone"}, Type: "Tools/Blades"},
	}

	c, err := LookupRecipe(RecipeKeyResult, false)
	require.NoError(t, err)
	SortRecipes(recipes, c)
	assert.Equal(t, "Bread", recipes[0].Result)
	assert.Equal(t, "Knife", recipes[1].Result)
	assert.Equal(t, "Spear", recipes[2].Result)

	c, err = LookupRecipe(RecipeKeyGroup, true)
	require.NoError(t, err)
	SortRecipes(recipes, c)
	assert.Equal(t, "Spear", recipes[0].Result)
	assert.Equal(t, "Knife", recipes[1].Result)
	assert.Equal(t, "Bread", recipes[2].Result)

	c, err = LookupRecipe(RecipeKeyIngredients, false)
	require.NoError(t, err)
	SortRecipes(recipes, c)
	assert.Equal(t, "Spear", recipes[2].Result)

	_, err = LookupRecipe("color", false)
	assert.ErrorIs(t, err, models.ErrInvalidSort)
}
