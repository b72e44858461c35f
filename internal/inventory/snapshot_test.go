package inventory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shard-legends/codex-service/internal/catalog"
	"github.com/shard-legends/codex-service/internal/models"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]models.Item{
		{ID: 1, Name: "Stick", Rarity: models.RarityCommon, Type: "Material", Value: 5},
		{ID: 2, Name: "Gem", Rarity: models.RarityRare, Type: "Material", Value: 10},
	}, nil)
}

func TestBuild_ResolvesKeys(t *testing.T) {
	snap := Build(testCatalog(), []models.RawStack{
		{Key: "stick", Quantity: "3"},
		{Key: "2", Quantity: "x4"},
		{Key: "c0ffee00-0000-4000-8000-000000000001", Quantity: "1"},
	})

	require.Len(t, snap.Entries, 3)
	assert.Equal(t, 0, snap.Skipped)

	assert.Equal(t, "Stick", snap.Entries[0].Item.Name)
	assert.Equal(t, "stick", snap.Entries[0].UniqueKey)
	assert.Equal(t, 3, snap.Entries[0].Quantity)

	assert.Equal(t, "Gem", snap.Entries[1].Item.Name)
	assert.Equal(t, 4, snap.Entries[1].Quantity)

	assert.True(t, snap.Entries[2].Item.IsUnknown())
	assert.Equal(t, 1, snap.Entries[2].Quantity)
}

func TestBuild_SkipsMalformed(t *testing.T) {
	snap := Build(testCatalog(), []models.RawStack{
		{Key: "Stick", Quantity: "abc"},
		{Key: "Stick", Quantity: "0"},
		{Key: "Stick", Quantity: "-2"},
		{Key: "Stick", Quantity: ""},
		{Key: "  ", Quantity: "5"},
		{Key: "Gem", Quantity: "1.5"},
		{Key: "Gem", Quantity: "2"},
	})

	require.Len(t, snap.Entries, 1)
	assert.Equal(t, 6, snap.Skipped)
	assert.Equal(t, "Gem", snap.Entries[0].Item.Name)
}

func TestBuild_KeepsDuplicateKeysAndOrder(t *testing.T) {
	snap := Build(testCatalog(), []models.RawStack{
		{Key: "Gem", Quantity: "1"},
		{Key: "Stick", Quantity: "2"},
		{Key: "Gem", Quantity: "7"},
	})

	require.Len(t, snap.Entries, 3)
	assert.Equal(t, "Gem", snap.Entries[0].Item.Name)
	assert.Equal(t, "Stick", snap.Entries[1].Item.Name)
	assert.Equal(t, "Gem", snap.Entries[2].Item.Name)
	assert.Equal(t, 8, snap.QuantityOf("gem"))
}

func TestBuild_NilCatalog(t *testing.T) {
	snap := Build(nil, []models.RawStack{{Key: "Stick", Quantity: "1"}})
	require.Len(t, snap.Entries, 1)
	assert.True(t, snap.Entries[0].Item.IsUnknown())
}

func TestBuild_Empty(t *testing.T) {
	snap := Build(testCatalog(), nil)
	assert.True(t, snap.IsEmpty())
	assert.Equal(t, 0, snap.Len())
	assert.Empty(t, snap.OwnedNames())
}

func TestOwnedNames(t *testing.T) {
	snap := Build(testCatalog(), []models.RawStack{
		{Key: "Stick", Quantity: "1"},
		{Key: "STICK", Quantity: "1"},
		{Key: "mystery", Quantity: "9"},
	})

	names := snap.OwnedNames()
	assert.Len(t, names, 2)
	assert.Contains(t, names, "stick")
	assert.Contains(t, names, "mystery")
	assert.True(t, snap.Owns("Stick"))
	assert.True(t, snap.Owns("Mystery"))
	assert.Equal(t, 9, snap.QuantityOf("mystery"))
	assert.False(t, snap.Owns("Gem"))
	assert.False(t, snap.Owns(models.UnknownItemName))
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"12", 12, true},
		{" x12 ", 12, true},
		{"X3", 3, true},
		{"×7", 7, true},
		{"1,200", 1200, true},
		{"1000000000", MaxQuantity, true},
		{"1000000001", 0, false},
		{"99999999999999999999", 0, false},
		{"0", 0, false},
		{"-1", 0, false},
		{"x", 0, false},
		{"ten", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseQuantity(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSaveFile(t *testing.T) {
	t.Run("object layout", func(t *testing.T) {
		body := `{"items":[{"name":"Stick","quantity":3},{"id":2,"quantity":"4"},{"key":"u1","name":"ignored","quantity":1}]}`
		stacks, err := ParseSaveFile(strings.NewReader(body))
		require.NoError(t, err)
		assert.Equal(t, []models.RawStack{
			{Key: "Stick", Quantity: "3"},
			{Key: "2", Quantity: "4"},
			{Key: "u1", Quantity: "1"},
		}, stacks)
	})

	t.Run("array layout", func(t *testing.T) {
		stacks, err := ParseSaveFile(strings.NewReader(` [{"key":"Gem","quantity":"x2"}]`))
		require.NoError(t, err)
		assert.Equal(t, []models.RawStack{{Key: "Gem", Quantity: "x2"}}, stacks)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseSaveFile(strings.NewReader("  "))
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := ParseSaveFile(strings.NewReader(`{"items":`))
		assert.Error(t, err)
	})
}

func TestParseSaveFile_NonScalarQuantitySkipped(t *testing.T) {
	stacks, err := ParseSaveFile(strings.NewReader(`[{"name":"Gem","quantity":true},{"name":"Stick","quantity":{}},{"name":"Gem","quantity":1}]`))
	require.NoError(t, err)

	snap := Build(testCatalog(), stacks)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, 2, snap.Skipped)
	assert.Equal(t, "Gem", snap.Entries[0].Item.Name)
}

func TestBuild_ResolvesImageKeys(t *testing.T) {
	cat := catalog.New([]models.Item{
		{ID: 1, Name: "Stick", Value: 5, Image: "https://cdn.example.com/items/0A1B2C3D-0000-4000-8000-00000000BEEF.png"},
	}, nil)

	snap := Build(cat, []models.RawStack{
		{Key: "0a1b2c3d-0000-4000-8000-00000000beef", Quantity: "2"},
		{Key: "ffffffff-0000-4000-8000-000000000000", Quantity: "1"},
	})

	require.Len(t, snap.Entries, 2)
	assert.Equal(t, "Stick", snap.Entries[0].Item.Name)
	assert.Equal(t, 10, snap.Entries[0].StackValue())
	assert.True(t, snap.Entries[1].Item.IsUnknown())
	assert.True(t, snap.Owns("Stick"))
}

func TestParseSaveFile_FeedsBuild(t *testing.T) {
	stacks, err := ParseSaveFile(strings.NewReader(`[{"name":"Gem","quantity":2},{"name":"Stick","quantity":"lots"}]`))
	require.NoError(t, err)

	snap := Build(testCatalog(), stacks)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, 1, snap.Skipped)
	assert.Equal(t, 20, snap.Entries[0].StackValue())
}
