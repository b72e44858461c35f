package models

import "strings"

// Rarity is the rarity tier of an item
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityLegendary Rarity = "LEGENDARY"
	RarityMythic    Rarity = "MYTHIC"
	RarityUnknown   Rarity = "UNKNOWN"
)

// UnknownRarityRank sorts unknown rarity after every known tier
const UnknownRarityRank = 999

var rarityRanks = map[Rarity]int{
	RarityCommon:    0,
	RarityUncommon:  1,
	RarityRare:      2,
	RarityLegendary: 3,
	RarityMythic:    4,
}

// ParseRarity converts a feed value into a Rarity. Unrecognised values map to RarityUnknown.
func ParseRarity(s string) Rarity {
	r := Rarity(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := rarityRanks[r]; ok {
		return r
	}
	return RarityUnknown
}

// Rank returns the ordering rank of the rarity (COMMON=0 .. MYTHIC=4, UNKNOWN=999)
func (r Rarity) Rank() int {
	if rank, ok := rarityRanks[r]; ok {
		return rank
	}
	return UnknownRarityRank
}

// Rarities returns the known tiers in rank order
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityLegendary, RarityMythic}
}

// Item represents a catalog item definition
type Item struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Rarity      Rarity   `json:"rarity"`
	Type        string   `json:"type"`
	Value       int      `json:"value"`
	Description string   `json:"description,omitempty"`
	Sources     []string `json:"sources,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// Common item type tags
const (
	ItemTypeMaterial  = "Material"
	ItemTypeTool      = "Tool"
	ItemTypeAccessory = "Accessory"
	ItemTypeCharacter = "Character"
	ItemTypeUnknown   = "UNKNOWN"
)

// UnknownItemName is the name carried by the unknown-item sentinel
const UnknownItemName = "Unknown"

// UnknownItem returns the sentinel used for owned stacks that do not resolve to a catalog item
func UnknownItem() Item {
	return Item{
		ID:     0,
		Name:   UnknownItemName,
		Rarity: RarityUnknown,
		Type:   ItemTypeUnknown,
		Value:  0,
	}
}

// IsUnknown reports whether the item is the unknown-item sentinel
func (i Item) IsUnknown() bool {
	return i.ID == 0 && i.Name == UnknownItemName && i.Rarity == RarityUnknown
}
