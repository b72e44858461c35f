package models

// RawStack is one owned stack as reported by an external producer (page scrape, save file).
// Quantity is kept as text; the snapshot builder decides whether it is usable.
type RawStack struct {
	Key      string `json:"key"`
	Quantity string `json:"quantity"`
}

// InventoryEntry is an owned stack resolved against the catalog
type InventoryEntry struct {
	Item      Item   `json:"item"`
	UniqueKey string `json:"unique_key"`
	Quantity  int    `json:"quantity"`
}

// Known reports whether the entry resolved to a catalog item
func (e InventoryEntry) Known() bool {
	return !e.Item.IsUnknown()
}

// StackValue returns value multiplied by quantity
func (e InventoryEntry) StackValue() int {
	return e.Item.Value * e.Quantity
}

// CraftabilityResult is a craftable recipe annotated with whether its result is new to the owner
type CraftabilityResult struct {
	Recipe Recipe `json:"recipe"`
	IsNew  bool   `json:"is_new"`
}

// Appraisal aggregates a snapshot
type Appraisal struct {
	UniqueStacks   int `json:"unique_stacks"`
	TotalItemCount int `json:"total_item_count"`
	TotalValue     int `json:"total_value"`
	UnknownCount   int `json:"unknown_count"`
}
