package models

// PageKind identifies what a free-form page query resolved to
type PageKind int

const (
	PageKindItem PageKind = iota + 1
	PageKindSource
	PageKindQuest
	PageKindCategory
	PageKindCollection
)

var pageKindNames = map[PageKind]string{
	PageKindItem:       "item",
	PageKindSource:     "source",
	PageKindQuest:      "quest",
	PageKindCategory:   "category",
	PageKindCollection: "collection",
}

// String returns the wire name of the kind
func (k PageKind) String() string {
	if name, ok := pageKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler
func (k PageKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// SourcePage lists what a source yields
type SourcePage struct {
	Source Source `json:"source"`
	Items  []Item `json:"items"`
	// Unresolved holds item names listed by the source that are not in the catalog
	Unresolved []string `json:"unresolved,omitempty"`
}

// QuestPage resolves quest requirements and rewards to items
type QuestPage struct {
	Quest        Quest  `json:"quest"`
	Requirements []Item `json:"requirements"`
	Rewards      []Item `json:"rewards"`
}

// CategoryPage lists the items of one type
type CategoryPage struct {
	Type  string `json:"type"`
	Items []Item `json:"items"`
}

// CollectionPage lists the recipes of one group
type CollectionPage struct {
	Group    string       `json:"group"`
	Subgroup string       `json:"subgroup,omitempty"`
	Recipes  []RecipeView `json:"recipes"`
}

// Page is a resolved page query; exactly one payload matching Kind is set
type Page struct {
	Kind       PageKind        `json:"kind"`
	Key        string          `json:"key"`
	Item       *ItemPage       `json:"item,omitempty"`
	Source     *SourcePage     `json:"source,omitempty"`
	Quest      *QuestPage      `json:"quest,omitempty"`
	Category   *CategoryPage   `json:"category,omitempty"`
	Collection *CollectionPage `json:"collection,omitempty"`
}

// ItemFilter narrows and orders the item listing
type ItemFilter struct {
	Type   string
	Rarity string
	Sort   string
	Order  string
	Limit  int
	Offset int
}

// RecipeFilter narrows and orders the recipe listing
type RecipeFilter struct {
	Group    string
	Subgroup string
	Uses     string
	Sort     string
	Order    string
}
