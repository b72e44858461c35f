package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FlexQuantity accepts a quantity written either as a JSON number or a JSON string
// and keeps its textual form. Whether it is a usable quantity is decided later.
type FlexQuantity string

// UnmarshalJSON implements json.Unmarshaler. Values other than numbers and strings
// keep their raw JSON text, which is never a usable quantity.
func (q *FlexQuantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = FlexQuantity(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*q = FlexQuantity(data)
		return nil
	}
	*q = FlexQuantity(n.String())
	return nil
}

// StackRequest is a single owned stack in an API request
type StackRequest struct {
	Key      string       `json:"key" validate:"max=256"`
	Quantity FlexQuantity `json:"quantity"`
}

// InventoryRequest carries an inventory snapshot to evaluate
type InventoryRequest struct {
	Stacks []StackRequest `json:"stacks" validate:"max=5000,dive"`
}

// RawStacks converts request stacks into builder input
func (r InventoryRequest) RawStacks() []RawStack {
	return toRawStacks(r.Stacks)
}

// SaveSnapshotRequest persists an inventory snapshot for later comparison
type SaveSnapshotRequest struct {
	Owner  string         `json:"owner" validate:"required,min=1,max=64"`
	Label  string         `json:"label" validate:"max=128"`
	Stacks []StackRequest `json:"stacks" validate:"required,min=1,max=5000,dive"`
}

// RawStacks converts request stacks into builder input
func (r SaveSnapshotRequest) RawStacks() []RawStack {
	return toRawStacks(r.Stacks)
}

func toRawStacks(stacks []StackRequest) []RawStack {
	out := make([]RawStack, 0, len(stacks))
	for _, s := range stacks {
		out = append(out, RawStack{Key: s.Key, Quantity: string(s.Quantity)})
	}
	return out
}

// SavedSnapshot is a persisted raw inventory
type SavedSnapshot struct {
	ID        uuid.UUID  `json:"id"`
	Owner     string     `json:"owner"`
	Label     string     `json:"label,omitempty"`
	Stacks    []RawStack `json:"stacks"`
	CreatedAt time.Time  `json:"created_at"`
}

// CategoryCount is an item type with the number of items carrying it
type CategoryCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// RecipeGroupSummary is a recipe group with its subgroups
type RecipeGroupSummary struct {
	Group     string   `json:"group"`
	Subgroups []string `json:"subgroups,omitempty"`
	Count     int      `json:"count"`
}

// RecipeView is a recipe with its parsed classification
type RecipeView struct {
	Recipe
	Group    string `json:"group,omitempty"`
	Subgroup string `json:"subgroup,omitempty"`
}

// ItemsResponse is returned by the item listing
type ItemsResponse struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
}

// ItemPage is everything known about one item
type ItemPage struct {
	Item       Item           `json:"item"`
	ProducedBy *Recipe        `json:"produced_by,omitempty"`
	UsedIn     []Recipe       `json:"used_in"`
	Market     *MarketListing `json:"market,omitempty"`
	Wiki       *WikiEntry     `json:"wiki,omitempty"`
}

// RecipesResponse is returned by the recipe listing
type RecipesResponse struct {
	Recipes []RecipeView `json:"recipes"`
	Total   int          `json:"total"`
}

// SearchResponse is returned by search
type SearchResponse struct {
	Query       string   `json:"query"`
	Items       []Item   `json:"items"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// CategoriesResponse lists item types and recipe groups
type CategoriesResponse struct {
	Types  []CategoryCount      `json:"types"`
	Groups []RecipeGroupSummary `json:"groups"`
}

// CraftableResponse is the result of a craftability check
type CraftableResponse struct {
	Results   []CraftabilityResult `json:"results"`
	Appraisal Appraisal            `json:"appraisal"`
	Skipped   int                  `json:"skipped"`
}

// AppraiseResponse lists resolved entries in the requested order
type AppraiseResponse struct {
	Entries   []InventoryEntry `json:"entries"`
	Appraisal Appraisal        `json:"appraisal"`
	Skipped   int              `json:"skipped"`
}

// ScrapeResponse carries stacks extracted from a page
type ScrapeResponse struct {
	Stacks []RawStack `json:"stacks"`
}

// SnapshotsResponse lists saved snapshots
type SnapshotsResponse struct {
	Snapshots []SavedSnapshot `json:"snapshots"`
}

// ReloadResponse reports a dataset reload
type ReloadResponse struct {
	Items    int               `json:"items"`
	Recipes  int               `json:"recipes"`
	Skipped  map[string]int    `json:"skipped,omitempty"`
	Origins  map[string]string `json:"origins,omitempty"`
	LoadedAt time.Time         `json:"loaded_at"`
}

// ErrorResponse is the common error body
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes
const (
	ErrorCodeValidation     = "validation_error"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeBadRequest     = "bad_request"
	ErrorCodeUnavailable    = "service_unavailable"
	ErrorCodeDatasetMissing = "dataset_not_loaded"
	ErrorCodeInternalError  = "internal_error"
)
