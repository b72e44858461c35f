package models

import "time"

// MarketListing is a marketplace price point for an item
type MarketListing struct {
	Name      string    `json:"name" yaml:"name"`
	BuyPrice  int       `json:"buy_price" yaml:"buy_price"`
	SellPrice int       `json:"sell_price" yaml:"sell_price"`
	Volume    int       `json:"volume" yaml:"volume"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// WikiEntry carries wiki metadata for an item
type WikiEntry struct {
	Name    string   `json:"name" yaml:"name"`
	Summary string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	URL     string   `json:"url,omitempty" yaml:"url,omitempty"`
	Image   string   `json:"image,omitempty" yaml:"image,omitempty"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Source is a place or activity that yields items
type Source struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Items       []string `json:"items,omitempty" yaml:"items,omitempty"`
}

// Quest describes a quest with its item requirements and rewards
type Quest struct {
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Giver        string   `json:"giver,omitempty" yaml:"giver,omitempty"`
	Requirements []string `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Rewards      []string `json:"rewards,omitempty" yaml:"rewards,omitempty"`
}

// Dataset is one fully loaded, validated set of documents
type Dataset struct {
	Items   []Item          `json:"items"`
	Recipes []Recipe        `json:"recipes"`
	Market  []MarketListing `json:"market"`
	Wiki    []WikiEntry     `json:"wiki"`
	Sources []Source        `json:"sources"`
	Quests  []Quest         `json:"quests"`

	// Skipped counts malformed entries dropped at the load boundary, per document
	Skipped  map[string]int    `json:"skipped,omitempty"`
	Origins  map[string]string `json:"origins,omitempty"`
	LoadedAt time.Time         `json:"loaded_at"`
}

// Document names
const (
	DocumentItems   = "items"
	DocumentMarket  = "market"
	DocumentWiki    = "wiki"
	DocumentSources = "sources"
	DocumentQuests  = "quests"
)

// Document origins
const (
	OriginRemote = "remote"
	OriginLocal  = "local"
	OriginCache  = "cache"
	OriginNone   = "none"
)
