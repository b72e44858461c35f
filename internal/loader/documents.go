package loader

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/shard-legends/codex-service/internal/models"
)

type format int

const (
	formatJSON format = iota
	formatYAML
)

// rawItem is the feed shape of an item before validation
type rawItem struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Rarity      string   `json:"rarity" yaml:"rarity"`
	Type        string   `json:"type" yaml:"type"`
	Value       *float64 `json:"value" yaml:"value"`
	Description string   `json:"description" yaml:"description"`
	Sources     []string `json:"sources" yaml:"sources"`
	Image       string   `json:"image" yaml:"image"`
}

// rawRecipe is the feed shape of a recipe before validation
type rawRecipe struct {
	Result      string   `json:"result" yaml:"result"`
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
	Tools       []string `json:"tools" yaml:"tools"`
	Type        string   `json:"type" yaml:"type"`
}

type itemsDocument struct {
	Items   []rawItem   `json:"items" yaml:"items"`
	Recipes []rawRecipe `json:"recipes" yaml:"recipes"`
}

func unmarshal(data []byte, f format, v interface{}) error {
	if f == formatYAML {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

// decodeItems decodes the items document and drops entries without a name or result.
// The second return value is the number of dropped entries.
func decodeItems(data []byte, f format) ([]models.Item, []models.Recipe, int, error) {
	var doc itemsDocument
	if err := unmarshal(data, f, &doc); err != nil {
		return nil, nil, 0, errors.Wrap(err, "failed to decode items document")
	}

	skipped := 0
	items := make([]models.Item, 0, len(doc.Items))
	for _, raw := range doc.Items {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			skipped++
			continue
		}
		items = append(items, models.Item{
			ID:          raw.ID,
			Name:        name,
			Rarity:      models.ParseRarity(raw.Rarity),
			Type:        strings.TrimSpace(raw.Type),
			Value:       itemValue(raw.Value),
			Description: raw.Description,
			Sources:     raw.Sources,
			Image:       strings.TrimSpace(raw.Image),
		})
	}

	recipes := make([]models.Recipe, 0, len(doc.Recipes))
	for _, raw := range doc.Recipes {
		result := strings.TrimSpace(raw.Result)
		if result == "" {
			skipped++
			continue
		}
		recipes = append(recipes, models.Recipe{
			Result:      result,
			Ingredients: nonEmpty(raw.Ingredients),
			Tools:       nonEmpty(raw.Tools),
			Type:        raw.Type,
		})
	}

	return items, recipes, skipped, nil
}

// itemValue maps an absent or negative value to 0 and drops any fraction
func itemValue(v *float64) int {
	if v == nil || *v < 0 {
		return 0
	}
	return int(*v)
}

func nonEmpty(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) != "" {
			out = append(out, n)
		}
	}
	return out
}

// decodeList decodes a document that is either a bare list or an object holding
// the list under key
func decodeList[T any](data []byte, f format, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var list []T
	if err := unmarshal(trimmed, f, &list); err == nil {
		return list, nil
	}

	var wrapped map[string][]T
	if err := unmarshal(trimmed, f, &wrapped); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s document", key)
	}
	return wrapped[key], nil
}

func decodeMarket(data []byte, f format) ([]models.MarketListing, int, error) {
	list, err := decodeList[models.MarketListing](data, f, models.DocumentMarket)
	if err != nil {
		return nil, 0, err
	}
	return keepNamed(list, func(m models.MarketListing) string { return m.Name })
}

func decodeWiki(data []byte, f format) ([]models.WikiEntry, int, error) {
	list, err := decodeList[models.WikiEntry](data, f, models.DocumentWiki)
	if err != nil {
		return nil, 0, err
	}
	return keepNamed(list, func(w models.WikiEntry) string { return w.Name })
}

func decodeSources(data []byte, f format) ([]models.Source, int, error) {
	list, err := decodeList[models.Source](data, f, models.DocumentSources)
	if err != nil {
		return nil, 0, err
	}
	return keepNamed(list, func(s models.Source) string { return s.Name })
}

func decodeQuests(data []byte, f format) ([]models.Quest, int, error) {
	list, err := decodeList[models.Quest](data, f, models.DocumentQuests)
	if err != nil {
		return nil, 0, err
	}
	return keepNamed(list, func(q models.Quest) string { return q.Name })
}

func keepNamed[T any](list []T, name func(T) string) ([]T, int, error) {
	out := make([]T, 0, len(list))
	skipped := 0
	for _, v := range list {
		if strings.TrimSpace(name(v)) == "" {
			skipped++
			continue
		}
		out = append(out, v)
	}
	return out, skipped, nil
}
