package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/shard-legends/codex-service/internal/models"
)

// Search returns items matching query: name prefix matches first, then other name
// matches, then description matches. Within a tier load order is kept.
// A non-positive limit means no limit.
func (c *Catalog) Search(query string, limit int) []models.Item {
	q := Normalize(query)
	if q == "" {
		return nil
	}

	var prefix, contains, described []models.Item
	for _, item := range c.items {
		name := Normalize(item.Name)
		switch {
		case strings.HasPrefix(name, q):
			prefix = append(prefix, item)
		case strings.Contains(name, q):
			contains = append(contains, item)
		case strings.Contains(Normalize(item.Description), q):
			described = append(described, item)
		}
	}

	out := make([]models.Item, 0, len(prefix)+len(contains)+len(described))
	out = append(out, prefix...)
	out = append(out, contains...)
	out = append(out, described...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Suggest returns item names close to query by edit distance, nearest first.
// Used for "did you mean" when a lookup misses.
func (c *Catalog) Suggest(query string, limit int) []string {
	q := Normalize(query)
	if q == "" {
		return nil
	}

	maxDistance := len([]rune(q)) / 3
	if maxDistance < 2 {
		maxDistance = 2
	}

	type candidate struct {
		name     string
		distance int
	}
	var candidates []candidate
	for _, item := range c.items {
		d := levenshtein.ComputeDistance(q, Normalize(item.Name))
		if d <= maxDistance {
			candidates = append(candidates, candidate{name: item.Name, distance: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].name < candidates[j].name
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		out = append(out, cand.name)
	}
	return out
}
