// Package inventory turns raw owned stacks into entries resolved against a catalog.
package inventory

import (
	"strconv"
	"strings"

	"github.com/shard-legends/codex-service/internal/catalog"
	"github.com/shard-legends/codex-service/internal/models"
)

// MaxQuantity bounds a single stack so value totals stay within int range
const MaxQuantity = 1_000_000_000

// Snapshot is a point-in-time list of owned stacks
type Snapshot struct {
	Entries []models.InventoryEntry `json:"entries"`

	// Skipped counts raw stacks dropped for an empty key or an unusable quantity
	Skipped int `json:"skipped"`
}

// Build resolves raw stacks against cat. Input order is kept and repeated keys stay
// as separate entries. A key is tried as a name, then as an image UUID, then as a
// numeric id; anything else becomes an entry for the unknown item.
func Build(cat *catalog.Catalog, stacks []models.RawStack) Snapshot {
	snap := Snapshot{Entries: make([]models.InventoryEntry, 0, len(stacks))}

	for _, raw := range stacks {
		key := strings.TrimSpace(raw.Key)
		if key == "" {
			snap.Skipped++
			continue
		}
		qty, ok := ParseQuantity(raw.Quantity)
		if !ok {
			snap.Skipped++
			continue
		}

		snap.Entries = append(snap.Entries, models.InventoryEntry{
			Item:      resolve(cat, key),
			UniqueKey: key,
			Quantity:  qty,
		})
	}

	return snap
}

func resolve(cat *catalog.Catalog, key string) models.Item {
	if cat == nil {
		return models.UnknownItem()
	}
	if item, ok := cat.FindItemByName(key); ok {
		return item
	}
	if item, ok := cat.FindItemByImage(key); ok {
		return item
	}
	if id, err := strconv.Atoi(key); err == nil {
		if item, ok := cat.FindItemByID(id); ok {
			return item
		}
	}
	return models.UnknownItem()
}

// ParseQuantity parses stack quantity text such as "12", "x12" or "×12".
// Anything that is not a whole number between one and MaxQuantity is rejected.
func ParseQuantity(s string) (int, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "x")
	s = strings.TrimPrefix(s, "X")
	s = strings.TrimPrefix(s, "×")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > MaxQuantity {
		return 0, false
	}
	return n, true
}

// Len returns the number of entries
func (s Snapshot) Len() int {
	return len(s.Entries)
}

// IsEmpty reports whether the snapshot holds no entries
func (s Snapshot) IsEmpty() bool {
	return len(s.Entries) == 0
}

// OwnedNames returns the distinct normalized names held in the snapshot. A known
// entry contributes its catalog name, an unknown one its stack key.
func (s Snapshot) OwnedNames() map[string]struct{} {
	names := make(map[string]struct{}, len(s.Entries))
	for _, e := range s.Entries {
		names[ownedName(e)] = struct{}{}
	}
	return names
}

// Owns reports whether name is held in any stack
func (s Snapshot) Owns(name string) bool {
	want := catalog.Normalize(name)
	for _, e := range s.Entries {
		if ownedName(e) == want {
			return true
		}
	}
	return false
}

// QuantityOf sums quantities over all stacks of name
func (s Snapshot) QuantityOf(name string) int {
	want := catalog.Normalize(name)
	total := 0
	for _, e := range s.Entries {
		if ownedName(e) == want {
			total += e.Quantity
		}
	}
	return total
}

func ownedName(e models.InventoryEntry) string {
	if e.Known() {
		return catalog.Normalize(e.Item.Name)
	}
	return catalog.Normalize(e.UniqueKey)
}
