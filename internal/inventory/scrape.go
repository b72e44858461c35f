package inventory

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/shard-legends/codex-service/internal/catalog"
	"github.com/shard-legends/codex-service/internal/models"
)

// Selectors locate inventory slots inside a saved game page
type Selectors struct {
	// Slot matches one owned stack
	Slot string
	// Quantity matches the quantity label inside a slot
	Quantity string
	// NameAttr is the slot attribute holding the item name
	NameAttr string
}

// DefaultSelectors match the game's inventory grid
var DefaultSelectors = Selectors{
	Slot:     ".inventory-slot, [data-item-name]",
	Quantity: ".quantity, .amount, .count",
	NameAttr: "data-item-name",
}

// ParsePageHTML extracts raw stacks from an inventory page. The stack key is the
// name attribute when present, otherwise the UUID in the slot image URL, otherwise
// the image alt text. A slot without a quantity label holds a single item.
func ParsePageHTML(r io.Reader, sel Selectors) ([]models.RawStack, error) {
	if sel.Slot == "" {
		sel = DefaultSelectors
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse inventory page")
	}

	var stacks []models.RawStack
	doc.Find(sel.Slot).Each(func(_ int, slot *goquery.Selection) {
		key := slotKey(slot, sel.NameAttr)
		if key == "" {
			return
		}
		qty := "1"
		if sel.Quantity != "" {
			if text := strings.TrimSpace(slot.Find(sel.Quantity).First().Text()); text != "" {
				qty = text
			}
		}
		stacks = append(stacks, models.RawStack{Key: key, Quantity: qty})
	})

	return stacks, nil
}

func slotKey(slot *goquery.Selection, nameAttr string) string {
	if nameAttr != "" {
		if name, ok := slot.Attr(nameAttr); ok && strings.TrimSpace(name) != "" {
			return strings.TrimSpace(name)
		}
	}
	img := slot.Find("img").First()
	if img.Length() == 0 {
		return ""
	}
	if src, ok := img.Attr("src"); ok {
		if id := catalog.ImageKey(src); id != "" {
			return id
		}
	}
	if alt, ok := img.Attr("alt"); ok {
		return strings.TrimSpace(alt)
	}
	return ""
}
