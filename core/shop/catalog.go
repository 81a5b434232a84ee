package shop

import (
	"fmt"
	"time"
)

// Catalog is the fixed set of purchasable items. Each cosmetic category
// carries exactly one free default item, owned and equipped from first load.
type Catalog struct {
	items    map[string]Item
	order    []string
	defaults map[Category]string
}

func NewCatalog(items ...Item) (*Catalog, error) {
	c := &Catalog{
		items:    make(map[string]Item, len(items)),
		order:    make([]string, 0, len(items)),
		defaults: make(map[Category]string, 2),
	}
	for _, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("catalog item %q has no id", item.Name)
		}
		if _, ok := c.items[item.ID]; ok {
			return nil, fmt.Errorf("duplicate catalog item id %q", item.ID)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("catalog item %q has a negative price", item.ID)
		}
		if item.Price == 0 && item.Category.Cosmetic() {
			if _, ok := c.defaults[item.Category]; ok {
				return nil, fmt.Errorf("category %q has more than one free default", item.Category)
			}
			c.defaults[item.Category] = item.ID
		}
		c.items[item.ID] = item
		c.order = append(c.order, item.ID)
	}
	for _, cat := range []Category{CategoryCursor, CategoryTheme} {
		if _, ok := c.defaults[cat]; !ok {
			return nil, fmt.Errorf("category %q has no free default item", cat)
		}
	}
	return c, nil
}

func (c *Catalog) Item(id string) (Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Items returns the catalog in its declaration order.
func (c *Catalog) Items() []Item {
	items := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, c.items[id])
	}
	return items
}

// Defaults maps each cosmetic category to its free default item id.
func (c *Catalog) Defaults() map[Category]string {
	defaults := make(map[Category]string, len(c.defaults))
	for cat, id := range c.defaults {
		defaults[cat] = id
	}
	return defaults
}

// DefaultCatalog is the demo shop inventory.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(
		Item{
			ID:          "cursor-default",
			Name:        "Standard Cursor",
			Description: "The trusty default pointer.",
			Category:    CategoryCursor,
		},
		Item{
			ID:          "cursor-cyber",
			Name:        "Cyber Cursor",
			Description: "A glowing circuit-board pointer.",
			Category:    CategoryCursor,
			Price:       250,
		},
		Item{
			ID:          "cursor-neon",
			Name:        "Neon Pulse Cursor",
			Description: "Leaves a neon trail as you move.",
			Category:    CategoryCursor,
			Price:       400,
		},
		Item{
			ID:          "theme-default",
			Name:        "Light Theme",
			Description: "Clean and bright, easy on projectors.",
			Category:    CategoryTheme,
		},
		Item{
			ID:          "theme-dark-ops",
			Name:        "Dark Ops Theme",
			Description: "Low-light palette for late-night study.",
			Category:    CategoryTheme,
			Price:       350,
		},
		Item{
			ID:          "theme-matrix",
			Name:        "Matrix Theme",
			Description: "Falling glyphs on every dashboard.",
			Category:    CategoryTheme,
			Price:       600,
		},
		Item{
			ID:           "booster-small",
			Name:         "XP Booster +25%",
			Description:  "Boosts all XP earned for one hour.",
			Category:     CategoryBooster,
			Price:        150,
			BoostPercent: 25,
			Duration:     time.Hour,
		},
		Item{
			ID:           "booster-large",
			Name:         "XP Booster +50%",
			Description:  "Boosts all XP earned for a full day.",
			Category:     CategoryBooster,
			Price:        400,
			BoostPercent: 50,
			Duration:     24 * time.Hour,
		},
		Item{
			ID:          "premium-mentor",
			Name:        "AI Mentor Unlock",
			Description: "Unlocks the premium study mentor.",
			Category:    CategoryPremium,
			Price:       1200,
		},
		Item{
			ID:          "premium-cert-frame",
			Name:        "Certificate Frame",
			Description: "A gilded frame for completion certificates.",
			Category:    CategoryPremium,
			Price:       800,
		},
	)
	if err != nil {
		panic(err) // the demo catalog is fixed; a bad entry is a programming error
	}
	return catalog
}
