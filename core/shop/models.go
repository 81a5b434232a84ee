package shop

import (
	"sort"
	"time"
)

type Category string

const (
	CategoryCursor  Category = "cursor"
	CategoryTheme   Category = "theme"
	CategoryBooster Category = "booster"
	CategoryPremium Category = "premium"
)

// Cosmetic categories hold at most one equipped item at a time.
func (c Category) Cosmetic() bool {
	return c == CategoryCursor || c == CategoryTheme
}

type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Price       int      `json:"price"`

	// booster items only
	BoostPercent int           `json:"boost_percent,omitempty"`
	Duration     time.Duration `json:"duration,omitempty"`
}

// Multiplier is the XP multiplier a booster item grants while live,
// e.g. a +25% boost yields 1.25.
func (i Item) Multiplier() float64 {
	return 1 + float64(i.BoostPercent)/100
}

// ActiveBooster is the single live XP booster. Equipping a new booster
// overwrites it; boosters never stack.
type ActiveBooster struct {
	ItemID     string    `json:"item_id"`
	Multiplier float64   `json:"multiplier"`
	ExpiresAt  time.Time `json:"expires_at"` // UTC
}

func (b ActiveBooster) Expired(now time.Time) bool {
	return !now.Before(b.ExpiresAt)
}

// Wallet is a user's whole economy state, persisted as one document so a
// purchase can never tear between the balance and the owned set.
type Wallet struct {
	UserID string `json:"user_id"`
	Coins  int    `json:"coins"`
	// Owned grows monotonically; there are no refunds.
	Owned    []string            `json:"owned"`
	Equipped map[Category]string `json:"equipped"`
	Booster  *ActiveBooster      `json:"booster,omitempty"`

	UpdatedAt time.Time `json:"updated_at"` // UTC
}

func (w *Wallet) Owns(itemID string) bool {
	for _, id := range w.Owned {
		if id == itemID {
			return true
		}
	}
	return false
}

func (w *Wallet) addOwned(itemID string) {
	if w.Owns(itemID) {
		return
	}
	w.Owned = append(w.Owned, itemID)
	sort.Strings(w.Owned)
}
