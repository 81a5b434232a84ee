package shop

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/DustinMarino133/cyberskill/core"
)

var (
	// errors
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrUnknownItem       = errors.New("unknown shop item")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrInsufficientFunds = errors.New("not enough coins")
	ErrItemNotOwned      = errors.New("item not owned")
	ErrNotEquippable     = errors.New("item cannot be equipped")
	ErrInvalidCredit     = errors.New("credit amount must be positive")
)

type (
	// Repository persists one Wallet document per user. SaveWallet replaces
	// the whole document in a single write.
	Repository interface {
		GetWallet(ctx context.Context, userID string) (Wallet, error)
		SaveWallet(ctx context.Context, wallet Wallet) error
	}

	Service struct {
		repo            Repository
		catalog         *Catalog
		clock           core.Clock
		startingBalance int
	}
)

func NewService(repo Repository, catalog *Catalog, clock core.Clock, startingBalance int) *Service {
	return &Service{
		repo:            repo,
		catalog:         catalog,
		clock:           clock,
		startingBalance: startingBalance,
	}
}

// Items returns the full shop catalog.
func (svc *Service) Items() []Item {
	return svc.catalog.Items()
}

// Wallet loads the user's wallet, seeding a fresh one on first use. An
// expired booster is cleared here; expiry is only ever checked on read.
func (svc *Service) Wallet(ctx context.Context, userID string) (Wallet, error) {
	wallet, err := svc.repo.GetWallet(ctx, userID)
	if err != nil {
		if err != ErrWalletNotFound {
			return Wallet{}, pkgerrors.Wrap(err, "loading wallet")
		}
		wallet = svc.defaultWallet(userID)
		if err = svc.repo.SaveWallet(ctx, wallet); err != nil {
			return Wallet{}, pkgerrors.Wrap(err, "seeding wallet")
		}
		return wallet, nil
	}

	if wallet.Booster != nil && wallet.Booster.Expired(svc.clock.Now()) {
		wallet.Booster = nil
		wallet.UpdatedAt = svc.clock.Now()
		if err = svc.repo.SaveWallet(ctx, wallet); err != nil {
			return Wallet{}, pkgerrors.Wrap(err, "clearing expired booster")
		}
	}
	return wallet, nil
}

func (svc *Service) defaultWallet(userID string) Wallet {
	wallet := Wallet{
		UserID:    userID,
		Coins:     svc.startingBalance,
		Equipped:  svc.catalog.Defaults(),
		UpdatedAt: svc.clock.Now(),
	}
	for _, id := range wallet.Equipped {
		wallet.addOwned(id)
	}
	return wallet
}

// Purchase deducts the item's price and adds it to the owned set. The owned
// guard runs before the funds guard, so re-buying an owned item never
// deducts twice.
func (svc *Service) Purchase(ctx context.Context, userID, itemID string) (Wallet, error) {
	item, ok := svc.catalog.Item(itemID)
	if !ok {
		return Wallet{}, ErrUnknownItem
	}

	wallet, err := svc.Wallet(ctx, userID)
	if err != nil {
		return Wallet{}, err
	}
	if wallet.Owns(item.ID) {
		return wallet, ErrAlreadyOwned
	}
	if wallet.Coins < item.Price {
		return wallet, ErrInsufficientFunds
	}

	wallet.Coins -= item.Price
	wallet.addOwned(item.ID)
	wallet.UpdatedAt = svc.clock.Now()
	if err = svc.repo.SaveWallet(ctx, wallet); err != nil {
		return Wallet{}, pkgerrors.Wrap(err, "saving wallet")
	}
	return wallet, nil
}

// Equip activates an owned item. Cosmetic categories keep at most one
// equipped item each; equipping evicts the previous selection. A booster
// becomes the single ActiveBooster, overwriting any live one.
func (svc *Service) Equip(ctx context.Context, userID, itemID string) (Wallet, error) {
	item, ok := svc.catalog.Item(itemID)
	if !ok {
		return Wallet{}, ErrUnknownItem
	}

	wallet, err := svc.Wallet(ctx, userID)
	if err != nil {
		return Wallet{}, err
	}
	if !wallet.Owns(item.ID) {
		return wallet, ErrItemNotOwned
	}

	switch {
	case item.Category.Cosmetic():
		wallet.Equipped[item.Category] = item.ID
	case item.Category == CategoryBooster:
		wallet.Booster = &ActiveBooster{
			ItemID:     item.ID,
			Multiplier: item.Multiplier(),
			ExpiresAt:  svc.clock.Now().Add(item.Duration),
		}
	default:
		return wallet, ErrNotEquippable
	}

	wallet.UpdatedAt = svc.clock.Now()
	if err = svc.repo.SaveWallet(ctx, wallet); err != nil {
		return Wallet{}, pkgerrors.Wrap(err, "saving wallet")
	}
	return wallet, nil
}

// ResetToDefaults restores the default cosmetics and clears any live
// booster. Owned items and the coin balance are untouched.
func (svc *Service) ResetToDefaults(ctx context.Context, userID string) (Wallet, error) {
	wallet, err := svc.Wallet(ctx, userID)
	if err != nil {
		return Wallet{}, err
	}

	wallet.Equipped = svc.catalog.Defaults()
	wallet.Booster = nil
	wallet.UpdatedAt = svc.clock.Now()
	if err = svc.repo.SaveWallet(ctx, wallet); err != nil {
		return Wallet{}, pkgerrors.Wrap(err, "saving wallet")
	}
	return wallet, nil
}

// CreditCoins adds mission/reward income to the balance.
func (svc *Service) CreditCoins(ctx context.Context, userID string, amount int) (Wallet, error) {
	if amount <= 0 {
		return Wallet{}, ErrInvalidCredit
	}

	wallet, err := svc.Wallet(ctx, userID)
	if err != nil {
		return Wallet{}, err
	}
	wallet.Coins += amount
	wallet.UpdatedAt = svc.clock.Now()
	if err = svc.repo.SaveWallet(ctx, wallet); err != nil {
		return Wallet{}, pkgerrors.Wrap(err, "saving wallet")
	}
	return wallet, nil
}

// ActiveMultiplier is the XP multiplier currently in force for the user:
// 1.0 without a live booster.
func (svc *Service) ActiveMultiplier(ctx context.Context, userID string) (float64, error) {
	wallet, err := svc.Wallet(ctx, userID)
	if err != nil {
		return 0, err
	}
	if wallet.Booster == nil {
		return 1.0, nil
	}
	return wallet.Booster.Multiplier, nil
}
