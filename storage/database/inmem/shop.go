package inmemdb

import (
	"context"

	"github.com/DustinMarino133/cyberskill/core/shop"
)

type walletRepository struct {
	db *walletTable
}

var _ shop.Repository = (*walletRepository)(nil)

func NewWalletRepository(db *DB) *walletRepository {
	return &walletRepository{db: db.wallet}
}

func (repo *walletRepository) GetWallet(ctx context.Context, userID string) (shop.Wallet, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	wallet, ok := repo.db.table[userID]
	if !ok {
		return shop.Wallet{}, shop.ErrWalletNotFound
	}
	return copyWallet(*wallet), nil
}

func (repo *walletRepository) SaveWallet(ctx context.Context, wallet shop.Wallet) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	cp := copyWallet(wallet)
	repo.db.table[wallet.UserID] = &cp
	return nil
}

// copyWallet detaches the stored record from the caller's slices and maps.
func copyWallet(wallet shop.Wallet) shop.Wallet {
	cp := wallet
	cp.Owned = append([]string(nil), wallet.Owned...)
	cp.Equipped = make(map[shop.Category]string, len(wallet.Equipped))
	for cat, id := range wallet.Equipped {
		cp.Equipped[cat] = id
	}
	if wallet.Booster != nil {
		booster := *wallet.Booster
		cp.Booster = &booster
	}
	return cp
}
