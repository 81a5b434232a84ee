package sqlxrepos

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/DustinMarino133/cyberskill/core/shop"
)

type dbWallet struct {
	UserID    string         `db:"user_id"`
	Coins     int            `db:"coins"`
	Owned     pq.StringArray `db:"owned"`
	Equipped  []byte         `db:"equipped"`
	Booster   []byte         `db:"booster"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (w dbWallet) toCore() (shop.Wallet, error) {
	wallet := shop.Wallet{
		UserID:    w.UserID,
		Coins:     w.Coins,
		Owned:     w.Owned,
		UpdatedAt: w.UpdatedAt,
	}
	if len(w.Equipped) > 0 {
		if err := json.Unmarshal(w.Equipped, &wallet.Equipped); err != nil {
			return shop.Wallet{}, errors.Wrap(err, "decoding equipped set")
		}
	}
	if wallet.Equipped == nil {
		wallet.Equipped = make(map[shop.Category]string)
	}
	if len(w.Booster) > 0 {
		var booster shop.ActiveBooster
		if err := json.Unmarshal(w.Booster, &booster); err != nil {
			return shop.Wallet{}, errors.Wrap(err, "decoding booster")
		}
		wallet.Booster = &booster
	}
	return wallet, nil
}

func fromCoreWallet(wallet shop.Wallet) (dbWallet, error) {
	equipped, err := json.Marshal(wallet.Equipped)
	if err != nil {
		return dbWallet{}, errors.Wrap(err, "encoding equipped set")
	}

	row := dbWallet{
		UserID:    wallet.UserID,
		Coins:     wallet.Coins,
		Owned:     pq.StringArray(wallet.Owned),
		Equipped:  equipped,
		UpdatedAt: wallet.UpdatedAt,
	}
	if wallet.Booster != nil {
		if row.Booster, err = json.Marshal(wallet.Booster); err != nil {
			return dbWallet{}, errors.Wrap(err, "encoding booster")
		}
	}
	return row, nil
}

type walletRepository struct {
	db *sqlx.DB
}

var _ shop.Repository = (*walletRepository)(nil)

func NewWalletRepository(db *sqlx.DB) *walletRepository {
	return &walletRepository{db: db}
}

func (repo *walletRepository) GetWallet(ctx context.Context, userID string) (shop.Wallet, error) {
	var row dbWallet
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM wallet WHERE user_id = $1`, userID); err != nil {
		return shop.Wallet{}, trapNoRows(err, shop.ErrWalletNotFound, "selecting wallet")
	}
	return row.toCore()
}

// SaveWallet writes the wallet as a single row so balance, ownership and
// equipped state can never be persisted out of step with each other.
func (repo *walletRepository) SaveWallet(ctx context.Context, wallet shop.Wallet) error {
	row, err := fromCoreWallet(wallet)
	if err != nil {
		return err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO wallet (user_id, coins, owned, equipped, booster, updated_at)
		VALUES (:user_id, :coins, :owned, :equipped, :booster, :updated_at)
		ON CONFLICT (user_id) DO UPDATE
		SET coins      = EXCLUDED.coins,
		    owned      = EXCLUDED.owned,
		    equipped   = EXCLUDED.equipped,
		    booster    = EXCLUDED.booster,
		    updated_at = EXCLUDED.updated_at`,
		row,
	)
	return errors.Wrap(err, "upserting wallet")
}
