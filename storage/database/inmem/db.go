package inmemdb

import (
	"sync"

	"github.com/DustinMarino133/cyberskill/core/course"
	"github.com/DustinMarino133/cyberskill/core/progress"
	"github.com/DustinMarino133/cyberskill/core/shop"
	"github.com/DustinMarino133/cyberskill/core/user"
)

type (
	DB struct {
		user       *userTable
		wallet     *walletTable
		enrollment *enrollmentTable
		progress   *progressTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	walletTable struct {
		sync.RWMutex
		table map[string]*shop.Wallet
	}

	enrollmentTable struct {
		sync.RWMutex
		table map[string][]course.Enrollment // by user ID
	}

	progressTable struct {
		sync.RWMutex
		table map[string]*progress.Progress
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		wallet:     &walletTable{table: make(map[string]*shop.Wallet)},
		enrollment: &enrollmentTable{table: make(map[string][]course.Enrollment)},
		progress:   &progressTable{table: make(map[string]*progress.Progress)},
	}
	return db, nil
}
