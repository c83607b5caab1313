// Package store provides the storage abstraction layer for grabr.
//
// The [Store] interface abstracts all database operations; the backend is an
// embedded SQLite database. Use [GetDB] to obtain the singleton instance.
package store

import (
	"path/filepath"
	"sync"

	"github.com/inovacc/grabr/internal/application"
	"github.com/inovacc/grabr/internal/model"
	"github.com/inovacc/grabr/internal/store/sqlite"
)

// Store defines the database operations used by the app.
type Store interface {
	Ping() error
	Close() error

	// Clone history
	SaveClone(rec *model.CloneRecord) error
	ListClones() ([]model.CloneRecord, error)

	// Secure-shell accounts
	SaveAccount(acc *model.Account) error
	GetAccount(label string) (*model.Account, error)
	ListAccounts() ([]model.Account, error)
	AccountsForHost(host string) ([]model.Account, error)
	DeleteAccount(label string) error

	// Configuration
	GetConfig() (*model.Config, error)
	SaveConfig(cfg *model.Config) error
}

var (
	once sync.Once
	db   Store
	err  error
)

// GetDB returns the initialized database store. The error is sticky: every
// call after a failed open reports the same failure.
func GetDB() (Store, error) {
	once.Do(lazyInit)

	return db, err
}

func lazyInit() {
	dir, dirErr := application.GetApplicationDirectory()
	if dirErr != nil {
		err = dirErr

		return
	}

	db, err = sqlite.New(filepath.Join(dir, application.AppName+".db"))
}
