package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/grabr/internal/model"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store implements the store.Store interface using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't handle multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	migrator := NewMigrator(db)
	if err := migrator.MigrateUp(); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks if the database is accessible.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// SaveClone records a successful acquisition.
func (s *Store) SaveClone(rec *model.CloneRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.UID == "" {
		rec.UID = uuid.New().String()
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO clones (uid, reference, url, path, branch, transport, fallback, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.UID, rec.Reference, rec.URL, rec.Path, rec.Branch, rec.Transport,
		boolToInt(rec.Fallback), rec.CreatedAt,
	)

	return err
}

// ListClones returns all recorded acquisitions, newest first.
func (s *Store) ListClones() ([]model.CloneRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT uid, reference, url, path, branch, transport, fallback, created_at
		 FROM clones ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.CloneRecord

	for rows.Next() {
		var (
			rec      model.CloneRecord
			fallback int
		)

		if err := rows.Scan(
			&rec.UID, &rec.Reference, &rec.URL, &rec.Path, &rec.Branch,
			&rec.Transport, &fallback, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}

		rec.Fallback = fallback == 1
		records = append(records, rec)
	}

	return records, rows.Err()
}

// SaveAccount inserts or replaces a secure-shell account.
func (s *Store) SaveAccount(acc *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO accounts (label, host, alias, identity_file, comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		acc.Label, acc.Host, acc.Alias, acc.IdentityFile, acc.Comment, acc.CreatedAt,
	)

	return err
}

// GetAccount returns the account with the given label, or nil when absent.
func (s *Store) GetAccount(label string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT label, host, alias, identity_file, comment, created_at
		 FROM accounts WHERE label = ?`, label,
	)

	var acc model.Account

	err := row.Scan(&acc.Label, &acc.Host, &acc.Alias, &acc.IdentityFile, &acc.Comment, &acc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &acc, nil
}

// ListAccounts returns all provisioned accounts ordered by label.
func (s *Store) ListAccounts() ([]model.Account, error) {
	return s.queryAccounts(
		`SELECT label, host, alias, identity_file, comment, created_at
		 FROM accounts ORDER BY label`,
	)
}

// AccountsForHost returns the accounts provisioned for one hosting provider.
func (s *Store) AccountsForHost(host string) ([]model.Account, error) {
	return s.queryAccounts(
		`SELECT label, host, alias, identity_file, comment, created_at
		 FROM accounts WHERE host = ? ORDER BY label`, host,
	)
}

func (s *Store) queryAccounts(query string, args ...any) ([]model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account

	for rows.Next() {
		var acc model.Account

		if err := rows.Scan(&acc.Label, &acc.Host, &acc.Alias, &acc.IdentityFile, &acc.Comment, &acc.CreatedAt); err != nil {
			return nil, err
		}

		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}

// DeleteAccount removes the account with the given label.
func (s *Store) DeleteAccount(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM accounts WHERE label = ?`, label)

	return err
}

// GetConfig returns the stored configuration, or defaults when none exists.
func (s *Store) GetConfig() (*model.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string

	err := s.db.QueryRow(`SELECT data FROM config WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		cfg := model.DefaultConfig()

		return &cfg, nil
	}

	if err != nil {
		return nil, err
	}

	var cfg model.Config
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, fmt.Errorf("decoding stored config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig persists the configuration.
func (s *Store) SaveConfig(cfg *model.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO config (id, data) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data`,
		string(data),
	)

	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
