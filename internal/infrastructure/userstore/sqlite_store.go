// Package userstore persists user credentials and device permissions in a
// SQLite database.
package userstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/iotguard/iotguard/internal/domain"
	"github.com/iotguard/iotguard/internal/ports"
)

// masterDevices are the devices granted to the seeded master user.
var masterDevices = []string{"door1", "camera1", "speakers"}

// SQLiteStore is the file-backed user store. Device permissions are stored
// as a JSON array in a single column.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at path and seeds the
// master_user account with full device permissions when absent.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open users database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		pin TEXT NOT NULL,
		device_permissions TEXT NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	var exists string
	err = s.db.QueryRow("SELECT user_id FROM users WHERE user_id = ?", "master_user").Scan(&exists)
	if err == sql.ErrNoRows {
		return s.insert("master_user", "1234", masterDevices)
	}
	return err
}

// Validate reports whether the user/PIN pair matches a stored account.
func (s *SQLiteStore) Validate(userID, pin string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found string
	err := s.db.QueryRow("SELECT user_id FROM users WHERE user_id = ? AND pin = ?", userID, pin).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Permissions returns the devices the user may target. An unknown user has
// no permissions.
func (s *SQLiteStore) Permissions(userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	err := s.db.QueryRow("SELECT device_permissions FROM users WHERE user_id = ?", userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var perms []string
	if err := json.Unmarshal([]byte(raw), &perms); err != nil {
		return nil, fmt.Errorf("decode permissions for %s: %w", userID, err)
	}
	return perms, nil
}

// Add creates a new account. Adding an existing user ID fails.
func (s *SQLiteStore) Add(userID, pin string, permissions []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(userID, pin, permissions)
}

func (s *SQLiteStore) insert(userID, pin string, permissions []string) error {
	raw, err := json.Marshal(permissions)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("INSERT INTO users (user_id, pin, device_permissions) VALUES (?, ?, ?)",
		userID, pin, string(raw))
	if err != nil {
		return fmt.Errorf("add user %s: %w", userID, err)
	}
	return nil
}

// Update replaces the PIN and permissions of an account.
func (s *SQLiteStore) Update(userID, pin string, permissions []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(permissions)
	if err != nil {
		return err
	}
	res, err := s.db.Exec("UPDATE users SET pin = ?, device_permissions = ? WHERE user_id = ?",
		pin, string(raw), userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user %s not found", userID)
	}
	return nil
}

// Delete removes an account.
func (s *SQLiteStore) Delete(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM users WHERE user_id = ?", userID)
	return err
}

// All returns every stored account.
func (s *SQLiteStore) All() ([]domain.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT user_id, pin, device_permissions FROM users ORDER BY user_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.UserAccount
	for rows.Next() {
		var account domain.UserAccount
		var raw string
		if err := rows.Scan(&account.UserID, &account.PIN, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &account.Permissions); err != nil {
			return nil, fmt.Errorf("decode permissions for %s: %w", account.UserID, err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ ports.UserStore = (*SQLiteStore)(nil)
