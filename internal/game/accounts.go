package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const defaultAdminAccount = "admin"

var (
	// ErrAccountExists is returned when registering a taken name.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountNotFound is returned for operations on unknown accounts.
	ErrAccountNotFound = errors.New("account not found")
)

type accountRecord struct {
	Password    string    `json:"password"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	LastLogin   time.Time `json:"last_login,omitempty"`
	TotalLogins int       `json:"total_logins,omitempty"`
}

// AccountStats is the login bookkeeping kept alongside a credential.
type AccountStats struct {
	CreatedAt   time.Time
	LastLogin   time.Time
	TotalLogins int
}

// AccountManager keeps bcrypt password hashes in a JSON file keyed by
// lower-cased account name.
type AccountManager struct {
	mu       sync.RWMutex
	records  map[string]accountRecord
	path     string
	admin    string
	hashCost int
}

// NewAccountManager loads the accounts file at path. A missing or empty file
// yields an empty manager.
func NewAccountManager(path string) (*AccountManager, error) {
	a := &AccountManager{
		records:  make(map[string]accountRecord),
		path:     path,
		admin:    defaultAdminAccount,
		hashCost: bcrypt.DefaultCost,
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return a, nil
	case err != nil:
		return nil, fmt.Errorf("read accounts file: %w", err)
	case len(data) == 0:
		return a, nil
	}
	var stored map[string]accountRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decode accounts file: %w", err)
	}
	for name, record := range stored {
		a.records[accountKey(name)] = record
	}
	return a, nil
}

func accountKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SetHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (a *AccountManager) SetHashCost(cost int) {
	a.mu.Lock()
	a.hashCost = cost
	a.mu.Unlock()
}

// SetAdminAccount names the account granted admin rights. Blank restores
// the default.
func (a *AccountManager) SetAdminAccount(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultAdminAccount
	}
	a.mu.Lock()
	a.admin = name
	a.mu.Unlock()
}

func (a *AccountManager) IsAdmin(name string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return strings.EqualFold(strings.TrimSpace(name), a.admin)
}

func (a *AccountManager) Exists(name string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.records[accountKey(name)]
	return ok
}

// Register creates an account after validating the name and password.
func (a *AccountManager) Register(name, pass string) error {
	if err := validateUsername(name); err != nil {
		return err
	}
	if err := validatePassword(pass); err != nil {
		return err
	}
	a.mu.RLock()
	cost := a.hashCost
	a.mu.RUnlock()
	hashed, err := bcrypt.GenerateFromPassword([]byte(pass), cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	key := accountKey(name)
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.records[key]; ok {
		return ErrAccountExists
	}
	a.records[key] = accountRecord{Password: string(hashed), CreatedAt: time.Now().UTC()}
	if err := a.persistLocked(); err != nil {
		delete(a.records, key)
		return err
	}
	return nil
}

func (a *AccountManager) Authenticate(name, pass string) bool {
	a.mu.RLock()
	record, ok := a.records[accountKey(name)]
	a.mu.RUnlock()
	return ok && bcrypt.CompareHashAndPassword([]byte(record.Password), []byte(pass)) == nil
}

// RecordLogin stamps a successful login.
func (a *AccountManager) RecordLogin(name string, when time.Time) error {
	key := accountKey(name)
	a.mu.Lock()
	defer a.mu.Unlock()
	record, ok := a.records[key]
	if !ok {
		return ErrAccountNotFound
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = when.UTC()
	}
	record.LastLogin = when.UTC()
	record.TotalLogins++
	a.records[key] = record
	return a.persistLocked()
}

func (a *AccountManager) Stats(name string) (AccountStats, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	record, ok := a.records[accountKey(name)]
	if !ok {
		return AccountStats{}, false
	}
	return AccountStats{
		CreatedAt:   record.CreatedAt,
		LastLogin:   record.LastLogin,
		TotalLogins: record.TotalLogins,
	}, true
}

func (a *AccountManager) persistLocked() error {
	data, err := json.MarshalIndent(a.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	return writeFileAtomic(a.path, append(data, '\n'))
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
