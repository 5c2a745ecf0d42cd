// Package store persists player profiles in a BoltDB file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"fluffymud/internal/game"
)

const profileBucket = "profiles"

var _ game.ProfileStore = (*Store)(nil)

// ErrProfileNotFound is returned when no profile is stored for an account.
var ErrProfileNotFound = errors.New("profile not found")

type profileRecord struct {
	Room       game.RoomID    `json:"room"`
	Home       game.RoomID    `json:"home"`
	Attributes map[string]any `json:"attributes,omitempty"`
	SavedAt    time.Time      `json:"saved_at"`
}

// Store provides a BoltDB-backed game.ProfileStore.
type Store struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the profile database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}
	s := &Store{db: db}
	if err := s.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(profileBucket)); err != nil {
			return fmt.Errorf("create profile bucket: %w", err)
		}
		return nil
	})
}

func profileKey(account string) []byte {
	return []byte(strings.ToLower(strings.TrimSpace(account)))
}

// Profile fetches the stored profile for account.
func (s *Store) Profile(account string) (game.PlayerProfile, error) {
	if s == nil || s.db == nil {
		return game.PlayerProfile{}, fmt.Errorf("storage is not configured")
	}
	key := profileKey(account)
	if len(key) == 0 {
		return game.PlayerProfile{}, fmt.Errorf("account is required")
	}
	var record profileRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(profileBucket))
		if bucket == nil {
			return fmt.Errorf("profile bucket is missing")
		}
		payload := bucket.Get(key)
		if payload == nil {
			return ErrProfileNotFound
		}
		if err := json.Unmarshal(payload, &record); err != nil {
			return fmt.Errorf("unmarshal profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return game.PlayerProfile{}, err
	}
	return game.PlayerProfile{Room: record.Room, Home: record.Home, Attributes: record.Attributes}, nil
}

// LoadProfile implements game.ProfileStore.
func (s *Store) LoadProfile(account string) (game.PlayerProfile, bool, error) {
	profile, err := s.Profile(account)
	if errors.Is(err, ErrProfileNotFound) {
		return game.PlayerProfile{}, false, nil
	}
	if err != nil {
		return game.PlayerProfile{}, false, err
	}
	return profile, true, nil
}

// SaveProfile implements game.ProfileStore.
func (s *Store) SaveProfile(account string, profile game.PlayerProfile) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	key := profileKey(account)
	if len(key) == 0 {
		return fmt.Errorf("account is required")
	}
	payload, err := json.Marshal(profileRecord{
		Room:       profile.Room,
		Home:       profile.Home,
		Attributes: profile.Attributes,
		SavedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(profileBucket))
		if bucket == nil {
			return fmt.Errorf("profile bucket is missing")
		}
		return bucket.Put(key, payload)
	})
}

// DeleteProfile removes an account's profile. Deleting a missing profile
// is not an error.
func (s *Store) DeleteProfile(account string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(profileBucket))
		if bucket == nil {
			return fmt.Errorf("profile bucket is missing")
		}
		return bucket.Delete(profileKey(account))
	})
}

// Accounts lists every account with a stored profile, sorted.
func (s *Store) Accounts() ([]string, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	var accounts []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(profileBucket))
		if bucket == nil {
			return fmt.Errorf("profile bucket is missing")
		}
		return bucket.ForEach(func(k, _ []byte) error {
			accounts = append(accounts, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(accounts)
	return accounts, nil
}
