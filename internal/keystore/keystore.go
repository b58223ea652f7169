// Package keystore persists API keys as a flat JSON document on disk.
// Records hold a bcrypt hash of the key, never the plaintext: the full
// key is shown once at issuance and cannot be recovered afterwards.
package keystore

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// KeyPrefix marks every issued key, matching the original deployment.
const KeyPrefix = "mea_"

// prefixDisplayLen is how much of the key is kept in the clear for
// listing and lookup.
const prefixDisplayLen = 12

var (
	// ErrKeyInvalid is returned when no active record matches a key.
	ErrKeyInvalid = errors.New("invalid API key")
	// ErrNotFound is returned when a record ID does not exist.
	ErrNotFound = errors.New("API key not found")
)

// Record is one issued API key. The plaintext key is not stored.
type Record struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Prefix       string     `json:"prefix"`
	KeyHash      string     `json:"key_hash"`
	CreatedAt    time.Time  `json:"created_at"`
	LastUsed     *time.Time `json:"last_used"`
	RequestCount int        `json:"request_count"`
	Active       bool       `json:"active"`
}

// storeFile is the on-disk document layout.
type storeFile struct {
	Keys map[string]*Record `json:"keys"`
}

// Store is the flat-file key store. The process is assumed to be the
// only writer of the file; the mutex only serializes in-process access
// from concurrent HTTP handlers.
type Store struct {
	mu   sync.Mutex
	path string
	keys map[string]*Record
}

// Open loads the store at path. A missing file yields an empty store;
// the file is created on first issuance.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		keys: make(map[string]*Record),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read key store: %w", err)
	}

	var f storeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse key store %s: %w", path, err)
	}
	if f.Keys != nil {
		s.keys = f.Keys
	}
	return s, nil
}

// Path returns the store's file path.
func (s *Store) Path() string {
	return s.path
}

// Count returns the number of records, active or not.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// save writes the document back to disk. Caller holds the mutex.
func (s *Store) save() error {
	data, err := json.MarshalIndent(storeFile{Keys: s.keys}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal key store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write key store: %w", err)
	}
	return nil
}

// Issue creates a new key, persists its record, and returns the
// plaintext exactly once.
func (s *Store) Issue(name, description string) (string, *Record, error) {
	if name == "" {
		name = "Flutter App"
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", nil, fmt.Errorf("generate key: %w", err)
	}
	plaintext := KeyPrefix + base64.RawURLEncoding.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash key: %w", err)
	}

	rec := &Record{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Prefix:      plaintext[:prefixDisplayLen],
		KeyHash:     string(hash),
		CreatedAt:   time.Now().UTC(),
		Active:      true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[rec.ID] = rec
	if err := s.save(); err != nil {
		delete(s.keys, rec.ID)
		return "", nil, err
	}
	return plaintext, rec, nil
}

// Verify finds the active record matching a plaintext key. The prefix
// narrows candidates before the bcrypt comparison.
func (s *Store) Verify(plaintext string) (*Record, error) {
	if len(plaintext) < prefixDisplayLen {
		return nil, ErrKeyInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.keys {
		if !rec.Active || rec.Prefix != plaintext[:prefixDisplayLen] {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(rec.KeyHash), []byte(plaintext)) == nil {
			return rec, nil
		}
	}
	return nil, ErrKeyInvalid
}

// Touch records one use of the key: bumps the request counter and the
// last-used timestamp.
func (s *Store) Touch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.keys[id]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	rec.RequestCount++
	rec.LastUsed = &now
	return s.save()
}

// Revoke deactivates a key. Revoked keys stay in the file for audit.
func (s *Store) Revoke(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.keys[id]
	if !ok {
		return ErrNotFound
	}
	rec.Active = false
	return s.save()
}

// List returns all records ordered by creation time.
func (s *Store) List() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Record, 0, len(s.keys))
	for _, rec := range s.keys {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
