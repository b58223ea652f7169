package keystore

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "api_keys.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	s := tempStore(t)
	if s.Count() != 0 {
		t.Errorf("count = %d, want 0", s.Count())
	}
}

func TestIssueAndVerify(t *testing.T) {
	s := tempStore(t)

	plaintext, rec, err := s.Issue("Flutter App", "mobile client")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !strings.HasPrefix(plaintext, KeyPrefix) {
		t.Errorf("key %q missing %q prefix", plaintext, KeyPrefix)
	}
	if rec.KeyHash == plaintext || strings.Contains(rec.KeyHash, plaintext[8:]) {
		t.Error("record must not retain the plaintext key")
	}
	if !rec.Active {
		t.Error("new key should be active")
	}

	got, err := s.Verify(plaintext)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.ID != rec.ID {
		t.Errorf("verified record ID = %q, want %q", got.ID, rec.ID)
	}
}

func TestVerify_Invalid(t *testing.T) {
	s := tempStore(t)
	if _, _, err := s.Issue("app", ""); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := s.Verify("mea_definitely-not-a-real-key"); !errors.Is(err, ErrKeyInvalid) {
		t.Errorf("want ErrKeyInvalid, got %v", err)
	}
	if _, err := s.Verify("short"); !errors.Is(err, ErrKeyInvalid) {
		t.Errorf("want ErrKeyInvalid for short input, got %v", err)
	}
}

func TestVerify_RevokedKeyRejected(t *testing.T) {
	s := tempStore(t)
	plaintext, rec, err := s.Issue("app", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if err := s.Revoke(rec.ID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if _, err := s.Verify(plaintext); !errors.Is(err, ErrKeyInvalid) {
		t.Errorf("revoked key should not verify, got %v", err)
	}
}

func TestTouch(t *testing.T) {
	s := tempStore(t)
	_, rec, err := s.Issue("app", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if err := s.Touch(rec.ID); err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if err := s.Touch(rec.ID); err != nil {
		t.Fatalf("Touch: %v", err)
	}

	got := s.List()[0]
	if got.RequestCount != 2 {
		t.Errorf("request count = %d, want 2", got.RequestCount)
	}
	if got.LastUsed == nil {
		t.Error("last used should be set after Touch")
	}

	if err := s.Touch("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_keys.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	plaintext, rec, err := s.Issue("app", "desc")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Count() != 1 {
		t.Fatalf("count after reopen = %d, want 1", reopened.Count())
	}

	got, err := reopened.Verify(plaintext)
	if err != nil {
		t.Fatalf("Verify after reopen: %v", err)
	}
	if got.ID != rec.ID || got.Name != "app" || got.Description != "desc" {
		t.Errorf("record fields lost across reopen: %+v", got)
	}
}

func TestIssue_DefaultName(t *testing.T) {
	s := tempStore(t)
	_, rec, err := s.Issue("", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if rec.Name != "Flutter App" {
		t.Errorf("default name = %q, want Flutter App", rec.Name)
	}
}

func TestList_OrderedByCreation(t *testing.T) {
	s := tempStore(t)
	_, first, _ := s.Issue("first", "")
	_, second, _ := s.Issue("second", "")

	got := s.List()
	if len(got) != 2 {
		t.Fatalf("list length = %d, want 2", len(got))
	}
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Error("list should be ordered by creation time")
	}
}
