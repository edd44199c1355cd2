package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"accsvc/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestRoundTrip(t *testing.T) {
	s := newTestStore(t)

	users := []models.User{
		{Name: "Alice", Email: "alice@gmail.com", Password: "hash1", Token: "t1"},
		{Name: "Bob", Email: "bob@gmail.com", Password: "hash2", Verified: true},
	}
	if err := s.Save(users); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 users, got %d", len(got))
	}
	for i := range users {
		if got[i] != users[i] {
			t.Fatalf("user %d: expected %+v, got %+v", i, users[i], got[i])
		}
	}
}

func TestRoundTripEmpty(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %d", len(got))
	}
}

func TestNewInitializesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "users.json")
	if _, err := New(path); err != nil {
		t.Fatalf("new store: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		t.Fatalf("file is not a json array: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty array, got %d records", len(users))
	}
}

func TestLoadResetsCorruptFile(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save([]models.User{{Name: "x", Email: "x@gmail.com"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := os.WriteFile(s.path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load after corruption: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection after corruption, got %d", len(got))
	}

	// следующий Save работает как обычно
	if err := s.Save([]models.User{{Name: "y", Email: "y@gmail.com"}}); err != nil {
		t.Fatalf("save after reset: %v", err)
	}
	got, err = s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Name != "y" {
		t.Fatalf("unexpected collection: %+v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	if err := os.Remove(s.path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %d", len(got))
	}
	if _, err := os.Stat(s.path); err != nil {
		t.Fatalf("file not recreated: %v", err)
	}
}

func TestUpdateSerialized(t *testing.T) {
	s := newTestStore(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update(func(users []models.User) ([]models.User, error) {
				return append(users, models.User{Name: "u", Email: "u@gmail.com"}), nil
			})
			if err != nil {
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != n {
		t.Fatalf("expected %d users after concurrent updates, got %d", n, len(got))
	}
}

func TestUpdateErrorDiscardsChanges(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save([]models.User{{Name: "keep", Email: "keep@gmail.com"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	wantErr := os.ErrInvalid
	err := s.Update(func(users []models.User) ([]models.User, error) {
		return nil, wantErr
	})
	if err != wantErr {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	got, _ := s.Load()
	if len(got) != 1 || got[0].Name != "keep" {
		t.Fatalf("collection changed after failed update: %+v", got)
	}
}
