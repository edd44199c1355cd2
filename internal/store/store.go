package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"accsvc/internal/models"
)

// Store хранит коллекцию пользователей в одном JSON-файле.
// Все операции сериализуются мьютексом: цепочка load→mutate→save
// внутри Update выполняется атомарно относительно других вызовов.
type Store struct {
	mu   sync.Mutex
	path string
}

// New создаёт хранилище и инициализирует файл пустой коллекцией,
// если его ещё нет.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.writeLocked(nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Load возвращает сохранённую коллекцию. Отсутствующий, нечитаемый
// или битый файл молча переписывается пустой коллекцией.
func (s *Store) Load() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Save целиком перезаписывает коллекцию.
func (s *Store) Save(users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(users)
}

// Update выполняет fn над текущей коллекцией и сохраняет результат,
// удерживая мьютекс на всём протяжении read-modify-write.
// Ошибка из fn отменяет запись и возвращается вызывающему.
func (s *Store) Update(fn func(users []models.User) ([]models.User, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadLocked()
	if err != nil {
		return err
	}
	users, err = fn(users)
	if err != nil {
		return err
	}
	return s.writeLocked(users)
}

func (s *Store) loadLocked() ([]models.User, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		// Файл пропал или недоступен — пересоздаём пустым
		if err := s.writeLocked(nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		// Битый JSON — пересоздаём пустым
		if err := s.writeLocked(nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return users, nil
}

func (s *Store) writeLocked(users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	raw, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
