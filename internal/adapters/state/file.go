package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"x-growth-bot/internal/domain"
)

// FileStore хранит состояние в одном JSON-файле.
// Один процесс, один писатель; файл перезаписывается целиком.
type FileStore struct {
	path string
}

var _ domain.StateStore = (*FileStore)(nil)

// NewFileStore создаёт файловое хранилище.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load читает состояние. Отсутствующий файл — пустое состояние.
func (s *FileStore) Load(_ context.Context) (domain.BotState, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewBotState(), nil
	}
	if err != nil {
		return domain.BotState{}, fmt.Errorf("%w: чтение %s: %v", domain.ErrPersistence, s.path, err)
	}
	return decodeState(data)
}

// Save перезаписывает файл состояния атомарно, через временный файл.
func (s *FileStore) Save(_ context.Context, st domain.BotState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("%w: marshal состояния: %v", domain.ErrPersistence, err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".bot_state-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: временный файл: %v", domain.ErrPersistence, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: запись состояния: %v", domain.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: закрытие файла: %v", domain.ErrPersistence, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: подмена файла: %v", domain.ErrPersistence, err)
	}
	return nil
}

// decodeState разбирает JSON и достраивает нулевые коллекции,
// чтобы load(save(s)) возвращал готовое к использованию состояние.
func decodeState(data []byte) (domain.BotState, error) {
	var st domain.BotState
	if err := json.Unmarshal(data, &st); err != nil {
		return domain.BotState{}, fmt.Errorf("%w: разбор состояния: %v", domain.ErrPersistence, err)
	}
	if st.EngagementHistory == nil {
		st.EngagementHistory = make(map[string]domain.EngagementRecord)
	}
	if st.PostHistory == nil {
		st.PostHistory = []domain.PostRecord{}
	}
	return st, nil
}
