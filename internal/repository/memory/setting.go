package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/setting"
)

type SettingRepository struct {
	mu    sync.Mutex
	byKey map[string]*setting.Setting
}

func NewSettingRepository() *SettingRepository {
	return &SettingRepository{byKey: make(map[string]*setting.Setting)}
}

// Seed inserts or replaces a setting row. Test helper; the engine itself
// never writes settings.
func (s *SettingRepository) Seed(st setting.Setting) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	st.CreatedAt = now
	st.UpdatedAt = now
	s.byKey[st.Key] = &st
}

// SeedValue inserts an active setting with just a key and raw value.
func (s *SettingRepository) SeedValue(key, category, value string, dataType setting.DataType) {
	s.Seed(setting.Setting{
		Key:      key,
		Category: category,
		Value:    value,
		DataType: dataType,
		Active:   true,
	})
}

// GetByKey implements setting.SettingRepository.
func (s *SettingRepository) GetByKey(ctx context.Context, key string) (setting.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.byKey[key]
	if !ok {
		return setting.Setting{}, setting.ErrSettingNotFound
	}
	return *st, nil
}

// ListActiveByCategory implements setting.SettingRepository.
func (s *SettingRepository) ListActiveByCategory(ctx context.Context, category string) ([]setting.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settings []setting.Setting
	for _, st := range s.byKey {
		if st.Category == category && st.Active {
			settings = append(settings, *st)
		}
	}
	return settings, nil
}
