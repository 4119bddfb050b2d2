package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/setting"
	"github.com/workforce-ops/workforce-backend-go/internal/pkg/database"
)

type settingRepository struct {
	db *database.DB
}

func NewSettingRepository(db *database.DB) setting.SettingRepository {
	return &settingRepository{db: db}
}

const settingColumns = `
	id, key, category, value, data_type,
	apply_method, unit, name, active,
	created_at, updated_at`

func scanSetting(row pgx.Row) (setting.Setting, error) {
	var s setting.Setting
	err := row.Scan(
		&s.ID, &s.Key, &s.Category, &s.Value, &s.DataType,
		&s.ApplyMethod, &s.Unit, &s.Name, &s.Active,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// GetByKey implements setting.SettingRepository.
func (s *settingRepository) GetByKey(ctx context.Context, key string) (setting.Setting, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + settingColumns + `
		FROM engine_settings
		WHERE key = $1
	`

	st, err := scanSetting(q.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return setting.Setting{}, setting.ErrSettingNotFound
		}
		return setting.Setting{}, fmt.Errorf("failed to get setting: %w", err)
	}
	return st, nil
}

// ListActiveByCategory implements setting.SettingRepository.
func (s *settingRepository) ListActiveByCategory(ctx context.Context, category string) ([]setting.Setting, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + settingColumns + `
		FROM engine_settings
		WHERE category = $1 AND active = TRUE
		ORDER BY key ASC
	`

	rows, err := q.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings []setting.Setting
	for rows.Next() {
		st, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}
