package setting

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/workforce-ops/workforce-backend-go/internal/domain/setting"
)

// StoreImpl reads system settings and converts them to typed values. Any
// missing or malformed entry is recovered locally by substituting the
// caller's default; configuration problems never surface as operation errors.
type StoreImpl struct {
	repo setting.SettingRepository
}

func NewStore(repo setting.SettingRepository) setting.Store {
	return &StoreImpl{repo: repo}
}

func (s *StoreImpl) lookup(ctx context.Context, key string) (string, bool) {
	row, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		if !errors.Is(err, setting.ErrSettingNotFound) {
			slog.Warn("Setting lookup failed, using default", "key", key, "error", err)
		}
		return "", false
	}
	if !row.Active {
		return "", false
	}
	return row.Value, true
}

// String implements setting.Store.
func (s *StoreImpl) String(ctx context.Context, key, def string) string {
	if v, ok := s.lookup(ctx, key); ok {
		return v
	}
	return def
}

// Int implements setting.Store.
func (s *StoreImpl) Int(ctx context.Context, key string, def int) int {
	v, ok := s.lookup(ctx, key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Debug("Malformed int setting, using default", "key", key, "value", v)
		return def
	}
	return n
}

// Decimal implements setting.Store.
func (s *StoreImpl) Decimal(ctx context.Context, key string, def decimal.Decimal) decimal.Decimal {
	v, ok := s.lookup(ctx, key)
	if !ok {
		return def
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		slog.Debug("Malformed decimal setting, using default", "key", key, "value", v)
		return def
	}
	return d
}

// Bool implements setting.Store.
func (s *StoreImpl) Bool(ctx context.Context, key string, def bool) bool {
	v, ok := s.lookup(ctx, key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Debug("Malformed bool setting, using default", "key", key, "value", v)
		return def
	}
	return b
}

// TimeOfDay implements setting.Store.
func (s *StoreImpl) TimeOfDay(ctx context.Context, key string, def setting.TimeOfDay) setting.TimeOfDay {
	v, ok := s.lookup(ctx, key)
	if !ok {
		return def
	}
	t, err := setting.ParseTimeOfDay(v)
	if err != nil {
		slog.Debug("Malformed time setting, using default", "key", key, "value", v)
		return def
	}
	return t
}

// ActiveSalaryRules implements setting.Store.
func (s *StoreImpl) ActiveSalaryRules(ctx context.Context) ([]setting.Setting, error) {
	rules, err := s.repo.ListActiveByCategory(ctx, setting.CategorySalaryRule)
	if err != nil {
		return nil, err
	}

	// Rows without a recognized apply method cannot be evaluated; drop them
	// here so the payroll engine only sees dispatchable rules.
	valid := make([]setting.Setting, 0, len(rules))
	for _, r := range rules {
		if r.ApplyMethod == nil || !r.ApplyMethod.Valid() {
			slog.Warn("Skipping salary rule with unknown apply method", "key", r.Key)
			continue
		}
		valid = append(valid, r)
	}
	return valid, nil
}
