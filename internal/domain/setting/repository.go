package setting

import "context"

// SettingRepository defines read access to system settings.
type SettingRepository interface {
	// GetByKey retrieves a single setting row by its unique key.
	GetByKey(ctx context.Context, key string) (Setting, error)

	// ListActiveByCategory retrieves all active settings in a category.
	ListActiveByCategory(ctx context.Context, category string) ([]Setting, error)
}
