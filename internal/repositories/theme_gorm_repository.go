package repositories

import (
	"context"
	"fmt"
	"time"

	"boutique/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ThemeRepository stores the single live theme row.
type ThemeRepository interface {
	// EnsureCurrent creates the live row from defaults unless it already
	// exists. It is a single conditional insert, safe to race.
	EnsureCurrent(ctx context.Context, defaults models.Palette) (created bool, err error)
	GetCurrent(ctx context.Context) (*models.Theme, error)
	// UpdateCurrent writes the given palette columns, bumps the version and
	// refreshes updated_at.
	UpdateCurrent(ctx context.Context, columns map[string]interface{}) error
	Count(ctx context.Context) (int64, error)
}

// GORMThemeRepository is a GORM implementation of ThemeRepository.
type GORMThemeRepository struct {
	db *gorm.DB
}

// NewGORMThemeRepository creates a new instance of GORMThemeRepository.
func NewGORMThemeRepository(db *gorm.DB) *GORMThemeRepository {
	return &GORMThemeRepository{db: db}
}

// EnsureCurrent inserts the live row with ON CONFLICT (name) DO NOTHING.
func (r *GORMThemeRepository) EnsureCurrent(ctx context.Context, defaults models.Palette) (bool, error) {
	theme := models.Theme{
		Name:      models.CurrentThemeName,
		Palette:   defaults,
		Version:   1,
		UpdatedAt: time.Now(),
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&theme)
	if res.Error != nil {
		return false, fmt.Errorf("failed to initialize theme: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// GetCurrent reads the live row.
func (r *GORMThemeRepository) GetCurrent(ctx context.Context) (*models.Theme, error) {
	var theme models.Theme
	if err := r.db.WithContext(ctx).First(&theme, "name = ?", models.CurrentThemeName).Error; err != nil {
		return nil, fmt.Errorf("theme %s: %w", models.CurrentThemeName, translate(err))
	}
	return &theme, nil
}

// UpdateCurrent applies columns to the live row in one statement.
func (r *GORMThemeRepository) UpdateCurrent(ctx context.Context, columns map[string]interface{}) error {
	updates := make(map[string]interface{}, len(columns)+2)
	for k, v := range columns {
		updates[k] = v
	}
	updates["version"] = gorm.Expr("version + 1")
	updates["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&models.Theme{}).
		Where("name = ?", models.CurrentThemeName).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update theme: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("theme %s: %w", models.CurrentThemeName, ErrNotFound)
	}
	return nil
}

// Count returns how many theme rows exist.
func (r *GORMThemeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Theme{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count themes: %w", err)
	}
	return n, nil
}
