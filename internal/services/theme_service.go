package services

import (
	"context"
	"fmt"

	"boutique/internal/logger"
	"boutique/internal/models"
	"boutique/internal/repositories"

	"go.uber.org/zap"
)

// ThemePatch is a partial palette. Nil fields are left unchanged.
type ThemePatch struct {
	Primary        *string `json:"primary" validate:"omitnil,max=255"`
	Secondary      *string `json:"secondary" validate:"omitnil,max=255"`
	Accent         *string `json:"accent" validate:"omitnil,max=255"`
	Background     *string `json:"background" validate:"omitnil,max=255"`
	CardBackground *string `json:"cardBackground" validate:"omitnil,max=255"`
	TextColor      *string `json:"textColor" validate:"omitnil,max=255"`
	BorderColor    *string `json:"borderColor" validate:"omitnil,max=255"`
	ThemeName      *string `json:"themeName" validate:"omitnil,max=100"`
}

func (p ThemePatch) columns() map[string]interface{} {
	cols := make(map[string]interface{})
	set := func(name string, v *string) {
		if v != nil {
			cols[name] = *v
		}
	}
	set("primary", p.Primary)
	set("secondary", p.Secondary)
	set("accent", p.Accent)
	set("background", p.Background)
	set("card_background", p.CardBackground)
	set("text_color", p.TextColor)
	set("border_color", p.BorderColor)
	set("theme_name", p.ThemeName)
	return cols
}

func paletteColumns(p models.Palette) map[string]interface{} {
	return map[string]interface{}{
		"primary":         p.Primary,
		"secondary":       p.Secondary,
		"accent":          p.Accent,
		"background":      p.Background,
		"card_background": p.CardBackground,
		"text_color":      p.TextColor,
		"border_color":    p.BorderColor,
		"theme_name":      p.ThemeName,
	}
}

// ThemeService manages the live UI theme.
type ThemeService struct {
	repo repositories.ThemeRepository
}

// NewThemeService creates a new ThemeService.
func NewThemeService(repo repositories.ThemeRepository) *ThemeService {
	return &ThemeService{repo: repo}
}

// Initialize makes sure the live theme exists. It is idempotent.
func (s *ThemeService) Initialize(ctx context.Context) error {
	created, err := s.repo.EnsureCurrent(ctx, DefaultTheme)
	if err != nil {
		return err
	}
	if created {
		logger.FromCtx(ctx).Info("default theme initialized", zap.String("theme", DefaultTheme.ThemeName))
	}
	return nil
}

// Current returns the live theme, creating it from the default first if
// needed.
func (s *ThemeService) Current(ctx context.Context) (*models.Theme, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetCurrent(ctx)
}

// Update merges patch into the live theme.
func (s *ThemeService) Update(ctx context.Context, patch ThemePatch) (*models.Theme, error) {
	return s.write(ctx, patch.columns())
}

// Presets returns the compiled-in palettes by name.
func (s *ThemeService) Presets() map[string]models.Palette {
	out := make(map[string]models.Palette, len(themePresets))
	for name, p := range themePresets {
		out[name] = p
	}
	return out
}

// ApplyPreset overwrites every palette field with the named preset.
func (s *ThemeService) ApplyPreset(ctx context.Context, name string) (*models.Theme, error) {
	preset, ok := themePresets[name]
	if !ok {
		return nil, fmt.Errorf("theme preset %q: %w", name, ErrNotFound)
	}
	return s.write(ctx, paletteColumns(preset))
}

func (s *ThemeService) write(ctx context.Context, columns map[string]interface{}) (*models.Theme, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateCurrent(ctx, columns); err != nil {
		return nil, err
	}
	return s.repo.GetCurrent(ctx)
}
