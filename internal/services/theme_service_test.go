package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newThemeService(t *testing.T) (*services.ThemeService, *repositories.GORMThemeRepository) {
	repo := repositories.NewGORMThemeRepository(openDB(t))
	return services.NewThemeService(repo), repo
}

func TestThemeService_CurrentCreatesDefault(t *testing.T) {
	service, repo := newThemeService(t)

	theme, err := service.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.CurrentThemeName, theme.Name)
	assert.Equal(t, services.DefaultTheme, theme.Palette)
	assert.Equal(t, 1, theme.Version)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestThemeService_ConcurrentFirstReads(t *testing.T) {
	service, repo := newThemeService(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Current(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestThemeService_Update(t *testing.T) {
	service, _ := newThemeService(t)
	ctx := context.Background()

	primary := "#000000"
	theme, err := service.Update(ctx, services.ThemePatch{Primary: &primary})
	require.NoError(t, err)

	assert.Equal(t, "#000000", theme.Primary)
	assert.Equal(t, services.DefaultTheme.Secondary, theme.Secondary, "unset fields are kept")
	assert.Equal(t, 2, theme.Version)
}

func TestThemeService_ApplyPreset(t *testing.T) {
	service, _ := newThemeService(t)
	ctx := context.Background()

	before, err := service.Current(ctx)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	theme, err := service.ApplyPreset(ctx, "dark")
	require.NoError(t, err)

	assert.Equal(t, service.Presets()["dark"], theme.Palette)
	assert.True(t, theme.UpdatedAt.After(before.UpdatedAt), "updatedAt advances")
	assert.Equal(t, before.Version+1, theme.Version)

	stored, err := service.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.Presets()["dark"], stored.Palette)
}

func TestThemeService_ApplyUnknownPreset(t *testing.T) {
	service, _ := newThemeService(t)

	_, err := service.ApplyPreset(context.Background(), "neon")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestThemeService_Presets(t *testing.T) {
	service, _ := newThemeService(t)

	presets := service.Presets()
	for _, name := range []string{"pink", "blue", "purple", "green", "orange", "dark", "luxury"} {
		assert.Contains(t, presets, name)
	}

	// Callers get a copy.
	delete(presets, "pink")
	assert.Contains(t, service.Presets(), "pink")
}

func TestThemeService_InitializeIsIdempotent(t *testing.T) {
	service, repo := newThemeService(t)
	ctx := context.Background()

	require.NoError(t, service.Initialize(ctx))
	_, err := service.ApplyPreset(ctx, "blue")
	require.NoError(t, err)
	require.NoError(t, service.Initialize(ctx))

	theme, err := repo.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Blue Theme", theme.ThemeName, "initialize never resets an existing theme")
}
