package settings

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/compass/backend/internal/config"
	"github.com/compass/backend/internal/models"
)

func newTestSettings(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open("file:settings_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return NewService(db, 20)
}

func TestGet_LazyCreatesDefaults(t *testing.T) {
	svc := newTestSettings(t)
	ctx := context.Background()

	setting, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20.0, setting.MinDepositPercent)
	assert.NotNil(t, setting.FeatureFlags)

	// a second read returns the same row, not a new one
	again, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, setting.ID, again.ID)

	var count int64
	require.NoError(t, svc.DB.Model(&models.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdate(t *testing.T) {
	svc := newTestSettings(t)
	ctx := context.Background()

	deposit := 35.0
	setting, err := svc.Update(ctx, UpdateInput{
		MinDepositPercent: &deposit,
		FeatureFlags:      map[string]bool{"reviews": true},
	})
	require.NoError(t, err)
	assert.Equal(t, 35.0, setting.MinDepositPercent)
	assert.True(t, setting.FeatureFlags["reviews"])

	reread, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 35.0, reread.MinDepositPercent)
	assert.True(t, reread.FeatureFlags["reviews"])
}

func TestUpdate_ValidatesDepositRange(t *testing.T) {
	svc := newTestSettings(t)

	for _, bad := range []float64{0, -10, 101} {
		v := bad
		_, err := svc.Update(context.Background(), UpdateInput{MinDepositPercent: &v})
		require.ErrorIs(t, err, ErrValidation)
	}
}
