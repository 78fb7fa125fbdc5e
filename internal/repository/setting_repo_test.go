package repository

import (
	"testing"

	"github.com/plumecms/plume-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingUpsert_InsertThenUpdate(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingRepository(db)

	require.NoError(t, settings.Upsert(&domain.Setting{Key: "site.title", Value: "Plume"}))
	require.NoError(t, settings.Upsert(&domain.Setting{Key: "site.title", Value: "Renamed"}))

	setting, err := settings.Find("site.title")
	require.NoError(t, err)
	require.NotNil(t, setting)
	assert.Equal(t, "Renamed", setting.Value)

	all, err := settings.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSettingFind_UnsetKey(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingRepository(db)

	setting, err := settings.Find("site.title")
	require.NoError(t, err)
	assert.Nil(t, setting)
}
