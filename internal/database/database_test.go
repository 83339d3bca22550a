package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/justchokingaround/vidstream/internal/config"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(&config.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestOpen(t *testing.T) {
	t.Run("creates file and parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "vidstream.db")
		db, err := Open(&config.DatabaseConfig{Path: path, MaxConnections: 2, WALMode: true})
		require.NoError(t, err)
		defer Close(db)

		assert.True(t, db.Migrator().HasTable(&Setting{}))
		assert.True(t, db.Migrator().HasTable(&History{}))
	})

	t.Run("close tolerates nil", func(t *testing.T) {
		assert.NoError(t, Close(nil))
	})
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)

	t.Run("missing key yields empty string", func(t *testing.T) {
		value, err := GetSetting(db, "absent")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("save then overwrite", func(t *testing.T) {
		require.NoError(t, SaveSetting(db, "tmdb_api_key", "first"))
		require.NoError(t, SaveSetting(db, "tmdb_api_key", "second"))

		value, err := GetSetting(db, "tmdb_api_key")
		require.NoError(t, err)
		assert.Equal(t, "second", value)

		var count int64
		require.NoError(t, db.Model(&Setting{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, SaveSetting(db, "gone", "x"))
		require.NoError(t, DeleteSetting(db, "gone"))

		value, err := GetSetting(db, "gone")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})
}
