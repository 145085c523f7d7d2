package integrity

import (
	"context"
	"path/filepath"
	"testing"

	"table-pack-maker/core/apperr"
	"table-pack-maker/core/database"
	"table-pack-maker/core/storage"
	"table-pack-maker/core/storage/mocks"
	"table-pack-maker/feature/songdb"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// writeSongDB creates a sqlite song database file and returns its path.
func writeSongDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "songdata.db")
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: path})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&songdb.Song{}))
	require.NoError(t, database.Close(db))
	return path
}

func TestService_SongDB(t *testing.T) {
	svc := NewService(nil, storage.Config{}, database.Config{Driver: database.DriverSQLite, ReadOnly: true}, "", zap.NewNop())

	t.Run("Valid", func(t *testing.T) {
		report, err := svc.CheckSongDB(writeSongDB(t))
		require.NoError(t, err)
		assert.True(t, report.Matched)
		assert.True(t, report.Usable)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := svc.CheckSongDB(filepath.Join(t.TempDir(), "nope.db"))
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := svc.CheckSongDB("")
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})
}

func TestService_Storage(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		svc := NewService(nil, storage.Config{}, database.Config{}, "", nil)
		_, err := svc.CheckStorage(context.Background())
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("Enabled", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).
			Return(mocks.ObjectChannel(minio.ObjectInfo{Key: "1700000000_pack/"}))

		svc := NewService(mockClient, storage.Config{Bucket: "test-bucket"}, database.Config{}, "", nil)
		report, err := svc.CheckStorage(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"1700000000_pack"}, report.Packs)
	})
}

func TestService_Destination(t *testing.T) {
	svc := NewService(nil, storage.Config{}, database.Config{}, t.TempDir(), nil)
	report, err := svc.CheckDestination()
	require.NoError(t, err)
	assert.True(t, report.Writable)
}
