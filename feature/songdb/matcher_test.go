package songdb_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"table-pack-maker/core/apperr"
	"table-pack-maker/core/database"
	"table-pack-maker/core/reconcile"
	"table-pack-maker/feature/songdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// touch creates an empty file (and its parents) under root and returns its path.
func touch(t *testing.T, root string, rel string) string {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, nil, 0o644))
	return p
}

func TestFindFolders_Batches(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT `md5`,`path` FROM `song` WHERE md5 IN \\(\\?,\\?\\)").
		WithArgs("a", "b").
		WillReturnRows(sqlmock.NewRows([]string{"md5", "path"}).
			AddRow("a", "/bms/X/a.bms").
			AddRow("b", "/bms/X/b.bms").
			AddRow("b", "/bms/Y/b.bms"))
	mock.ExpectQuery("SELECT `md5`,`path` FROM `song` WHERE md5 IN \\(\\?\\)").
		WithArgs("c").
		WillReturnRows(sqlmock.NewRows([]string{"md5", "path"}).
			AddRow("c", nil).
			AddRow("c", "").
			AddRow("c", "/bms/Z/gone.bms"))

	exists := func(p string) bool { return p != "/bms/Z/gone.bms" }
	m := songdb.NewMatcher(db, songdb.WithBatchSize(2), songdb.WithFileExists(exists))

	coverage, err := m.FindFolders(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, reconcile.Coverage{
		"/bms/X": reconcile.NewHashSet("a", "b"),
		"/bms/Y": reconcile.NewHashSet("b"),
	}, coverage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindFolders_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

	_, err := songdb.NewMatcher(db).FindFolders(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestFindFolders_NoHashes(t *testing.T) {
	db, mock := setupMockDB(t)

	coverage, err := songdb.NewMatcher(db).FindFolders(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, coverage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithBatchSize_Ceiling(t *testing.T) {
	db, mock := setupMockDB(t)

	hashes := make([]string, songdb.MaxBatchSize+1)
	for i := range hashes {
		hashes[i] = "h"
	}
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"md5", "path"}))
	mock.ExpectQuery("SELECT").WithArgs("h").WillReturnRows(sqlmock.NewRows([]string{"md5", "path"}))

	_, err := songdb.NewMatcher(db, songdb.WithBatchSize(5000)).FindFolders(context.Background(), hashes)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindFolders_SQLite(t *testing.T) {
	root := t.TempDir()
	abs := touch(t, root, "songs/Artist - Song/hyper.bms")
	touch(t, root, "songs/Relative/normal.bms")

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, db.AutoMigrate(&songdb.Song{}))

	require.NoError(t, db.Create([]songdb.Song{
		{MD5: "h1", SHA256: "s1", Path: abs},
		{MD5: "h2", SHA256: "s2", Path: filepath.Join("songs", "Relative", "normal.bms")},
		{MD5: "h3", SHA256: "s3", Path: filepath.Join(root, "songs", "Deleted", "x.bms")},
		{MD5: "other", SHA256: "s4", Path: abs},
	}).Error)

	m := songdb.NewMatcher(db, songdb.WithBaseDir(root))
	coverage, err := m.FindFolders(context.Background(), []string{"h1", "h2", "h3", "h9"})
	require.NoError(t, err)

	assert.Equal(t, reconcile.Coverage{
		filepath.Join(root, "songs", "Artist - Song"): reconcile.NewHashSet("h1"),
		filepath.Join(root, "songs", "Relative"):      reconcile.NewHashSet("h2"),
	}, coverage)
}

func TestVerifySchema(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	defer database.Close(db)

	assert.Error(t, songdb.VerifySchema(db))

	require.NoError(t, db.Exec("CREATE TABLE song (md5 TEXT, title TEXT)").Error)
	err = songdb.VerifySchema(db)
	assert.ErrorContains(t, err, "path")

	require.NoError(t, db.Exec("ALTER TABLE song ADD COLUMN path TEXT").Error)
	assert.NoError(t, songdb.VerifySchema(db))
}

func TestOpen(t *testing.T) {
	cfg := database.Config{Driver: database.DriverSQLite, ReadOnly: true}

	t.Run("Empty path", func(t *testing.T) {
		_, err := songdb.Open(cfg, "")
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := songdb.Open(cfg, filepath.Join(t.TempDir(), "songdata.db"))
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		assert.ErrorContains(t, err, "songdb not found at")
	})

	t.Run("Not a song database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "other.db")
		rw, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: path})
		require.NoError(t, err)
		require.NoError(t, rw.Exec("CREATE TABLE folder (path TEXT)").Error)
		require.NoError(t, database.Close(rw))

		_, err = songdb.Open(cfg, path)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		assert.ErrorContains(t, err, "not a beatoraja song database")
	})

	t.Run("Valid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "songdata.db")
		rw, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: path})
		require.NoError(t, err)
		require.NoError(t, rw.AutoMigrate(&songdb.Song{}))
		require.NoError(t, database.Close(rw))

		db, err := songdb.Open(cfg, path)
		require.NoError(t, err)
		assert.NoError(t, database.Close(db))
	})
}

func TestOpen_RelativePath(t *testing.T) {
	dir := t.TempDir()
	rw, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: filepath.Join(dir, "songdata.db")})
	require.NoError(t, err)
	require.NoError(t, rw.AutoMigrate(&songdb.Song{}))
	require.NoError(t, database.Close(rw))

	t.Chdir(dir)
	db, err := songdb.Open(database.Config{Driver: database.DriverSQLite, ReadOnly: true}, "songdata.db")
	require.NoError(t, err)
	assert.NoError(t, database.Close(db))
}

func TestBaseDir(t *testing.T) {
	sqlite := database.Config{Driver: database.DriverSQLite}
	assert.Equal(t, "/songs", songdb.BaseDir(sqlite, "/bms/songdata.db", "/songs"))
	assert.Equal(t, "/bms", songdb.BaseDir(sqlite, "/bms/songdata.db", ""))
	assert.Equal(t, "", songdb.BaseDir(database.Config{Driver: database.DriverMySQL}, "songs", ""))
}
