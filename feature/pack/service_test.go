package pack_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"table-pack-maker/core/apperr"
	"table-pack-maker/core/database"
	"table-pack-maker/core/observer"
	"table-pack-maker/core/reconcile"
	"table-pack-maker/feature/pack"
	"table-pack-maker/feature/songdb"
	"table-pack-maker/feature/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// library lays out chart files under root and writes a song database describing
// them. files maps md5 to a path relative to root.
func library(t *testing.T, root string, files map[string]string) string {
	t.Helper()
	dbPath := filepath.Join(root, "songdata.db")
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: dbPath})
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, db.AutoMigrate(&songdb.Song{}))

	for md5, rel := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(md5), 0o644))
		require.NoError(t, db.Create(&songdb.Song{MD5: md5, SHA256: "sha-" + md5, Path: rel}).Error)
	}
	return dbPath
}

type stubTables struct {
	tbl   *table.Table
	err   error
	calls int
	block chan struct{}
}

func (s *stubTables) Load(ctx context.Context, tableURL string, obs observer.Observer) (*table.Table, error) {
	s.calls++
	if s.block != nil {
		<-s.block
	}
	return s.tbl, s.err
}

func tableOf(symbol string, charts ...reconcile.Chart) *table.Table {
	return &table.Table{Meta: table.Meta{Symbol: symbol}, Charts: charts, RawCount: len(charts)}
}

func TestService_EndToEnd(t *testing.T) {
	root := t.TempDir()
	dbPath := library(t, root, map[string]string{
		"A": "songs/X/a.bms",
		"B": "songs/X/b.bms",
		"C": "songs/Y/c.bms",
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/table/":
			_, _ = w.Write([]byte(`<meta name="bmstable" content="header.json">`))
		case "/table/header.json":
			_, _ = w.Write([]byte(`{"symbol":"sl","data_url":"body.json","level_order":["0","1"]}`))
		case "/table/body.json":
			_, _ = w.Write([]byte(`[
				{"md5":"A","title":"Alpha","level":"1"},
				{"md5":"B","title":"Beta","level":"1"},
				{"md5":"C","title":"Gamma","level":"0"},
				{"md5":"D","title":"Delta","level":"1"},
				{"md5":"E","title":"Echo","level":"0"}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := pack.Config{Destination: filepath.Join(root, "packs"), Name: "pack", BatchSize: 2}
	svc := pack.NewService(cfg,
		database.Config{Driver: database.DriverSQLite, ReadOnly: true},
		table.NewLoader(table.Config{}),
		nil,
		pack.WithBuilder(pack.NewBuilder(cfg, pack.WithClock(fixedNow))),
	)

	in := reconcile.Inputs{DBPath: dbPath, TableURL: srv.URL + "/table/"}
	rec := observer.NewRecorder()
	found, err := svc.FindSongs(context.Background(), in, rec)
	require.NoError(t, err)

	x := filepath.Join(root, "songs", "X")
	y := filepath.Join(root, "songs", "Y")
	assert.Equal(t, "sl", found.Symbol)
	assert.Equal(t, 5, found.Charts)
	assert.ElementsMatch(t, []string{x, y}, found.SelectedFolders)
	assert.Equal(t, []string{"E", "D"}, found.Missing)
	assert.Equal(t, 3, found.Found)

	assert.Equal(t, []string{
		"Retrieving table: " + srv.URL + "/table/",
		"5 unique charts in table (5 before removing dupes).",
		"3/5 charts found in song database.",
		"2 bms folders used for 3 charts.",
	}, rec.Statuses())
	assert.Equal(t, []string{
		"Missing charts:",
		"sl0 Echo (E)",
		"sl1 Delta (D)",
		"^ 2 missing charts.",
	}, rec.Logs())

	snap := svc.Session()
	assert.True(t, snap.Valid)
	assert.Equal(t, in, snap.Inputs)

	built, err := svc.MakePack(context.Background(), in, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "packs", "1700000000_pack"), built.Dir)
	assert.FileExists(t, filepath.Join(built.Dir, "X", "a.bms"))
	assert.FileExists(t, filepath.Join(built.Dir, "Y", "c.bms"))
	assert.Nil(t, built.Published)
}

func TestService_MissingInputs(t *testing.T) {
	svc := pack.NewService(pack.Config{}, database.Config{}, &stubTables{}, nil)

	rec := observer.NewRecorder()
	_, err := svc.FindSongs(context.Background(), reconcile.Inputs{TableURL: "http://t"}, rec)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, []string{"enter songdb path"}, rec.Statuses())

	_, err = svc.FindSongs(context.Background(), reconcile.Inputs{DBPath: "songdata.db"}, nil)
	assert.ErrorContains(t, err, "enter table url")
}

func TestService_MakePackRequiresFind(t *testing.T) {
	root := t.TempDir()
	dbPath := library(t, root, map[string]string{"A": "s/A/a.bms"})
	tables := &stubTables{tbl: tableOf("★", reconcile.Chart{Hash: "A", Title: "a", Level: "1"})}
	svc := pack.NewService(pack.Config{Destination: filepath.Join(root, "packs")},
		database.Config{Driver: database.DriverSQLite, ReadOnly: true}, tables, nil)

	in := reconcile.Inputs{DBPath: dbPath, TableURL: "http://example.com/t"}

	rec := observer.NewRecorder()
	_, err := svc.MakePack(context.Background(), in, rec)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, []string{`run "find" for this database and table first`}, rec.Statuses())

	_, err = svc.FindSongs(context.Background(), in, nil)
	require.NoError(t, err)

	// changing either input makes the stored result stale
	_, err = svc.MakePack(context.Background(), reconcile.Inputs{DBPath: dbPath, TableURL: "http://example.com/other"}, nil)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.MakePack(context.Background(), in, nil)
	assert.NoError(t, err)
}

func TestService_FailedFindInvalidatesSession(t *testing.T) {
	root := t.TempDir()
	dbPath := library(t, root, map[string]string{"A": "s/A/a.bms"})
	tables := &stubTables{tbl: tableOf("★", reconcile.Chart{Hash: "A"})}
	svc := pack.NewService(pack.Config{Destination: filepath.Join(root, "packs")},
		database.Config{Driver: database.DriverSQLite, ReadOnly: true}, tables, nil)

	in := reconcile.Inputs{DBPath: dbPath, TableURL: "http://example.com/t"}
	_, err := svc.FindSongs(context.Background(), in, nil)
	require.NoError(t, err)
	require.True(t, svc.Session().Valid)

	tables.err = apperr.Fetch("retrieve table", errors.New("unable to access url"))
	tables.tbl = nil
	rec := observer.NewRecorder()
	_, err = svc.FindSongs(context.Background(), in, rec)
	assert.True(t, apperr.Is(err, apperr.KindFetch))
	assert.False(t, svc.Session().Valid)
	assert.Equal(t, []string{"retrieve table: unable to access url"}, rec.Statuses())
}

func TestService_SongDBNotFound(t *testing.T) {
	tables := &stubTables{}
	svc := pack.NewService(pack.Config{}, database.Config{Driver: database.DriverSQLite}, tables, nil)

	_, err := svc.FindSongs(context.Background(), reconcile.Inputs{
		DBPath:   filepath.Join(t.TempDir(), "songdata.db"),
		TableURL: "http://example.com/t",
	}, nil)
	assert.ErrorContains(t, err, "songdb not found at")
	// the table is never fetched for a missing database
	assert.Equal(t, 0, tables.calls)
}

func TestService_Busy(t *testing.T) {
	root := t.TempDir()
	dbPath := library(t, root, map[string]string{"A": "s/A/a.bms"})
	tables := &stubTables{tbl: tableOf("★", reconcile.Chart{Hash: "A"}), block: make(chan struct{})}
	svc := pack.NewService(pack.Config{}, database.Config{Driver: database.DriverSQLite, ReadOnly: true}, tables, nil)
	in := reconcile.Inputs{DBPath: dbPath, TableURL: "http://example.com/t"}

	done := make(chan error, 1)
	go func() {
		_, err := svc.FindSongs(context.Background(), in, nil)
		done <- err
	}()

	// wait until the first call holds the lock
	require.Eventually(t, func() bool {
		_, err := svc.MakePack(context.Background(), in, nil)
		return errors.Is(err, pack.ErrBusy)
	}, 2*time.Second, 10*time.Millisecond)

	_, err := svc.FindSongs(context.Background(), in, nil)
	assert.ErrorIs(t, err, pack.ErrBusy)
	assert.Equal(t, 409, pack.StatusCode(err))

	close(tables.block)
	assert.NoError(t, <-done)
}
