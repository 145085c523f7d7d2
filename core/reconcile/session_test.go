package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_ValidOnlyForSameInputs(t *testing.T) {
	s := NewSession()
	in := Inputs{DBPath: "/bms/songdata.db", TableURL: "https://example.com/table.html"}

	_, ok := s.Result(in)
	assert.False(t, ok, "empty session")

	res := &Result{SelectedFolders: []string{"/a"}, Missing: []string{"h"}}
	s.Store(in, "★", res)

	got, ok := s.Result(in)
	assert.True(t, ok)
	assert.Same(t, res, got)

	_, ok = s.Result(Inputs{DBPath: in.DBPath, TableURL: "https://example.com/other.html"})
	assert.False(t, ok, "changed table url")

	_, ok = s.Result(Inputs{DBPath: "/other.db", TableURL: in.TableURL})
	assert.False(t, ok, "changed db path")

	snap := s.Snapshot()
	assert.True(t, snap.Valid)
	assert.Equal(t, in, snap.Inputs)
	assert.Equal(t, 1, snap.Folders)
	assert.Equal(t, 1, snap.Missing)

	s.Invalidate()
	_, ok = s.Result(in)
	assert.False(t, ok)
	assert.False(t, s.Snapshot().Valid)
}
