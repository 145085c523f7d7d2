package pack

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(targets []Target) map[string]string {
	out := make(map[string]string, len(targets))
	for _, t := range targets {
		out[t.Source] = t.Name
	}
	return out
}

func TestTargetNames_Unique(t *testing.T) {
	targets := TargetNames([]string{"/bms/b/Song", "/bms/a/Other"})
	assert.Equal(t, []Target{
		{Name: "Other", Source: "/bms/a/Other"},
		{Name: "Song", Source: "/bms/b/Song"},
	}, targets)
}

func TestTargetNames_ParentPrefix(t *testing.T) {
	targets := TargetNames([]string{"/x/p1/chartpack", "/x/p2/chartpack"})
	assert.Equal(t, map[string]string{
		"/x/p1/chartpack": "chartpack",
		"/x/p2/chartpack": "p2_chartpack",
	}, names(targets))
}

func TestTargetNames_Counter(t *testing.T) {
	targets := TargetNames([]string{
		"/a/p/song",
		"/b/p/song",
		"/c/p/song",
		"/d/p/song",
	})
	assert.Equal(t, map[string]string{
		"/a/p/song": "song",
		"/b/p/song": "p_song",
		"/c/p/song": "p_song_2",
		"/d/p/song": "p_song_3",
	}, names(targets))
}

func TestTargetNames_CaseInsensitive(t *testing.T) {
	targets := TargetNames([]string{"/a/Song", "/b/SONG"})
	assert.Equal(t, map[string]string{
		"/a/Song": "Song",
		"/b/SONG": "b_SONG",
	}, names(targets))
}

func TestTargetNames_OrderedBySource(t *testing.T) {
	targets := TargetNames([]string{"/z/1", "/a/1", "/m/1"})
	var sources []string
	for _, tg := range targets {
		sources = append(sources, tg.Source)
	}
	assert.Equal(t, []string{"/a/1", "/m/1", "/z/1"}, sources)
	// naming follows input order: /z/1 came first and kept the bare name
	assert.Equal(t, "1", names(targets)["/z/1"])
}

func TestTargetNames_AlwaysDistinct(t *testing.T) {
	var folders []string
	for i := 0; i < 50; i++ {
		folders = append(folders, filepath.Join("/lib", fmt.Sprintf("g%d", i%3), "Pack"))
		folders = append(folders, filepath.Join("/lib", fmt.Sprintf("G%d", i%3), fmt.Sprintf("pack_%d", i%4)))
	}

	targets := TargetNames(folders)
	assert.Len(t, targets, len(folders))

	seen := map[string]bool{}
	for _, tg := range targets {
		key := strings.ToLower(tg.Name)
		assert.False(t, seen[key], "duplicate name %s", tg.Name)
		seen[key] = true
	}
}
