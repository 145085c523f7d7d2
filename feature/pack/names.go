package pack

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Target pairs a source chart folder with its directory name inside the pack.
type Target struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// TargetNames assigns each folder a distinct directory name and returns the targets
// ordered by source path.
//
// A folder keeps its base name unless that name is taken, in which case its parent's
// base name is prefixed ("<parent>_<base>"). If that is taken too, "_2", "_3", ...
// is appended. Names are compared case-insensitively so a pack unpacks cleanly on
// case-insensitive filesystems. Folders are named in the order given, so earlier
// folders keep the shorter names.
func TargetNames(folders []string) []Target {
	taken := make(map[string]bool, len(folders))
	targets := make([]Target, 0, len(folders))

	for _, folder := range folders {
		name := filepath.Base(folder)
		if taken[strings.ToLower(name)] {
			if parent := filepath.Base(filepath.Dir(folder)); parent != "." && parent != string(filepath.Separator) {
				name = parent + "_" + name
			}
		}
		if taken[strings.ToLower(name)] {
			stem := name
			for n := 2; taken[strings.ToLower(name)]; n++ {
				name = fmt.Sprintf("%s_%d", stem, n)
			}
		}
		taken[strings.ToLower(name)] = true
		targets = append(targets, Target{Name: name, Source: folder})
	}

	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].Source < targets[j].Source
	})
	return targets
}
