package reconcile

import "sort"

// Reconcile picks chart folders that cover the required hashes.
//
// Folders are visited in descending order of coverage size (ties keep the
// folder-path order of coverage.Entries). A folder is selected only if it still
// covers at least one remaining hash. This is the greedy set-cover heuristic: it
// favours few, large folders but does not guarantee a minimum cover.
//
// charts supplies titles and levels for the missing report; levelOrder, when
// non-nil, is the table's canonical level ordering.
func Reconcile(required HashSet, coverage Coverage, charts []Chart, levelOrder []string) *Result {
	remaining := make(HashSet, len(required))
	for h := range required {
		remaining.Add(h)
	}

	entries := coverage.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Hashes) > len(entries[j].Hashes)
	})

	result := &Result{
		SelectedFolders: []string{},
		Covered:         make(map[string]int),
		Total:           len(required),
	}

	for _, entry := range entries {
		gained := 0
		for h := range entry.Hashes {
			if remaining.Has(h) {
				delete(remaining, h)
				gained++
			}
		}
		if gained == 0 {
			continue
		}
		result.SelectedFolders = append(result.SelectedFolders, entry.Folder)
		result.Covered[entry.Folder] = gained
	}

	result.Found = result.Total - len(remaining)
	result.MissingCharts = sortMissing(remaining, charts, levelOrder)
	result.Missing = make([]string, len(result.MissingCharts))
	for i, c := range result.MissingCharts {
		result.Missing[i] = c.Hash
	}

	return result
}

// sortMissing resolves the remaining hashes to charts and orders them by level,
// then title, then hash.
func sortMissing(remaining HashSet, charts []Chart, levelOrder []string) []Chart {
	byHash := make(map[string]Chart, len(charts))
	for _, c := range charts {
		byHash[c.Hash] = c
	}

	missing := make([]Chart, 0, len(remaining))
	for h := range remaining {
		c, ok := byHash[h]
		if !ok {
			c = Chart{Hash: h}
		}
		missing = append(missing, c)
	}

	order := NewLevelOrder(levelOrder)
	sort.Slice(missing, func(i, j int) bool {
		a, b := missing[i], missing[j]
		if c := order.Compare(a.Level, b.Level); c != 0 {
			return c < 0
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.Hash < b.Hash
	})

	return missing
}
