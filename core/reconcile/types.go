package reconcile

import "sort"

// Chart is one entry of a difficulty table.
// Hash is the chart's content fingerprint (the md5 column of the song database).
type Chart struct {
	Hash  string `json:"hash"`
	Title string `json:"title"`
	Level string `json:"level"`
}

// HashSet is a set of chart hashes.
type HashSet map[string]struct{}

// NewHashSet builds a set from the given hashes.
func NewHashSet(hashes ...string) HashSet {
	s := make(HashSet, len(hashes))
	for _, h := range hashes {
		s[h] = struct{}{}
	}
	return s
}

// Add inserts h.
func (s HashSet) Add(h string) {
	s[h] = struct{}{}
}

// Has reports whether h is in the set.
func (s HashSet) Has(h string) bool {
	_, ok := s[h]
	return ok
}

// Sorted returns the members in ascending order.
func (s HashSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// Coverage maps a chart folder to the hashes found in it.
type Coverage map[string]HashSet

// Add records that folder contains a chart with the given hash.
func (c Coverage) Add(folder, hash string) {
	set, ok := c[folder]
	if !ok {
		set = make(HashSet)
		c[folder] = set
	}
	set.Add(hash)
}

// FolderCoverage is one folder with the hashes it covers.
type FolderCoverage struct {
	Folder string
	Hashes HashSet
}

// Entries returns the coverage as a slice ordered by folder path.
func (c Coverage) Entries() []FolderCoverage {
	entries := make([]FolderCoverage, 0, len(c))
	for folder, hashes := range c {
		entries = append(entries, FolderCoverage{Folder: folder, Hashes: hashes})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Folder < entries[j].Folder
	})
	return entries
}

// Result is the outcome of a reconciliation pass.
//
// Every required hash is either covered by one of SelectedFolders or listed in
// Missing, never both.
type Result struct {
	// SelectedFolders lists the chosen folders in selection order.
	SelectedFolders []string `json:"selected_folders"`

	// Covered maps each selected folder to the number of required hashes it
	// newly covered when it was selected.
	Covered map[string]int `json:"covered"`

	// Missing lists the uncovered hashes, sorted by level then title.
	Missing []string `json:"missing"`

	// MissingCharts holds the chart entries for Missing, in the same order.
	MissingCharts []Chart `json:"missing_charts"`

	// Total is the number of distinct required hashes.
	Total int `json:"total"`

	// Found is the number of required hashes covered by the selection.
	Found int `json:"found"`
}
