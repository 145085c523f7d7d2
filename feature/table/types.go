package table

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"table-pack-maker/core/reconcile"
	"table-pack-maker/core/utils"
)

// Meta is the table header: the level symbol and the optional level ordering.
type Meta struct {
	Symbol        string   `json:"symbol"`
	LevelOrder    []string `json:"level_order,omitempty"`
	HasLevelOrder bool     `json:"has_level_order"`
}

// Table is a downloaded difficulty table.
type Table struct {
	URL       string `json:"url"`
	HeaderURL string `json:"header_url"`
	DataURL   string `json:"data_url"`
	Meta      Meta   `json:"meta"`

	// Charts holds the distinct charts in first-seen order.
	Charts []reconcile.Chart `json:"charts"`
	// RawCount is the number of entries in the data JSON before dedupe.
	RawCount int `json:"raw_count"`
	// Skipped counts entries dropped for having no md5.
	Skipped int `json:"skipped"`
}

// Required returns the set of chart hashes in the table.
func (t *Table) Required() reconcile.HashSet {
	set := make(reconcile.HashSet, len(t.Charts))
	for _, c := range t.Charts {
		set.Add(c.Hash)
	}
	return set
}

// Hashes returns the chart hashes in table order.
func (t *Table) Hashes() []string {
	out := make([]string, len(t.Charts))
	for i, c := range t.Charts {
		out[i] = c.Hash
	}
	return out
}

// LevelOrder returns the level ordering for reconciliation, nil when the header had none.
func (t *Table) LevelOrder() []string {
	if !t.Meta.HasLevelOrder {
		return nil
	}
	return t.Meta.LevelOrder
}

// Label is a JSON scalar that tables write either as a string or as a number.
type Label string

// UnmarshalJSON accepts strings, numbers and null.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*l = Label(strconv.FormatInt(i, 10))
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		*l = Label(n.String())
		return nil
	}
	*l = Label(utils.ToString(f))
	return nil
}

type header struct {
	Symbol     *string  `json:"symbol"`
	DataURL    *string  `json:"data_url"`
	LevelOrder *[]Label `json:"level_order"`
}

type entry struct {
	MD5   string `json:"md5"`
	Title Label  `json:"title"`
	Level Label  `json:"level"`
}

// dedupe collapses entries by hash. The first occurrence fixes the position and
// the last occurrence supplies title and level.
func dedupe(entries []entry) (charts []reconcile.Chart, skipped int) {
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		hash := strings.TrimSpace(e.MD5)
		if hash == "" {
			skipped++
			continue
		}
		c := reconcile.Chart{Hash: hash, Title: string(e.Title), Level: string(e.Level)}
		if i, ok := index[hash]; ok {
			charts[i] = c
			continue
		}
		index[hash] = len(charts)
		charts = append(charts, c)
	}
	return charts, skipped
}
