package utils

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "★12", "★12"},
		{"bytes", []byte("abc"), "abc"},
		{"whole float", float64(12), "12"},
		{"fraction", 12.5, "12.5"},
		{"json number", json.Number("7"), "7"},
		{"int", 3, "3"},
		{"bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}

func TestBatch(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Batch(items, 2))
	assert.Equal(t, [][]int{{1, 2, 3, 4, 5}}, Batch(items, 5))
	assert.Equal(t, [][]int{{1, 2, 3, 4, 5}}, Batch(items, 0))
	assert.Nil(t, Batch([]int{}, 3))

	// Appending to a chunk must not clobber the next one.
	b := Batch(items, 2)
	_ = append(b[0], 99)
	assert.Equal(t, 3, b[1][0])
}

func TestBatch_SizesBounded(t *testing.T) {
	items := make([]string, 2000)
	batches := Batch(items, 900)

	assert.Len(t, batches, 3)
	total := 0
	for _, b := range batches {
		assert.LessOrEqual(t, len(b), 900)
		total += len(b)
	}
	assert.Equal(t, 2000, total)
}

func TestForEachBatch(t *testing.T) {
	var seen [][]string
	err := ForEachBatch([]string{"a", "b", "c"}, 2, func(b []string) error {
		seen = append(seen, b)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, seen)

	calls := 0
	boom := errors.New("boom")
	err = ForEachBatch([]string{"a", "b", "c"}, 1, func(b []string) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
