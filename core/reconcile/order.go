package reconcile

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// LevelOrder ranks level labels for the missing-chart report.
//
// Levels listed in the table's level_order rank by their position there. Other
// levels rank after all listed ones and are compared by their split form
// (prefix, number, suffix) when they contain a digit run, or by the raw label
// otherwise. Split forms compare element-wise; a shorter form that is a prefix of
// a longer one ranks first.
type LevelOrder struct {
	index    map[string]int
	fallback int
}

// NewLevelOrder builds an ordering from a table's level_order. order may be nil.
func NewLevelOrder(order []string) LevelOrder {
	lo := LevelOrder{
		index:    make(map[string]int, len(order)),
		fallback: len(order),
	}
	for i, level := range order {
		if _, dup := lo.index[level]; !dup {
			lo.index[level] = i
		}
	}
	return lo
}

// levelKey is the sort key of one level label.
type levelKey struct {
	rank  int
	parts []keyPart
}

type keyPart struct {
	text    string
	digits  string
	numeric bool
}

func (lo LevelOrder) key(level string) levelKey {
	if i, ok := lo.index[level]; ok {
		return levelKey{rank: i}
	}

	start, end := digitRun(level)
	if start < 0 {
		return levelKey{rank: lo.fallback, parts: []keyPart{{text: level}}}
	}

	return levelKey{
		rank: lo.fallback,
		parts: []keyPart{
			{text: level[:start]},
			{digits: normalizeDigits(level[start:end]), numeric: true},
			{text: level[end:]},
		},
	}
}

// Compare returns -1, 0 or +1 as level a ranks before, equal to, or after b.
func (lo LevelOrder) Compare(a, b string) int {
	if a == b {
		return 0
	}
	ka, kb := lo.key(a), lo.key(b)

	if ka.rank != kb.rank {
		return cmpInt(ka.rank, kb.rank)
	}
	for i := 0; i < len(ka.parts) && i < len(kb.parts); i++ {
		if c := comparePart(ka.parts[i], kb.parts[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(ka.parts), len(kb.parts))
}

func comparePart(a, b keyPart) int {
	if a.numeric && b.numeric {
		return compareDigits(a.digits, b.digits)
	}
	return strings.Compare(a.text, b.text)
}

// digitRun returns the byte span of the first run of decimal digits in s,
// or (-1, -1) if s has none.
func digitRun(s string) (int, int) {
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return start, i
		}
	}
	if start < 0 {
		return -1, -1
	}
	return start, len(s)
}

// normalizeDigits converts a run of Unicode decimal digits to ASCII digits with
// leading zeros removed. Full-width digits are common in Japanese table levels.
func normalizeDigits(run string) string {
	run = width.Narrow.String(run)

	var b strings.Builder
	for _, r := range run {
		b.WriteRune('0' + digitValue(r))
	}

	out := strings.TrimLeft(b.String(), "0")
	if out == "" {
		return "0"
	}
	return out
}

// digitValue returns the value of a Unicode Nd rune. Nd digits are encoded in
// contiguous ascending runs starting at zero.
func digitValue(r rune) rune {
	if r >= '0' && r <= '9' {
		return r - '0'
	}
	zero := r
	for unicode.IsDigit(zero - 1) {
		zero--
	}
	return (r - zero) % 10
}

// compareDigits compares two normalized non-negative integers of any length.
func compareDigits(a, b string) int {
	if len(a) != len(b) {
		return cmpInt(len(a), len(b))
	}
	return strings.Compare(a, b)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
