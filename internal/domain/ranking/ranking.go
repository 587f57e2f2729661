// Package ranking computes leaderboard order for a selected score column
// and applies search narrowing without disturbing assigned ranks.
package ranking

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/podiumlab/podium/internal/domain/model"
)

// Entry is a row that is valid for the selected column, together with its
// parsed score and global rank.
type Entry struct {
	Row   model.Row
	Score float64
	Rank  int
}

// ParseScore parses a cell permissively. It reports false for anything that
// is not a non-negative finite number; invalid values exclude the row from
// the ranking rather than counting as zero.
func ParseScore(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Compute ranks all rows valid for the given column key. Rows are sorted
// descending by score with a stable sort, so ties keep encounter order,
// and receive ranks 1..N. The returned map carries each row's global rank
// keyed by row id, for rank lookup after search filtering.
func Compute(rows []model.Row, key string) ([]Entry, map[string]int) {
	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		if v, ok := ParseScore(r.Cell(key)); ok {
			entries = append(entries, Entry{Row: r, Score: v})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	ranks := make(map[string]int, len(entries))
	for i := range entries {
		entries[i].Rank = i + 1
		ranks[entries[i].Row.ID] = entries[i].Rank
	}
	return entries, ranks
}

// Filter narrows entries to those whose name or model label contains term
// as a case-insensitive substring. Each surviving entry keeps the global
// rank recorded in ranks, and the result is ordered by ascending global
// rank; filtering changes which rows appear, never their rank numbers.
func Filter(entries []Entry, ranks map[string]int, schema model.Schema, term string) []Entry {
	if term == "" {
		return entries
	}
	needle := strings.ToLower(term)

	matched := make([]Entry, 0, len(entries))
	for _, e := range entries {
		name := strings.ToLower(e.Row.Cell(schema.NameKey))
		mdl := strings.ToLower(e.Row.Cell(schema.ModelKey))
		if strings.Contains(name, needle) || strings.Contains(mdl, needle) {
			if r, ok := ranks[e.Row.ID]; ok {
				e.Rank = r
			}
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Rank < matched[j].Rank
	})
	return matched
}
