// Package view implements the presentation logic over scanned skill
// records: text/category filtering, field sorting with a stable tie-break,
// and the sort-selection state machine. Everything here is a pure function
// of the record set and the view parameters; there is no hidden state.
package view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jingkaihe/skillman/pkg/skills"
)

const (
	// SortAsc sorts ascending.
	SortAsc = "asc"
	// SortDesc sorts descending.
	SortDesc = "desc"
	// KindAll is the sentinel category selection matching every record.
	KindAll = "all"
)

// Params captures one view over a record collection.
type Params struct {
	Query     string
	Kind      string
	SortBy    string
	SortOrder string
}

// Apply filters and sorts records according to params, returning a new
// slice. The input slice is never mutated.
func Apply(records []skills.SkillRecord, params Params) []skills.SkillRecord {
	filtered := Filter(records, params.Query, params.Kind)
	Sort(filtered, params.SortBy, params.SortOrder)
	return filtered
}

// Filter returns the records matching both the kind selection (exact match
// unless KindAll or empty) and the query (case-insensitive substring over
// name or description).
func Filter(records []skills.SkillRecord, query, kind string) []skills.SkillRecord {
	query = strings.ToLower(query)

	out := make([]skills.SkillRecord, 0, len(records))
	for _, record := range records {
		if kind != "" && kind != KindAll && record.Kind != kind {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(record.Name), query) &&
			!strings.Contains(strings.ToLower(record.Description), query) {
			continue
		}
		out = append(out, record)
	}
	return out
}

// Sort orders records in place by the given field. String fields compare
// case-insensitively; size compares on the byte value parsed back out of
// its unit suffix. Ties keep their original relative order.
func Sort(records []skills.SkillRecord, field, order string) {
	desc := order == SortDesc

	if field == "size" {
		sort.SliceStable(records, func(i, j int) bool {
			a, b := ParseSize(records[i].Size), ParseSize(records[j].Size)
			if desc {
				return a > b
			}
			return a < b
		})
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := fieldValue(records[i], field), fieldValue(records[j], field)
		if desc {
			return a > b
		}
		return a < b
	})
}

func fieldValue(record skills.SkillRecord, field string) string {
	var value string
	switch field {
	case "kind":
		value = record.Kind
	case "description":
		value = record.Description
	case "modified":
		value = record.Modified
	case "category":
		value = record.Category
	case "path":
		value = record.Path
	default:
		value = record.Name
	}
	return strings.ToLower(value)
}

// ParseSize converts a formatted size like "2.0MB", "900.0KB" or "10B"
// back into bytes. Unparseable input sorts as zero.
func ParseSize(size string) float64 {
	value := strings.ToUpper(strings.TrimSpace(size))

	multiplier := 1.0
	switch {
	case strings.HasSuffix(value, "MB"):
		multiplier = 1024 * 1024
		value = strings.TrimSuffix(value, "MB")
	case strings.HasSuffix(value, "KB"):
		multiplier = 1024
		value = strings.TrimSuffix(value, "KB")
	case strings.HasSuffix(value, "B"):
		value = strings.TrimSuffix(value, "B")
	}

	number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return number * multiplier
}

// State tracks the active sort column and direction. Selecting the active
// column again toggles the direction; selecting a different column resets
// to ascending.
type State struct {
	SortBy    string
	SortOrder string
}

// NewState returns the initial sort state: ascending by name.
func NewState() State {
	return State{SortBy: "name", SortOrder: SortAsc}
}

// Select records a column selection and returns the updated state.
func (s *State) Select(field string) {
	if s.SortBy == field {
		if s.SortOrder == SortAsc {
			s.SortOrder = SortDesc
		} else {
			s.SortOrder = SortAsc
		}
		return
	}
	s.SortBy = field
	s.SortOrder = SortAsc
}

// Params combines the sort state with filter inputs into view parameters.
func (s State) Params(query, kind string) Params {
	return Params{
		Query:     query,
		Kind:      kind,
		SortBy:    s.SortBy,
		SortOrder: s.SortOrder,
	}
}
