package lead

import (
	"sort"
	"strings"
)

// Query narrows and orders a collection view. An empty query matches
// everything.
type Query struct {
	Search string `json:"search"`
}

// Filter returns the leads whose name, email or applied-for position
// contains the search term, case-insensitively. A blank term keeps the
// collection unchanged.
func Filter(leads []Lead, q Query) []Lead {
	term := strings.TrimSpace(strings.ToLower(q.Search))
	if term == "" {
		return leads
	}
	out := make([]Lead, 0, len(leads))
	for _, l := range leads {
		if strings.Contains(strings.ToLower(l.FullName), term) ||
			strings.Contains(strings.ToLower(l.Email), term) ||
			strings.Contains(strings.ToLower(l.PostAppliedFor), term) {
			out = append(out, l)
		}
	}
	return out
}

// SortForPipeline orders leads for display: high-priority first, then newest
// first. The sort is stable, so equally ranked leads keep their incoming
// relative order.
func SortForPipeline(leads []Lead) []Lead {
	out := make([]Lead, len(leads))
	copy(out, leads)
	sort.SliceStable(out, func(i, j int) bool {
		hi := out[i].Priority == PriorityHigh
		hj := out[j].Priority == PriorityHigh
		if hi != hj {
			return hi
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// GroupByStatus projects an ordered collection onto the five pipeline
// columns. Every column is present even when empty, and a lead lands in
// exactly one column.
func GroupByStatus(leads []Lead) Board {
	columns := make(map[Status][]Lead, len(PipelineStatuses))
	for _, s := range PipelineStatuses {
		columns[s] = []Lead{}
	}
	for _, l := range leads {
		columns[l.Status] = append(columns[l.Status], l)
	}
	return Board{Columns: columns, Total: len(leads)}
}
