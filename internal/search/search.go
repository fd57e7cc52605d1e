// Package search holds the matching and paging helpers shared by the list views.
package search

import "strings"

// All is the categorical filter value meaning "no constraint".
const All = "All"

// MatchesQuery reports whether any field contains query, ignoring case.
// An empty query matches everything.
func MatchesQuery(query string, fields ...string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}

	query = strings.ToLower(query)

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}

	return false
}

// MatchesOption reports whether value equals the selected option.
// An empty option or All matches every value.
func MatchesOption(option, value string) bool {
	if option == "" || option == All {
		return true
	}

	return option == value
}

// Where returns the items accepted by keep, in their original order.
func Where[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))

	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}

	return out
}
