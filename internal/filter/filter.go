// Package filter provides the pure in-memory predicates behind every
// listing page: free-text search over configured fields plus categorical
// filters, always re-evaluated statelessly from the full source collection.
package filter

import "strings"

// All is the sentinel value that turns a categorical filter into a
// pass-through.
const All = "all"

// Predicate reports whether an item passes a filter.
type Predicate[T any] func(T) bool

// Search keeps items whose configured fields contain term as a
// case-insensitive substring. An empty term returns the input unchanged,
// preserving order.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}

	var out []T
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), term) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// ByValue builds a predicate matching key(item) against selected, or a
// pass-through when selected is empty or the All sentinel.
func ByValue[T any](selected string, key func(T) string) Predicate[T] {
	if selected == "" || selected == All {
		return func(T) bool { return true }
	}
	return func(item T) bool { return key(item) == selected }
}

// ByFlag builds a predicate over a boolean field using the conventional
// "active"/"inactive" selections, with All passing everything.
func ByFlag[T any](selected string, flag func(T) bool) Predicate[T] {
	switch selected {
	case "active":
		return func(item T) bool { return flag(item) }
	case "inactive":
		return func(item T) bool { return !flag(item) }
	default:
		return func(T) bool { return true }
	}
}

// Apply keeps items passing every predicate, in input order. Predicates
// combine with logical AND and the evaluation is stateless, so applying the
// same filters twice yields the same result.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	var out []T
	for _, item := range items {
		pass := true
		for _, pred := range preds {
			if !pred(item) {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, item)
		}
	}
	return out
}
