package periodic

import (
	"strconv"
	"strings"
)

// NormalizeQuery trims and lower-cases a filter string the way the filter
// box does before applying it.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Matches reports whether e contains query in its name, symbol, position or
// weight, ignoring case. An empty query matches everything.
func Matches(e Element, query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.Symbol), q) ||
		strings.Contains(strconv.Itoa(e.Position), q) ||
		strings.Contains(FormatWeight(e.Weight), q)
}

// FormatWeight renders a weight with the fewest digits that round-trip.
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// filterElements returns the elements matching query, preserving order.
func filterElements(elements []Element, query string) []Element {
	out := make([]Element, 0, len(elements))
	for _, e := range elements {
		if Matches(e, query) {
			out = append(out, e)
		}
	}
	return out
}
