// Package catalog implements the in-memory query engine over a fetched set
// of plant records.  The catalog is small, so filtering happens over the
// full fetch rather than in the database; the engine is a pure function of
// its inputs and preserves the original fetch order.
package catalog

import (
	"strings"

	"github.com/hmisra/plant-store/internal/model"
)

// Query holds the two optional filters.  An empty Category means "all
// categories"; an empty or blank Search means "no text filter".  Active
// filters compose with AND.
type Query struct {
	Category string
	Search   string
}

// Filter returns the plants matching q, in their original order.  The
// result is always a non-nil slice so an empty match is distinguishable
// from "not yet loaded" (a nil input owned by the caller).
func Filter(plants []model.Plant, q Query) []model.Plant {
	out := []model.Plant{}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range plants {
		if q.Category != "" && !hasCategory(p, q.Category) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// hasCategory reports whether the plant's category set contains name.
// Categories are already normalized to plain strings by model.Category, so
// a direct comparison suffices regardless of the wire shape they arrived in.
func hasCategory(p model.Plant, name string) bool {
	for _, c := range p.Categories {
		if c.String() == name {
			return true
		}
	}
	return false
}

// matchesSearch reports whether the lowercased query appears in the name,
// the description, or the space-joined category names.  search must already
// be lowercased and trimmed.
func matchesSearch(p model.Plant, search string) bool {
	if strings.Contains(strings.ToLower(p.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), search) {
		return true
	}
	names := make([]string, len(p.Categories))
	for i, c := range p.Categories {
		names[i] = c.String()
	}
	return strings.Contains(strings.ToLower(strings.Join(names, " ")), search)
}
