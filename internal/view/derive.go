package view

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"jetdash/internal/models"
)

// Derive returns the records matching every active filter, ordered by the
// sort state. The input slice is never modified.
//
// Descending order is the ascending result reversed, so records that compare
// equal come out in the opposite of their ascending relative order.
func Derive(records []models.Aircraft, st State) []models.Aircraft {
	out := make([]models.Aircraft, 0, len(records))
	for _, ac := range records {
		if st.Filter.Match(ac) {
			out = append(out, ac)
		}
	}

	if compare := comparator(st.Sort.Field); compare != nil {
		slices.SortStableFunc(out, compare)
	}
	if st.Sort.Order == OrderDesc {
		slices.Reverse(out)
	}
	return out
}

// Match applies the filters conjunctively
func (f FilterState) Match(ac models.Aircraft) bool {
	if f.Description != "" && ac.DescriptionOrType() != f.Description {
		return false
	}
	if f.Military && !ac.Military {
		return false
	}
	if f.Inbound && !ac.Inbound {
		return false
	}
	if f.HideGround && ac.OnGround {
		return false
	}
	return true
}

// comparator returns nil for fields that do not reorder
func comparator(field SortField) func(a, b models.Aircraft) int {
	switch field {
	case SortDistance:
		return func(a, b models.Aircraft) int { return cmp.Compare(a.Distance, b.Distance) }
	case SortAltitude:
		return func(a, b models.Aircraft) int { return cmp.Compare(a.Altitude, b.Altitude) }
	case SortSpeed:
		return func(a, b models.Aircraft) int { return cmp.Compare(a.Speed, b.Speed) }
	case SortType:
		// Collator keeps internal buffers, one per call
		c := collate.New(language.English)
		return func(a, b models.Aircraft) int { return c.CompareString(a.Type, b.Type) }
	}
	return nil
}

// Descriptions returns the sorted unique Description-or-Type labels offered by
// the description filter
func Descriptions(records []models.Aircraft) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, ac := range records {
		d := ac.DescriptionOrType()
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}
