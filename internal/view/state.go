package view

import (
	"net/url"
	"slices"
	"strconv"
)

// SortField selects the comparator used by Derive
type SortField string

const (
	SortDistance SortField = "distance"
	SortAltitude SortField = "altitude"
	SortSpeed    SortField = "speed"
	SortType     SortField = "type"
)

// SortFields lists the recognised fields in the order the UI offers them
var SortFields = []SortField{SortDistance, SortAltitude, SortSpeed, SortType}

// Label is the human readable name shown in sort controls
func (f SortField) Label() string {
	switch f {
	case SortDistance:
		return "Distance"
	case SortAltitude:
		return "Altitude"
	case SortSpeed:
		return "Speed"
	case SortType:
		return "Type"
	}
	return string(f)
}

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Label is "Ascending" or "Descending"
func (o SortOrder) Label() string {
	if o == OrderDesc {
		return "Descending"
	}
	return "Ascending"
}

// FilterState holds the active filters. Zero values pass everything through.
type FilterState struct {
	Description string // exact match against Description, falling back to Type
	Military    bool
	Inbound     bool
	HideGround  bool
}

// Active reports whether any filter is set
func (f FilterState) Active() bool {
	return f != FilterState{}
}

type SortState struct {
	Field SortField
	Order SortOrder
}

// State is the complete UI state for one dashboard view. It is a plain value;
// every change goes through an Action and yields a new State.
type State struct {
	Filter FilterState
	Sort   SortState
}

// DefaultState sorts by ascending distance with no filters
func DefaultState() State {
	return State{Sort: SortState{Field: SortDistance, Order: OrderAsc}}
}

// Action is a single user-driven state transition
type Action func(State) State

// Apply runs the actions in order and returns the resulting state
func (s State) Apply(actions ...Action) State {
	for _, a := range actions {
		s = a(s)
	}
	return s
}

func SelectDescription(description string) Action {
	return func(s State) State {
		s.Filter.Description = description
		return s
	}
}

func SetMilitary(on bool) Action {
	return func(s State) State {
		s.Filter.Military = on
		return s
	}
}

func SetInbound(on bool) Action {
	return func(s State) State {
		s.Filter.Inbound = on
		return s
	}
}

func SetHideGround(on bool) Action {
	return func(s State) State {
		s.Filter.HideGround = on
		return s
	}
}

// ResetFilters clears every filter and leaves the sort alone
func ResetFilters() Action {
	return func(s State) State {
		s.Filter = FilterState{}
		return s
	}
}

func SetSortField(field SortField) Action {
	return func(s State) State {
		s.Sort.Field = field
		return s
	}
}

func SetSortOrder(order SortOrder) Action {
	return func(s State) State {
		s.Sort.Order = order
		return s
	}
}

func ToggleSortOrder() Action {
	return func(s State) State {
		if s.Sort.Order == OrderDesc {
			s.Sort.Order = OrderAsc
		} else {
			s.Sort.Order = OrderDesc
		}
		return s
	}
}

// CycleSortField moves to the next recognised field, wrapping around.
// An unrecognised field restarts at distance.
func CycleSortField() Action {
	return func(s State) State {
		i := slices.Index(SortFields, s.Sort.Field)
		s.Sort.Field = SortFields[(i+1)%len(SortFields)]
		return s
	}
}

// CycleDescription steps through descriptions, with "all" (empty) between the
// last entry and the first. A selection no longer offered restarts the cycle.
func CycleDescription(descriptions []string) Action {
	return func(s State) State {
		if len(descriptions) == 0 {
			s.Filter.Description = ""
			return s
		}
		if s.Filter.Description == "" {
			s.Filter.Description = descriptions[0]
			return s
		}
		i := slices.Index(descriptions, s.Filter.Description)
		if i < 0 || i == len(descriptions)-1 {
			s.Filter.Description = ""
		} else {
			s.Filter.Description = descriptions[i+1]
		}
		return s
	}
}

// Query parameter names used by the dashboard URL
const (
	ParamDescription = "description"
	ParamMilitary    = "military"
	ParamInbound     = "inbound"
	ParamHideGround  = "hide_ground"
	ParamSort        = "sort"
	ParamOrder       = "order"
)

// FromQuery reads a State from dashboard query parameters. Missing parameters
// take their default. The sort field is taken verbatim so that an
// unrecognised value leaves the list in backend order.
func FromQuery(q url.Values) State {
	s := DefaultState()
	s.Filter.Description = q.Get(ParamDescription)
	s.Filter.Military = queryBool(q.Get(ParamMilitary))
	s.Filter.Inbound = queryBool(q.Get(ParamInbound))
	s.Filter.HideGround = queryBool(q.Get(ParamHideGround))
	if v := q.Get(ParamSort); v != "" {
		s.Sort.Field = SortField(v)
	}
	if q.Get(ParamOrder) == string(OrderDesc) {
		s.Sort.Order = OrderDesc
	}
	return s
}

// Query encodes the state, omitting parameters that hold their default
func (s State) Query() url.Values {
	q := url.Values{}
	if s.Filter.Description != "" {
		q.Set(ParamDescription, s.Filter.Description)
	}
	if s.Filter.Military {
		q.Set(ParamMilitary, "1")
	}
	if s.Filter.Inbound {
		q.Set(ParamInbound, "1")
	}
	if s.Filter.HideGround {
		q.Set(ParamHideGround, "1")
	}
	if s.Sort.Field != SortDistance && s.Sort.Field != "" {
		q.Set(ParamSort, string(s.Sort.Field))
	}
	if s.Sort.Order == OrderDesc {
		q.Set(ParamOrder, string(OrderDesc))
	}
	return q
}

// URL returns path with the encoded state appended
func (s State) URL(path string) string {
	if enc := s.Query().Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// With is shorthand for building links: the URL of the state after actions
func (s State) With(path string, actions ...Action) string {
	return s.Apply(actions...).URL(path)
}

func queryBool(v string) bool {
	if v == "on" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}
