package domain

import "time"

// Priority classifies how important an appliance is to the household.
type Priority int

const (
	PriorityUnspecified Priority = iota
	PriorityEssential
	PriorityNonEssential
)

func (p Priority) String() string {
	switch p {
	case PriorityEssential:
		return "essential"
	case PriorityNonEssential:
		return "non_essential"
	default:
		return ""
	}
}

// ParsePriority maps the stored/wire form back to a Priority. Unknown values
// are treated as unspecified.
func ParsePriority(s string) Priority {
	switch s {
	case "essential", "ESSENTIAL":
		return PriorityEssential
	case "non_essential", "NON_ESSENTIAL", "non-essential":
		return PriorityNonEssential
	default:
		return PriorityUnspecified
	}
}

// State is the tracked on/off state of an appliance. Upstream tracking is
// incomplete, so StateUnknown is a normal value.
type State int

const (
	StateUnknown State = iota
	StateOn
	StateOff
)

func (s State) String() string {
	switch s {
	case StateOn:
		return "on"
	case StateOff:
		return "off"
	default:
		return ""
	}
}

func (p Priority) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Priority) UnmarshalText(b []byte) error {
	*p = ParsePriority(string(b))
	return nil
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	*s = ParseState(string(b))
	return nil
}

func ParseState(s string) State {
	switch s {
	case "on", "ON", "true":
		return StateOn
	case "off", "OFF", "false":
		return StateOff
	default:
		return StateUnknown
	}
}

type Appliance struct {
	Name     string   `json:"name"`
	Current  float64  `json:"current"`
	State    State    `json:"state,omitempty"`
	Priority Priority `json:"priority,omitempty"`
}

// Active reports whether the appliance is drawing power: either its on-state
// is known to be on, or its current is positive.
func (a Appliance) Active() bool {
	return a.State == StateOn || a.Current > 0
}

type SocketGroup struct {
	Name       string      `json:"name"`
	Appliances []Appliance `json:"appliances"`
}

// TotalCurrent sums the member readings at call time.
func (g SocketGroup) TotalCurrent() float64 {
	var total float64
	for _, a := range g.Appliances {
		total += a.Current
	}
	return total
}

type House struct {
	TotalCurrent float64 `json:"total_current"`
	MainLimit    float64 `json:"main_limit"`
}

// NewHouse aggregates the group totals under the given main breaker limit.
func NewHouse(groups []SocketGroup, mainLimit float64) House {
	h := House{MainLimit: mainLimit}
	for _, g := range groups {
		h.TotalCurrent += g.TotalCurrent()
	}
	return h
}

// ApplianceReading is one measurement for an appliance as delivered by the
// monitoring pipeline.
type ApplianceReading struct {
	Group     string    `json:"group"`
	Appliance string    `json:"appliance"`
	Current   float64   `json:"current"`
	State     State     `json:"state,omitempty"`
	Priority  Priority  `json:"priority,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
