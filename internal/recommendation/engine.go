package recommendation

import (
	"fmt"
	"sort"

	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/domain"
)

// GroupLimit is the safe-load ceiling of a single socket group, in amperes.
const GroupLimit = 13.0

// maxSuggestions caps the individual turn-off suggestions per overload.
const maxSuggestions = 2

// AlertSink receives advisory messages in the order they are produced.
type AlertSink interface {
	Alert(message string)
}

// AlertFunc adapts a plain function to AlertSink.
type AlertFunc func(message string)

func (f AlertFunc) Alert(message string) { f(message) }

// Engine turns load snapshots into advisory messages. It keeps no appliance
// state and may be shared between goroutines.
type Engine struct {
	sink AlertSink
}

func NewEngine(sink AlertSink) *Engine {
	return &Engine{sink: sink}
}

// EvaluateGroupLoad emits load reduction recommendations when the group draws
// more than GroupLimit.
func (e *Engine) EvaluateGroupLoad(group domain.SocketGroup) {
	total := group.TotalCurrent()
	if total <= GroupLimit {
		return
	}

	e.sink.Alert(fmt.Sprintf("%s socket group overloaded (%.1fA). Reduce load immediately.", group.Name, total))

	active := activeByCurrent(group.Appliances)
	if len(active) == 0 {
		e.sink.Alert("No active appliances to recommend turning off.")
		return
	}

	e.sink.Alert("Recommended actions:")
	for _, a := range active[:min(maxSuggestions, len(active))] {
		e.sink.Alert(suggestion(a))
	}

	// Shedding the largest consumer alone is not enough.
	if total-active[0].Current > GroupLimit {
		e.sink.Alert("Consider reducing load in other groups as well.")
	}
}

// EvaluateHouseLoad emits a single escalation when the house exceeds its main
// breaker limit.
func (e *Engine) EvaluateHouseLoad(house domain.House) {
	if house.TotalCurrent > house.MainLimit {
		e.sink.Alert("Whole house limit exceeded. Prioritize turning off non-essential appliances across all groups.")
	}
}

// activeByCurrent returns a copy of the active appliances, highest current
// first. Equal currents keep their collection order.
func activeByCurrent(appliances []domain.Appliance) []domain.Appliance {
	active := make([]domain.Appliance, 0, len(appliances))
	for _, a := range appliances {
		if a.Active() {
			active = append(active, a)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Current > active[j].Current
	})
	return active
}

func suggestion(a domain.Appliance) string {
	s := fmt.Sprintf("→ Turn off %s (%.1fA)", a.Name, a.Current)
	if a.Priority == domain.PriorityNonEssential {
		s += " (non-essential)"
	}
	return s
}
