package engine

import "fmt"

// Event categories.
const (
	CategoryRent       = "rent"
	CategoryTenant     = "tenant"
	CategoryBuilding   = "building"
	CategoryEconomy    = "economy"
	CategoryCompliance = "compliance"
	CategorySocial     = "social"
	CategoryCity       = "city"
	CategoryAction     = "action"
	CategoryGame       = "game"
)

// maxEvents bounds the in-memory log, and so the log carried by save files.
// The campaign store's events table keeps the full history.
const maxEvents = 1000

// Event is a notable occurrence in the campaign.
type Event struct {
	Tick        uint64         `json:"tick"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// emit appends an event stamped with tick and returns it.
func (s *Simulation) emit(tick uint64, category, format string, args ...any) Event {
	e := Event{Tick: tick, Description: fmt.Sprintf(format, args...), Category: category}
	s.Events = append(s.Events, e)
	return e
}

// emitAll logs plain messages produced by a subsystem.
func (s *Simulation) emitAll(tick uint64, category string, msgs []string) []Event {
	out := make([]Event, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, s.emit(tick, category, "%s", m))
	}
	return out
}

// RecentEvents returns up to n of the newest events, oldest first.
func (s *Simulation) RecentEvents(n int) []Event {
	if n <= 0 || n >= len(s.Events) {
		return s.Events
	}
	return s.Events[len(s.Events)-n:]
}

// EventsSince returns events logged after tick.
func (s *Simulation) EventsSince(tick uint64) []Event {
	var out []Event
	for _, e := range s.Events {
		if e.Tick > tick {
			out = append(out, e)
		}
	}
	return out
}

func (s *Simulation) trimEvents() {
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}
}
