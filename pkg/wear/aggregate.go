package wear

import "github.com/shopspring/decimal"

// WearState holds hours accumulated since the last replacement for a fixed
// set of parts. Accumulation is exact decimal arithmetic so repeated
// fractional hours land on threshold boundaries reproducibly.
type WearState struct {
	parts []string
	hours map[string]decimal.Decimal
}

// NewWearState starts every part at zero hours.
func NewWearState(parts []string) *WearState {
	s := &WearState{hours: make(map[string]decimal.Decimal, len(parts))}
	for _, p := range parts {
		if _, dup := s.hours[p]; dup {
			continue
		}
		s.parts = append(s.parts, p)
		s.hours[p] = decimal.Zero
	}
	return s
}

// Apply folds one event: replaced parts reset to zero, every other tracked
// part accumulates the event's hours. Replaced names that are not tracked
// are ignored.
func (s *WearState) Apply(ev UsageEvent) {
	for _, p := range s.parts {
		if ev.Replaces(p) {
			s.hours[p] = decimal.Zero
			continue
		}
		s.hours[p] = s.hours[p].Add(ev.Hours)
	}
}

// ApplyAll folds events in order.
func (s *WearState) ApplyAll(events []UsageEvent) *WearState {
	for _, ev := range events {
		s.Apply(ev)
	}
	return s
}

// Hours returns the accumulated hours for part, zero when untracked.
func (s *WearState) Hours(part string) float64 {
	return s.hours[part].InexactFloat64()
}

// Exact returns the accumulated hours for part without float conversion.
func (s *WearState) Exact(part string) decimal.Decimal {
	return s.hours[part]
}

// Parts lists the tracked parts in the order given to NewWearState.
func (s *WearState) Parts() []string {
	return append([]string(nil), s.parts...)
}

// Snapshot copies the current hours of every tracked part.
func (s *WearState) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(s.hours))
	for p, h := range s.hours {
		out[p] = h.InexactFloat64()
	}
	return out
}

// Clone returns an independent copy, usable as a checkpoint.
func (s *WearState) Clone() *WearState {
	c := &WearState{
		parts: append([]string(nil), s.parts...),
		hours: make(map[string]decimal.Decimal, len(s.hours)),
	}
	for p, h := range s.hours {
		c.hours[p] = h
	}
	return c
}

// ComputeWear recomputes per-part hours since last replacement from the
// full event history.
func ComputeWear(events []UsageEvent, parts []string) map[string]float64 {
	return NewWearState(parts).ApplyAll(events).Snapshot()
}
