package wear

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const replacedPartsSeparator = ";"

// Exponent bounds keep rescaling of parsed hours cheap.
const (
	minHoursExponent = -16
	maxHoursExponent = 6
)

// MaxEventHours caps the hours one usage event may log.
var MaxEventHours = decimal.NewFromInt(1_000_000)

// ParseHours parses an hours-of-use value. Blank is zero. Negative values,
// values above MaxEventHours and values with an extreme exponent fail.
func ParseHours(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}

	h, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if exp := h.Exponent(); exp < minHoursExponent || exp > maxHoursExponent {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrHoursOutOfRange, raw)
	}
	if h.IsNegative() || h.GreaterThan(MaxEventHours) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrHoursOutOfRange, raw)
	}
	return h, nil
}

// UsageRow is a usage log entry as recorded by the persistence collaborator.
// Hours are kept as text because malformed entries must not break parsing.
type UsageRow struct {
	Company       string
	Code          string
	HoursOfUse    string
	ReplacedParts string // semicolon separated
	Notes         string
}

// UsageEvent is a parsed usage log entry.
type UsageEvent struct {
	Company  string
	Code     string
	Hours    decimal.Decimal
	Replaced map[string]struct{}
	Notes    string

	// RawHours is set only when HoursOfUse failed to parse and Hours was zeroed.
	RawHours  string
	Malformed bool
}

// ParseUsage converts a row into an event. Hours rejected by ParseHours
// become zero and mark the event Malformed; they are never an error.
func ParseUsage(row UsageRow) UsageEvent {
	ev := UsageEvent{
		Company:  strings.TrimSpace(row.Company),
		Code:     strings.TrimSpace(row.Code),
		Hours:    decimal.Zero,
		Replaced: map[string]struct{}{},
		Notes:    strings.TrimSpace(row.Notes),
	}

	if h, err := ParseHours(row.HoursOfUse); err != nil {
		ev.Malformed = true
		ev.RawHours = row.HoursOfUse
	} else {
		ev.Hours = h
	}

	for _, name := range strings.Split(row.ReplacedParts, replacedPartsSeparator) {
		if name = strings.TrimSpace(name); name != "" {
			ev.Replaced[name] = struct{}{}
		}
	}

	return ev
}

// ParseUsageRows parses rows in order.
func ParseUsageRows(rows []UsageRow) []UsageEvent {
	events := make([]UsageEvent, len(rows))
	for i, row := range rows {
		events[i] = ParseUsage(row)
	}
	return events
}

// NewUsageEvent builds a well-formed event directly from typed values.
func NewUsageEvent(company, code string, hours float64, replaced ...string) UsageEvent {
	ev := UsageEvent{
		Company:  company,
		Code:     code,
		Hours:    decimal.NewFromFloat(hours),
		Replaced: map[string]struct{}{},
	}
	for _, name := range replaced {
		ev.Replaced[name] = struct{}{}
	}
	return ev
}

// Replaces reports whether the event logs a replacement of part.
func (ev UsageEvent) Replaces(part string) bool {
	_, ok := ev.Replaced[part]
	return ok
}

// ReplacedNames lists the replaced part names sorted.
func (ev UsageEvent) ReplacedNames() []string {
	names := make([]string, 0, len(ev.Replaced))
	for name := range ev.Replaced {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// For reports whether the event belongs to the given equipment.
func (ev UsageEvent) For(company, code string) bool {
	return ev.Company == company && ev.Code == code
}
