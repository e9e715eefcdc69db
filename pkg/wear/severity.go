package wear

import (
	"fmt"
)

// Tier is a severity bucket derived from remaining life. Higher is more urgent.
type Tier int

const (
	Good Tier = iota
	Warning
	Critical
	ImminentFailure
)

var tierNames = map[Tier]string{
	Good:            "good",
	Warning:         "warning",
	Critical:        "critical",
	ImminentFailure: "imminent_failure",
}

func (t Tier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

func (t Tier) MarshalText() ([]byte, error) {
	if _, ok := tierNames[t]; !ok {
		return nil, fmt.Errorf("unknown tier %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	tier, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

// ParseTier is the inverse of Tier.String.
func ParseTier(s string) (Tier, error) {
	for t, name := range tierNames {
		if name == s {
			return t, nil
		}
	}
	return Good, fmt.Errorf("unknown tier %q", s)
}

// Worst returns the most urgent tier, Good for none.
func Worst(tiers ...Tier) Tier {
	worst := Good
	for _, t := range tiers {
		if t > worst {
			worst = t
		}
	}
	return worst
}

// Bound is one row of the threshold table: a tier applies when remaining
// hours are below Hours, or equal to it when Inclusive.
type Bound struct {
	Hours     float64 `json:"hours" mapstructure:"hours"`
	Inclusive bool    `json:"inclusive" mapstructure:"inclusive"`
}

func (b Bound) matches(remaining float64) bool {
	if b.Inclusive {
		return remaining <= b.Hours
	}
	return remaining < b.Hours
}

func (b Bound) String() string {
	if b.Inclusive {
		return fmt.Sprintf("<= %g", b.Hours)
	}
	return fmt.Sprintf("< %g", b.Hours)
}

// Thresholds is the threshold table, evaluated most urgent first. Parts and
// equipment rollups use the same table.
type Thresholds struct {
	ImminentFailure Bound `json:"imminent_failure" mapstructure:"imminent_failure"`
	Critical        Bound `json:"critical" mapstructure:"critical"`
	Warning         Bound `json:"warning" mapstructure:"warning"`
}

// DefaultThresholds is the production policy: under 24 hours remaining is
// imminent failure, up to 192 critical, up to 360 warning.
var DefaultThresholds = Thresholds{
	ImminentFailure: Bound{Hours: 24, Inclusive: false},
	Critical:        Bound{Hours: 192, Inclusive: true},
	Warning:         Bound{Hours: 360, Inclusive: true},
}

// Validate checks that the bounds do not decrease with falling urgency.
func (th Thresholds) Validate() error {
	if th.ImminentFailure.Hours > th.Critical.Hours {
		return fmt.Errorf("%w: imminent failure %s above critical %s", ErrInvalidThresholds, th.ImminentFailure, th.Critical)
	}
	if th.Critical.Hours > th.Warning.Hours {
		return fmt.Errorf("%w: critical %s above warning %s", ErrInvalidThresholds, th.Critical, th.Warning)
	}
	return nil
}

// Classify returns the tier and the remaining hours, which may be negative.
func (th Thresholds) Classify(hoursUsed, lifeLimit float64) (Tier, float64) {
	remaining := lifeLimit - hoursUsed
	return th.TierOf(remaining), remaining
}

// TierOf maps remaining hours to a tier.
func (th Thresholds) TierOf(remaining float64) Tier {
	switch {
	case th.ImminentFailure.matches(remaining):
		return ImminentFailure
	case th.Critical.matches(remaining):
		return Critical
	case th.Warning.matches(remaining):
		return Warning
	default:
		return Good
	}
}

// Classify uses DefaultThresholds.
func Classify(hoursUsed, lifeLimit float64) (Tier, float64) {
	return DefaultThresholds.Classify(hoursUsed, lifeLimit)
}
