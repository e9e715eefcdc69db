package wear

import (
	"errors"
	"fmt"
)

// IssueKind classifies an input problem the core recovered from.
type IssueKind string

const (
	// MalformedInput is a field that failed to parse and was replaced by a default.
	MalformedInput IssueKind = "malformed_input"
	// UnknownReference is a name that points at nothing tracked and was ignored.
	UnknownReference IssueKind = "unknown_reference"
)

// Issue records one recovered input problem. Issues never abort a computation;
// they are surfaced so the caller can log or display them.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Company string    `json:"company"`
	Code    string    `json:"code"`
	Field   string    `json:"field"`
	Value   string    `json:"value"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s/%s %s=%q", i.Kind, i.Company, i.Code, i.Field, i.Value)
}

var (
	ErrNoNotifier        = errors.New("no notifier configured")
	ErrInvalidThresholds = errors.New("invalid severity thresholds")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrPartNotFound      = errors.New("part not found")
	ErrInvalidLifeLimit  = errors.New("life limit must be positive")
	ErrHoursOutOfRange   = errors.New("hours of use out of range")
)
