package wear

import (
	"context"
	"time"
)

// PartState is the derived wear of one part.
type PartState struct {
	Company        string  `json:"company"`
	Code           string  `json:"code"`
	Part           string  `json:"part"`
	HoursUsed      float64 `json:"hours_used"`
	LifeLimit      float64 `json:"life_limit"`
	HoursRemaining float64 `json:"hours_remaining"`
	Tier           Tier    `json:"tier"`
	Description    string  `json:"description"`
}

func (p PartState) Key() PartKey {
	return PartKey{Company: p.Company, Code: p.Code, Part: p.Part}
}

// EquipmentState is the derived wear of one equipment unit with its rollup tier.
type EquipmentState struct {
	Company     string      `json:"company"`
	Code        string      `json:"code"`
	Description string      `json:"description"`
	Tier        Tier        `json:"tier"`
	Parts       []PartState `json:"parts"`
}

// Evaluator derives wear states from a catalog and an event history.
type Evaluator struct {
	Catalog    *Catalog
	Thresholds Thresholds
	Now        func() time.Time
}

func NewEvaluator(catalog *Catalog, thresholds Thresholds) *Evaluator {
	return &Evaluator{Catalog: catalog, Thresholds: thresholds, Now: time.Now}
}

// EquipmentState recomputes the state of one equipment from the full
// history. Events of other equipment are ignored. An unknown equipment
// yields an empty Good state and an UnknownReference issue.
func (e *Evaluator) EquipmentState(company, code string, events []UsageEvent) (EquipmentState, []Issue) {
	var issues []Issue

	eq, ok := e.Catalog.Equipment(company, code)
	if !ok {
		issues = append(issues, Issue{Kind: UnknownReference, Company: company, Code: code, Field: "equipment", Value: code})
		return EquipmentState{Company: company, Code: code, Tier: Good}, issues
	}

	wear := NewWearState(eq.PartNames())
	for _, ev := range events {
		if !ev.For(company, code) {
			continue
		}
		if ev.Malformed {
			issues = append(issues, Issue{Kind: MalformedInput, Company: company, Code: code, Field: "hours_of_use", Value: ev.RawHours})
		}
		for _, name := range ev.ReplacedNames() {
			if _, tracked := eq.Part(name); !tracked {
				issues = append(issues, Issue{Kind: UnknownReference, Company: company, Code: code, Field: "replaced_part", Value: name})
			}
		}
		wear.Apply(ev)
	}

	state := EquipmentState{
		Company:     company,
		Code:        code,
		Description: eq.Description,
		Parts:       make([]PartState, 0, len(eq.Parts)),
	}
	tiers := make([]Tier, 0, len(eq.Parts))
	for _, p := range eq.Parts {
		key := PartKey{Company: company, Code: code, Part: p.Name}
		used := wear.Hours(p.Name)
		limit := e.Catalog.ScopedLifeLimit(key)
		tier, remaining := e.Thresholds.Classify(used, limit)

		state.Parts = append(state.Parts, PartState{
			Company:        company,
			Code:           code,
			Part:           p.Name,
			HoursUsed:      used,
			LifeLimit:      limit,
			HoursRemaining: remaining,
			Tier:           tier,
			Description:    e.Catalog.Description(key),
		})
		tiers = append(tiers, tier)
	}
	state.Tier = Worst(tiers...)

	return state, issues
}

// CompanyStates evaluates every equipment of a company in catalog order.
func (e *Evaluator) CompanyStates(company string, events []UsageEvent) ([]EquipmentState, []Issue) {
	var (
		states []EquipmentState
		issues []Issue
	)
	for _, eq := range e.Catalog.EquipmentOf(company) {
		st, iss := e.EquipmentState(company, eq.Code, events)
		states = append(states, st)
		issues = append(issues, iss...)
	}
	return states, issues
}

// Decide runs every part of state through the deduplicator and renders an
// alert for each part that must be notified. The transition is recorded
// whether or not the alert is later delivered.
func (e *Evaluator) Decide(dedup *Deduplicator, state EquipmentState) []Alert {
	var alerts []Alert
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	for _, p := range state.Parts {
		if !dedup.ShouldNotify(p.Key(), p.Tier) {
			continue
		}
		alerts = append(alerts, Alert{
			Company:        p.Company,
			Code:           p.Code,
			Part:           p.Part,
			HoursRemaining: p.HoursRemaining,
			Description:    p.Description,
			Tier:           p.Tier,
			RaisedAt:       now(),
		})
	}
	return alerts
}

// Report is the outcome of one evaluation cycle for one equipment.
type Report struct {
	Equipment  EquipmentState `json:"equipment"`
	Alerts     []Alert        `json:"alerts"`
	Issues     []Issue        `json:"issues"`
	Deliveries []Delivery     `json:"-"`
}

// Evaluate computes states and alert decisions. Nothing is sent.
func (e *Evaluator) Evaluate(dedup *Deduplicator, company, code string, events []UsageEvent) *Report {
	state, issues := e.EquipmentState(company, code, events)
	return &Report{
		Equipment: state,
		Alerts:    e.Decide(dedup, state),
		Issues:    issues,
	}
}

// Deliver sends the decided alerts and records each outcome on the report.
func (r *Report) Deliver(ctx context.Context, n Notifier) []Delivery {
	r.Deliveries = Deliver(ctx, n, r.Alerts)
	return r.Deliveries
}

// Warnings lists the deliveries that failed.
func (r *Report) Warnings() []Delivery {
	var failed []Delivery
	for _, d := range r.Deliveries {
		if !d.Delivered() {
			failed = append(failed, d)
		}
	}
	return failed
}
