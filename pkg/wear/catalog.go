package wear

import (
	"strconv"
	"strings"
)

// DefaultLifeLimit is the service life in hours assigned to a part whose
// life limit is missing or unparseable.
const DefaultLifeLimit = 700.0

const (
	consumableSeparator  = ","
	lifeLimitSeparator   = ","
	descriptionSeparator = "|"
)

// DefinitionRow is an equipment definition as the persistence collaborator
// stores it: one row per equipment with delimited per-part columns.
type DefinitionRow struct {
	Company          string
	Code             string
	Description      string
	Consumables      string // comma separated part names
	LifeLimits       string // comma separated hours, aligned with Consumables
	PartDescriptions string // pipe separated, aligned with Consumables
}

// Part is one consumable of an equipment unit.
type Part struct {
	Name        string  `json:"name"`
	LifeLimit   float64 `json:"life_limit"`
	Description string  `json:"description"`
}

// Equipment is a typed equipment definition.
type Equipment struct {
	Company     string `json:"company"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Parts       []Part `json:"parts"`
}

// PartNames returns the tracked part names in definition order.
func (e Equipment) PartNames() []string {
	names := make([]string, len(e.Parts))
	for i, p := range e.Parts {
		names[i] = p.Name
	}
	return names
}

// Part looks up a tracked part by name.
func (e Equipment) Part(name string) (Part, bool) {
	for _, p := range e.Parts {
		if p.Name == name {
			return p, true
		}
	}
	return Part{}, false
}

// PartKey identifies one part of one equipment unit of one company.
type PartKey struct {
	Company string
	Code    string
	Part    string
}

func (k PartKey) String() string {
	return k.Company + "|" + k.Code + "|" + k.Part
}

// Catalog is the read-only equipment catalog built by a CatalogLoader.
type Catalog struct {
	companies    []string
	codes        map[string][]string
	equipment    map[string]map[string]*Equipment
	lifeLimits   map[string]float64
	descriptions map[PartKey]string
	defaultLimit float64
	issues       []Issue
}

// CatalogLoader turns definition rows into a Catalog.
type CatalogLoader struct {
	DefaultLifeLimit float64
}

// LoadCatalog builds a catalog using DefaultLifeLimit for missing limits.
func LoadCatalog(rows []DefinitionRow) *Catalog {
	return CatalogLoader{DefaultLifeLimit: DefaultLifeLimit}.Load(rows)
}

// Load builds the catalog from rows in iteration order.
//
// Rows with a blank company are skipped. A row with a company but a blank
// code registers the company without equipment. A repeated (company, code)
// replaces the earlier definition but keeps its position. The global
// life-limit table is last-write-wins by row order.
func (l CatalogLoader) Load(rows []DefinitionRow) *Catalog {
	defaultLimit := l.DefaultLifeLimit
	if defaultLimit <= 0 {
		defaultLimit = DefaultLifeLimit
	}

	c := &Catalog{
		codes:        map[string][]string{},
		equipment:    map[string]map[string]*Equipment{},
		lifeLimits:   map[string]float64{},
		descriptions: map[PartKey]string{},
		defaultLimit: defaultLimit,
	}

	for _, row := range rows {
		company := strings.TrimSpace(row.Company)
		code := strings.TrimSpace(row.Code)
		if company == "" {
			c.issues = append(c.issues, Issue{Kind: MalformedInput, Code: code, Field: "company", Value: row.Company})
			continue
		}

		if _, ok := c.equipment[company]; !ok {
			c.companies = append(c.companies, company)
			c.equipment[company] = map[string]*Equipment{}
		}
		if code == "" {
			continue
		}

		eq := c.buildEquipment(company, code, row)
		if prev, exists := c.equipment[company][code]; exists {
			for _, p := range prev.Parts {
				delete(c.descriptions, PartKey{Company: company, Code: code, Part: p.Name})
			}
		} else {
			c.codes[company] = append(c.codes[company], code)
		}
		c.equipment[company][code] = eq

		for _, p := range eq.Parts {
			c.lifeLimits[p.Name] = p.LifeLimit
			c.descriptions[PartKey{Company: company, Code: code, Part: p.Name}] = p.Description
		}
	}

	return c
}

func (c *Catalog) buildEquipment(company, code string, row DefinitionRow) *Equipment {
	names := splitTrim(row.Consumables, consumableSeparator)
	limits := splitTrim(row.LifeLimits, lifeLimitSeparator)
	descriptions := splitTrim(row.PartDescriptions, descriptionSeparator)

	eq := &Equipment{
		Company:     company,
		Code:        code,
		Description: strings.TrimSpace(row.Description),
	}

	seen := map[string]bool{}
	for i, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		limit := c.defaultLimit
		if i < len(limits) && limits[i] != "" {
			if v, err := strconv.ParseFloat(limits[i], 64); err == nil && v > 0 {
				limit = v
			} else {
				c.issues = append(c.issues, Issue{
					Kind: MalformedInput, Company: company, Code: code,
					Field: "life_limit:" + name, Value: limits[i],
				})
			}
		}

		description := ""
		if i < len(descriptions) {
			description = descriptions[i]
		}

		eq.Parts = append(eq.Parts, Part{Name: name, LifeLimit: limit, Description: description})
	}

	return eq
}

// Companies lists every company in first-seen order.
func (c *Catalog) Companies() []string {
	return append([]string(nil), c.companies...)
}

// HasCompany reports whether the company is known, even with zero equipment.
func (c *Catalog) HasCompany(company string) bool {
	_, ok := c.equipment[company]
	return ok
}

// EquipmentOf lists the equipment of a company in definition order.
// An unknown company or a company without equipment yields an empty list.
func (c *Catalog) EquipmentOf(company string) []Equipment {
	codes := c.codes[company]
	out := make([]Equipment, 0, len(codes))
	for _, code := range codes {
		out = append(out, *c.equipment[company][code])
	}
	return out
}

// Equipment looks up one equipment unit.
func (c *Catalog) Equipment(company, code string) (Equipment, bool) {
	eq, ok := c.equipment[company][code]
	if !ok {
		return Equipment{}, false
	}
	return *eq, true
}

// LifeLimit returns the global life limit for a part name, falling back to
// the default limit for names the catalog never saw.
func (c *Catalog) LifeLimit(part string) float64 {
	if v, ok := c.lifeLimits[part]; ok {
		return v
	}
	return c.defaultLimit
}

// ScopedLifeLimit returns the life limit defined for this exact part of this
// exact equipment, which is immune to same-name collisions across equipment.
func (c *Catalog) ScopedLifeLimit(key PartKey) float64 {
	if eq, ok := c.equipment[key.Company][key.Code]; ok {
		if p, ok := eq.Part(key.Part); ok {
			return p.LifeLimit
		}
	}
	return c.LifeLimit(key.Part)
}

// LifeLimits returns a copy of the global part-name to life-limit table.
func (c *Catalog) LifeLimits() map[string]float64 {
	out := make(map[string]float64, len(c.lifeLimits))
	for k, v := range c.lifeLimits {
		out[k] = v
	}
	return out
}

// Description returns the static description of a part, empty when unset.
func (c *Catalog) Description(key PartKey) string {
	return c.descriptions[key]
}

// DefaultLimit is the life limit used for missing or malformed values.
func (c *Catalog) DefaultLimit() float64 {
	return c.defaultLimit
}

// Issues lists the malformed fields recovered while loading.
func (c *Catalog) Issues() []Issue {
	return append([]Issue(nil), c.issues...)
}

func splitTrim(s, sep string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
