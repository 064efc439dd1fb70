// README: Read-only rate table consumed by the settlement engine.
package rates

import (
	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp/internal/modules/regulation"
)

// Territory distinguishes the two tax-exempt threshold columns.
type Territory string

const (
	TerritoryHome   Territory = "home"
	TerritoryAbroad Territory = "abroad"
)

// CountryRates holds the per-day meal rate and per-night lodging cap for one
// country under one regulation.
type CountryRates struct {
	Meal       decimal.Decimal `json:"meal"`
	LodgingCap decimal.Decimal `json:"lodging_cap"`
}

// ExemptLimits are the daily tax-exempt meal thresholds for a territory.
type ExemptLimits struct {
	WithoutOvernight decimal.Decimal `json:"without_overnight"`
	WithOvernight    decimal.Decimal `json:"with_overnight"`
}

// Table is the full reference dataset. It is a plain value: built once,
// passed into every calculation, never mutated during one.
type Table struct {
	HomeCountry         string                                            `json:"home_country"`
	Countries           map[regulation.Regulation]map[string]CountryRates `json:"countries"`
	Vehicles            map[string]decimal.Decimal                        `json:"vehicles"`
	Exempt              map[Territory]ExemptLimits                        `json:"exempt"`
	StatuteProjectTypes []string                                          `json:"statute_project_types"`
}

// CountryRates looks up the rates for a country under a regulation.
func (t *Table) CountryRates(reg regulation.Regulation, country string) (CountryRates, bool) {
	byCountry, ok := t.Countries[reg]
	if !ok {
		return CountryRates{}, false
	}
	r, ok := byCountry[country]
	return r, ok
}

// HomeRates returns the home-country rates, which always exist in a valid
// table.
func (t *Table) HomeRates(reg regulation.Regulation) (CountryRates, bool) {
	return t.CountryRates(reg, t.HomeCountry)
}

// VehicleRate returns the per-km rate for a vehicle class.
func (t *Table) VehicleRate(class string) (decimal.Decimal, bool) {
	r, ok := t.Vehicles[class]
	return r, ok
}

// ExemptFor returns the threshold pair for a territory.
func (t *Table) ExemptFor(territory Territory) ExemptLimits {
	return t.Exempt[territory]
}

// CountryNames lists every country known under a regulation, home first.
func (t *Table) CountryNames(reg regulation.Regulation) []string {
	byCountry := t.Countries[reg]
	names := make([]string, 0, len(byCountry))
	if _, ok := byCountry[t.HomeCountry]; ok {
		names = append(names, t.HomeCountry)
	}
	for name := range byCountry {
		if name != t.HomeCountry {
			names = append(names, name)
		}
	}
	return names
}
