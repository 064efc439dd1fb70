// README: Decoder for the legacy index-aligned rate document.
package rates

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp/internal/modules/regulation"
)

// legacyDoc mirrors the historical datos.json layout: a country list plus,
// per regulation, parallel arrays of lodging caps and meal rates aligned by
// country index.
type legacyDoc struct {
	Countries []string `json:"paises"`
	Decree    struct {
		Lodging []decimal.Decimal `json:"alojamiento"`
		Meal    []decimal.Decimal `json:"manutencion"`
	} `json:"decreto42_2025"`
	Statute struct {
		Lodging []decimal.Decimal `json:"alojamiento"`
		Meal    []decimal.Decimal `json:"manutencion"`
	} `json:"rd462_2002"`
	VehicleRates map[string]decimal.Decimal `json:"kmTarifas"`
	ExemptLimits struct {
		Home   []decimal.Decimal `json:"espana"`
		Abroad []decimal.Decimal `json:"extranjero"`
	} `json:"limitesIRPF"`
	StatuteProjectTypes []string `json:"tiposProyectoRD462"`
}

// DecodeLegacy converts the index-aligned document into a country-keyed
// Table, validating array alignment. Index 0 is the home country.
func DecodeLegacy(data []byte) (*Table, error) {
	var doc legacyDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("legacy rates: %w", err)
	}
	if len(doc.Countries) == 0 {
		return nil, fmt.Errorf("legacy rates: empty country list")
	}
	n := len(doc.Countries)
	for name, got := range map[string]int{
		"decreto42_2025.alojamiento": len(doc.Decree.Lodging),
		"decreto42_2025.manutencion": len(doc.Decree.Meal),
		"rd462_2002.alojamiento":     len(doc.Statute.Lodging),
		"rd462_2002.manutencion":     len(doc.Statute.Meal),
	} {
		if got != n {
			return nil, fmt.Errorf("legacy rates: %s has %d entries, country list has %d", name, got, n)
		}
	}
	if len(doc.ExemptLimits.Home) != 2 || len(doc.ExemptLimits.Abroad) != 2 {
		return nil, fmt.Errorf("legacy rates: limitesIRPF must have [without, with] per territory")
	}

	t := &Table{
		HomeCountry: doc.Countries[0],
		Countries: map[regulation.Regulation]map[string]CountryRates{
			regulation.StateDecree:     make(map[string]CountryRates, n),
			regulation.NationalStatute: make(map[string]CountryRates, n),
		},
		Vehicles: doc.VehicleRates,
		Exempt: map[Territory]ExemptLimits{
			TerritoryHome:   {WithoutOvernight: doc.ExemptLimits.Home[0], WithOvernight: doc.ExemptLimits.Home[1]},
			TerritoryAbroad: {WithoutOvernight: doc.ExemptLimits.Abroad[0], WithOvernight: doc.ExemptLimits.Abroad[1]},
		},
		StatuteProjectTypes: doc.StatuteProjectTypes,
	}
	for i, country := range doc.Countries {
		t.Countries[regulation.StateDecree][country] = CountryRates{
			Meal:       doc.Decree.Meal[i],
			LodgingCap: doc.Decree.Lodging[i],
		}
		t.Countries[regulation.NationalStatute][country] = CountryRates{
			Meal:       doc.Statute.Meal[i],
			LodgingCap: doc.Statute.Lodging[i],
		}
	}
	return t, nil
}
