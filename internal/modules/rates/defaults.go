// README: Built-in fallback rate table for a minimal country set.
package rates

import (
	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp/internal/modules/regulation"
	"github.com/clb2clb2/sgtri-desp/internal/types"
)

// HomeCountry is the territory the traveller departs from and returns to.
const HomeCountry = "España"

// Vehicle classes accepted by the mileage calculator.
const (
	VehicleCar        = "coche"
	VehicleMotorcycle = "motocicleta"
)

// Default builds the built-in table used when no external configuration is
// available. Figures follow the published Decreto 42/2025 and R.D. 462/2002
// annexes for the countries below.
func Default() *Table {
	return &Table{
		HomeCountry: HomeCountry,
		Countries: map[regulation.Regulation]map[string]CountryRates{
			regulation.StateDecree: {
				"España":   {Meal: types.Euros(53.34), LodgingCap: types.Euros(102.56)},
				"Alemania": {Meal: types.Euros(91.35), LodgingCap: types.Euros(155.66)},
				"Andorra":  {Meal: types.Euros(91.35), LodgingCap: types.Euros(54.69)},
				"Francia":  {Meal: types.Euros(91.35), LodgingCap: types.Euros(153.84)},
				"Japón":    {Meal: types.Euros(113.61), LodgingCap: types.Euros(182.31)},
			},
			regulation.NationalStatute: {
				"España":   {Meal: types.Euros(37.40), LodgingCap: types.Euros(65.97)},
				"Alemania": {Meal: types.Euros(59.50), LodgingCap: types.Euros(132.82)},
				"Andorra":  {Meal: types.Euros(37.86), LodgingCap: types.Euros(46.88)},
				"Francia":  {Meal: types.Euros(66.11), LodgingCap: types.Euros(120.20)},
				"Japón":    {Meal: types.Euros(83.46), LodgingCap: types.Euros(130.89)},
			},
		},
		Vehicles: map[string]decimal.Decimal{
			VehicleCar:        types.Euros(0.26),
			VehicleMotorcycle: types.Euros(0.106),
		},
		Exempt: map[Territory]ExemptLimits{
			TerritoryHome:   {WithoutOvernight: types.Euros(26.67), WithOvernight: types.Euros(53.34)},
			TerritoryAbroad: {WithoutOvernight: types.Euros(48.08), WithOvernight: types.Euros(91.35)},
		},
		StatuteProjectTypes: []string{"G24", "PEI", "NAL"},
	}
}
