package rates

import (
	"encoding/json"
	"testing"

	"github.com/clb2clb2/sgtri-desp/internal/modules/regulation"
)

func TestDefaultTable(t *testing.T) {
	tbl := Default()

	if tbl.HomeCountry != "España" {
		t.Fatalf("home country = %q", tbl.HomeCountry)
	}

	r, ok := tbl.CountryRates(regulation.StateDecree, "España")
	if !ok {
		t.Fatal("missing home rates under decree")
	}
	if r.Meal.String() != "53.34" || r.LodgingCap.String() != "102.56" {
		t.Errorf("decree home rates = %s / %s", r.Meal, r.LodgingCap)
	}

	r, ok = tbl.CountryRates(regulation.NationalStatute, "España")
	if !ok {
		t.Fatal("missing home rates under statute")
	}
	if r.Meal.String() != "37.4" || r.LodgingCap.String() != "65.97" {
		t.Errorf("statute home rates = %s / %s", r.Meal, r.LodgingCap)
	}

	if _, ok := tbl.CountryRates(regulation.StateDecree, "Atlantis"); ok {
		t.Error("unexpected rates for unknown country")
	}

	if rate, ok := tbl.VehicleRate(VehicleCar); !ok || rate.String() != "0.26" {
		t.Errorf("car rate = %s (ok=%v)", rate, ok)
	}
	if rate, ok := tbl.VehicleRate(VehicleMotorcycle); !ok || rate.String() != "0.106" {
		t.Errorf("motorcycle rate = %s (ok=%v)", rate, ok)
	}
	if _, ok := tbl.VehicleRate("patinete"); ok {
		t.Error("unexpected rate for unknown vehicle class")
	}

	home := tbl.ExemptFor(TerritoryHome)
	if home.WithOvernight.String() != "53.34" || home.WithoutOvernight.String() != "26.67" {
		t.Errorf("home exempt limits = %s / %s", home.WithoutOvernight, home.WithOvernight)
	}
	abroad := tbl.ExemptFor(TerritoryAbroad)
	if abroad.WithOvernight.String() != "91.35" || abroad.WithoutOvernight.String() != "48.08" {
		t.Errorf("abroad exempt limits = %s / %s", abroad.WithoutOvernight, abroad.WithOvernight)
	}
}

func TestCountryNamesHomeFirst(t *testing.T) {
	names := Default().CountryNames(regulation.StateDecree)
	if len(names) != 5 {
		t.Fatalf("got %d countries", len(names))
	}
	if names[0] != "España" {
		t.Errorf("first country = %q, want home country", names[0])
	}
}

const legacyFixture = `{
	"paises": ["España", "Alemania", "Andorra"],
	"decreto42_2025": {
		"alojamiento": [102.56, 155.66, 54.69],
		"manutencion": [53.34, 91.35, 91.35]
	},
	"rd462_2002": {
		"alojamiento": [65.97, 132.82, 46.88],
		"manutencion": [37.40, 59.50, 37.86]
	},
	"kmTarifas": {"coche": 0.26, "motocicleta": 0.106},
	"limitesIRPF": {"espana": [26.67, 53.34], "extranjero": [48.08, 91.35]},
	"tiposProyectoRD462": ["G24", "PEI", "NAL"]
}`

func TestDecodeLegacy(t *testing.T) {
	tbl, err := DecodeLegacy([]byte(legacyFixture))
	if err != nil {
		t.Fatal(err)
	}
	if tbl.HomeCountry != "España" {
		t.Errorf("home country = %q", tbl.HomeCountry)
	}
	r, ok := tbl.CountryRates(regulation.NationalStatute, "Alemania")
	if !ok {
		t.Fatal("missing Alemania under statute")
	}
	if r.Meal.String() != "59.5" || r.LodgingCap.String() != "132.82" {
		t.Errorf("Alemania statute rates = %s / %s", r.Meal, r.LodgingCap)
	}
	if got := tbl.ExemptFor(TerritoryAbroad).WithOvernight.String(); got != "91.35" {
		t.Errorf("abroad with-overnight limit = %s", got)
	}
	if len(tbl.StatuteProjectTypes) != 3 {
		t.Errorf("statute project types = %v", tbl.StatuteProjectTypes)
	}
}

func TestDecodeLegacyMisaligned(t *testing.T) {
	doc := `{
		"paises": ["España", "Alemania"],
		"decreto42_2025": {"alojamiento": [102.56], "manutencion": [53.34, 91.35]},
		"rd462_2002": {"alojamiento": [65.97, 132.82], "manutencion": [37.40, 59.50]},
		"limitesIRPF": {"espana": [26.67, 53.34], "extranjero": [48.08, 91.35]}
	}`
	if _, err := DecodeLegacy([]byte(doc)); err == nil {
		t.Fatal("expected alignment error")
	}
}

func TestDecodeLegacyEmpty(t *testing.T) {
	if _, err := DecodeLegacy([]byte(`{}`)); err == nil {
		t.Fatal("expected error for empty country list")
	}
}

// The cache stores the table as JSON; the round trip must preserve decimal
// values exactly.
func TestTableJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Default())
	if err != nil {
		t.Fatal(err)
	}
	var got Table
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	r, ok := got.CountryRates(regulation.StateDecree, "Japón")
	if !ok {
		t.Fatal("missing Japón after round trip")
	}
	if r.Meal.String() != "113.61" || r.LodgingCap.String() != "182.31" {
		t.Errorf("Japón rates after round trip = %s / %s", r.Meal, r.LodgingCap)
	}
	if !got.Vehicles[VehicleMotorcycle].Equal(Default().Vehicles[VehicleMotorcycle]) {
		t.Error("vehicle rate changed in round trip")
	}
}
