// README: Batch calculator; settles every trip of a JSON expedient file and prints a table.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp/internal/modules/rates"
	"github.com/clb2clb2/sgtri-desp/internal/modules/settlement"
	"github.com/clb2clb2/sgtri-desp/internal/types"
)

type tripFile struct {
	Trips []tripRow `json:"trips"`
}

// tripRow mirrors the form fields: dd/mm/yyyy dates, hh:mm times, amounts
// as numbers or locale strings.
type tripRow struct {
	DepartureDate string `json:"departure_date"`
	DepartureTime string `json:"departure_time"`
	ReturnDate    string `json:"return_date"`
	ReturnTime    string `json:"return_time"`

	CrossingOut string `json:"crossing_out,omitempty"`
	CrossingIn  string `json:"crossing_in,omitempty"`

	Country     string `json:"country"`
	ProjectType string `json:"project_type"`

	DistanceKm   types.LooseAmount  `json:"distance_km"`
	VehicleClass string             `json:"vehicle_class"`
	MileageRate  *types.LooseAmount `json:"mileage_rate,omitempty"`

	LodgingAmount types.LooseAmount   `json:"lodging_amount"`
	OtherExpenses []types.LooseAmount `json:"other_expenses,omitempty"`

	DinnerReceipt          bool `json:"dinner_receipt"`
	ExcludeMeals           bool `json:"exclude_meals"`
	ExcludeLodging         bool `json:"exclude_lodging"`
	JustifyLastNight       bool `json:"justify_last_night"`
	ForceEventualResidence bool `json:"force_eventual_residence"`
	HomeRatesForUnknown    bool `json:"home_rates_for_unknown"`
}

func (r tripRow) toInput() (settlement.TripInput, error) {
	var in settlement.TripInput

	dep, err := instant(r.DepartureDate, r.DepartureTime)
	if err != nil {
		return in, fmt.Errorf("departure: %w", err)
	}
	ret, err := instant(r.ReturnDate, r.ReturnTime)
	if err != nil {
		return in, fmt.Errorf("return: %w", err)
	}
	in.Departure = dep
	in.Return = ret

	if r.CrossingOut != "" {
		d, err := types.ParseDayMonthYear(r.CrossingOut)
		if err != nil {
			return in, fmt.Errorf("crossing out: %w", err)
		}
		in.CrossingOut = &d
	}
	if r.CrossingIn != "" {
		d, err := types.ParseDayMonthYear(r.CrossingIn)
		if err != nil {
			return in, fmt.Errorf("crossing in: %w", err)
		}
		in.CrossingIn = &d
	}

	in.DestinationCountry = r.Country
	in.ProjectType = r.ProjectType
	in.DistanceKm = r.DistanceKm.Decimal
	in.VehicleClass = r.VehicleClass
	if r.MileageRate != nil {
		rate := r.MileageRate.Decimal
		in.MileageRateOverride = &rate
	}
	in.LodgingClaimed = r.LodgingAmount.Decimal

	other := decimal.Zero
	for _, e := range r.OtherExpenses {
		other = other.Add(e.Decimal)
	}
	in.OtherExpenses = other

	in.Flags = settlement.Flags{
		DinnerReceipt:          r.DinnerReceipt,
		ExcludeMeals:           r.ExcludeMeals,
		ExcludeLodging:         r.ExcludeLodging,
		JustifyLastNight:       r.JustifyLastNight,
		ForceEventualResidence: r.ForceEventualResidence,
	}
	in.HomeRatesForUnknown = r.HomeRatesForUnknown
	return in, nil
}

func instant(date, clock string) (time.Time, error) {
	d, err := types.ParseDayMonthYear(date)
	if err != nil {
		return time.Time{}, err
	}
	c, err := types.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return types.At(d, c), nil
}

func main() {
	var (
		file      = flag.String("f", "", "expedient JSON file (required)")
		ratesFile = flag.String("rates", "", "optional legacy rate file")
		asJSON    = flag.Bool("json", false, "print full results as JSON")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: desp-calc -f expedient.json [-rates datos.json] [-json]")
		os.Exit(2)
	}

	tbl := rates.Default()
	if *ratesFile != "" {
		data, err := os.ReadFile(*ratesFile)
		if err != nil {
			fatal(err)
		}
		if tbl, err = rates.DecodeLegacy(data); err != nil {
			fatal(err)
		}
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fatal(err)
	}
	var tf tripFile
	if err := json.Unmarshal(data, &tf); err != nil {
		fatal(fmt.Errorf("%s: %w", *file, err))
	}
	if len(tf.Trips) == 0 {
		fatal(fmt.Errorf("%s: no trips", *file))
	}

	var results []*settlement.Result
	for i, row := range tf.Trips {
		in, err := row.toInput()
		if err != nil {
			fatal(fmt.Errorf("trip %d: %w", i+1, err))
		}
		res, err := settlement.Settle(in, tbl)
		if err != nil {
			fatal(fmt.Errorf("trip %d: %w", i+1, err))
		}
		results = append(results, res)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fatal(err)
		}
		return
	}

	printTable(os.Stdout, tf.Trips, results)
}

func printTable(out *os.File, trips []tripRow, results []*settlement.Result) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tDATES\tCOUNTRY\tUNITS\tMEAL\tNIGHTS\tLODGING\tKM\tOTHER\tIRPF\tTOTAL")

	totals := struct {
		meal, lodging, mileage, other, withheld, total decimal.Decimal
	}{decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero}

	for i, res := range results {
		dates := fmt.Sprintf("%s-%s", trips[i].DepartureDate, trips[i].ReturnDate)
		fmt.Fprintf(w, "%d\t%s\t%s\t%.1f\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1, dates, trips[i].Country,
			res.MealUnits, res.MealAmount,
			res.Nights, res.LodgingAmount,
			res.MileageAmount, res.OtherExpenses,
			res.TaxWithheld, res.Total)

		totals.meal = totals.meal.Add(res.MealAmount)
		totals.lodging = totals.lodging.Add(res.LodgingAmount)
		totals.mileage = totals.mileage.Add(res.MileageAmount)
		totals.other = totals.other.Add(res.OtherExpenses)
		totals.withheld = totals.withheld.Add(res.TaxWithheld)
		totals.total = totals.total.Add(res.Total)
	}

	fmt.Fprintf(w, "\t\tTOTAL\t\t%s\t\t%s\t%s\t%s\t%s\t%s\n",
		totals.meal, totals.lodging, totals.mileage,
		totals.other, totals.withheld, totals.total)
	_ = w.Flush()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "desp-calc:", err)
	os.Exit(1)
}
