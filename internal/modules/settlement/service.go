// README: Settlement aggregator; drives segmentation and the calculators.
package settlement

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp/internal/modules/rates"
	"github.com/clb2clb2/sgtri-desp/internal/modules/regulation"
	"github.com/clb2clb2/sgtri-desp/internal/types"
)

// RatesProvider hands the service a rate table per calculation.
type RatesProvider interface {
	Table(ctx context.Context) (*rates.Table, error)
}

type Service struct {
	rates RatesProvider
}

func NewService(p RatesProvider) *Service {
	return &Service{rates: p}
}

// Settle fetches the current rate table and computes the settlement.
func (s *Service) Settle(ctx context.Context, in TripInput) (*Result, error) {
	tbl, err := s.rates.Table(ctx)
	if err != nil {
		return nil, fmt.Errorf("settlement: rates: %w", err)
	}
	return Settle(in, tbl)
}

// Eventual-residence duration thresholds, calendar months.
const (
	homeResidenceMonths   = 1
	abroadResidenceMonths = 3
)

var residenceFactor = types.Euros(0.8)

// Settle is the pure engine: regulation, segmentation, per-segment meal and
// lodging, mileage, withholding, totals. It reads only its arguments and
// returns either a complete result or an error, never a partial one.
func Settle(in TripInput, tbl *rates.Table) (*Result, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	reg := regulation.Resolve(in.ProjectType, tbl.StatuteProjectTypes)

	eventual, factor := eventualResidence(in, tbl.HomeCountry)

	segs := buildSegments(in, tbl.HomeCountry)

	res := &Result{
		Regulation:        reg,
		EventualResidence: eventual,
		ResidenceFactor:   factor,
		LodgingClaimed:    types.Round2(in.LodgingClaimed),
		OtherExpenses:     types.Round2(in.OtherExpenses),
		MealAmount:        decimal.Zero,
		LodgingCap:        decimal.Zero,
		TaxWithheld:       decimal.Zero,
	}

	for _, seg := range segs {
		cr, ok := tbl.CountryRates(reg, seg.Country)
		if !ok {
			if !in.HomeRatesForUnknown {
				return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, seg.Country)
			}
			cr, ok = tbl.HomeRates(reg)
			if !ok {
				return nil, fmt.Errorf("%w: no home rates in table", ErrUnknownCountry)
			}
		}

		units, days := mealUnits(seg, reg, in.Flags)
		n, ambiguous := nights(seg, in.Flags)

		sr := SegmentResult{
			Country:            seg.Country,
			Home:               seg.Home,
			Start:              seg.Start,
			End:                seg.End,
			Final:              seg.Final,
			MealUnits:          units,
			MealRate:           cr.Meal,
			MealAmount:         mealAmount(units, cr.Meal, factor),
			Nights:             n,
			NightRate:          cr.LodgingCap,
			LodgingCap:         lodgingCap(n, cr.LodgingCap),
			LastNightAmbiguous: ambiguous,
			days:               days,
		}
		res.Segments = append(res.Segments, sr)

		res.MealUnits += units
		res.MealAmount = res.MealAmount.Add(sr.MealAmount)
		res.Nights += n
		res.LodgingCap = res.LodgingCap.Add(sr.LodgingCap)
		if ambiguous {
			res.LastNightAmbiguous = true
		}
	}

	res.LodgingAmount, res.LodgingExceedsCap = reimburseLodging(in.LodgingClaimed, res.LodgingCap, factor, in.Flags)

	mileage, err := mileageAmount(in, tbl)
	if err != nil {
		return nil, err
	}
	res.MileageAmount = mileage

	res.TaxWithheld = withholding(res.Segments, tbl, factor, dateOf(in.Return), in.Flags)

	res.Total = res.MealAmount.
		Add(res.LodgingAmount).
		Add(res.MileageAmount).
		Add(res.OtherExpenses)

	return res, nil
}

// eventualResidence decides the trip-wide 0.8 discount: stays beyond one
// calendar month at home, or three abroad, or an explicit override.
func eventualResidence(in TripInput, homeCountry string) (bool, decimal.Decimal) {
	if in.Flags.ForceEventualResidence {
		return true, residenceFactor
	}
	months := abroadResidenceMonths
	if in.DestinationCountry == "" || in.DestinationCountry == homeCountry {
		months = homeResidenceMonths
	}
	if in.Return.After(in.Departure.AddDate(0, months, 0)) {
		return true, residenceFactor
	}
	return false, decimal.NewFromInt(1)
}
