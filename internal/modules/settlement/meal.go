// README: Meal allowance units per segment.
package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp/internal/modules/regulation"
	"github.com/clb2clb2/sgtri-desp/internal/types"
)

// Cut-off minutes within a day.
const (
	lunchDeparture = 14 * 60 // depart before this: lunch still counts
	lunchReturn    = 16 * 60 // return after this: lunch was away
	dinnerReturn   = 22 * 60 // return at/after this: dinner was away
)

// minSameDayHours is the minimum same-day trip duration that earns any meal
// allowance. Policy value, see DESIGN.md.
const minSameDayHours = 5

func minutesOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// mealUnits computes the fractional unit count for one segment together
// with its per-day breakdown. Units are multiples of 0.5.
func mealUnits(seg Segment, reg regulation.Regulation, f Flags) (float64, []daySlice) {
	if f.ExcludeMeals {
		return 0, nil
	}

	if sameDate(seg.Start, seg.End) {
		u := sameDayUnits(seg, reg, f)
		if u == 0 {
			return 0, nil
		}
		return u, []daySlice{{Date: dateOf(seg.Start), Units: u, Home: seg.Home}}
	}

	var days []daySlice

	dep := minutesOf(seg.Start)
	var depUnits float64
	switch {
	case dep < lunchDeparture:
		depUnits = 1
	case dep < dinnerReturn:
		depUnits = 0.5
	}
	days = append(days, daySlice{Date: dateOf(seg.Start), Units: depUnits, Home: seg.Home})

	for d := dateOf(seg.Start).AddDate(0, 0, 1); d.Before(dateOf(seg.End)); d = d.AddDate(0, 0, 1) {
		days = append(days, daySlice{Date: d, Units: 1, Home: seg.Home})
	}

	days = append(days, daySlice{Date: dateOf(seg.End), Units: arrivalUnits(seg, reg, f), Home: seg.Home})

	var total float64
	for _, d := range days {
		total += d.Units
	}
	return total, days
}

// sameDayUnits applies the within-day rule: lunch for a span over the
// midday window, dinner for a late return.
func sameDayUnits(seg Segment, reg regulation.Regulation, f Flags) float64 {
	if seg.End.Sub(seg.Start) < minSameDayHours*time.Hour {
		return 0
	}
	dep, ret := minutesOf(seg.Start), minutesOf(seg.End)
	var u float64
	if dep < lunchDeparture && ret > lunchReturn {
		u += 0.5
	}
	if ret > dinnerReturn && dinnerGranted(reg, f) {
		u += 0.5
	}
	return u
}

// arrivalUnits applies the arrival-day rule of a multi-day segment.
func arrivalUnits(seg Segment, reg regulation.Regulation, f Flags) float64 {
	ret := minutesOf(seg.End)
	switch {
	case ret >= dinnerReturn:
		if !seg.Final && reg == regulation.StateDecree {
			// mid-trip border day: dinner is assumed consumed
			return 1
		}
		if dinnerGranted(reg, f) {
			return 1
		}
		return 0.5
	case ret >= lunchDeparture:
		return 0.5
	default:
		return 0
	}
}

// dinnerGranted: unconditional under the decree, receipt-gated under the
// statute.
func dinnerGranted(reg regulation.Regulation, f Flags) bool {
	return reg == regulation.StateDecree || f.DinnerReceipt
}

// mealAmount converts units to money at the segment's territory rate,
// rounding only at this boundary.
func mealAmount(units float64, rate, factor decimal.Decimal) decimal.Decimal {
	return types.Round2(decimal.NewFromFloat(units).Mul(rate).Mul(factor))
}
