package settlement

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp/internal/modules/rates"
	"github.com/clb2clb2/sgtri-desp/internal/types"
)

func homeSeg(rate float64, days ...daySlice) SegmentResult {
	return SegmentResult{MealRate: types.Euros(rate), days: days}
}

func one() decimal.Decimal { return decimal.NewFromInt(1) }

// A domestic decree trip sits exactly on the exempt limits: nothing is
// withheld.
func TestWithholdingDomesticAtThreshold(t *testing.T) {
	last := day(17, 1, 2025)
	seg := homeSeg(53.34,
		daySlice{Date: day(15, 1, 2025), Units: 1, Home: true},
		daySlice{Date: day(16, 1, 2025), Units: 1, Home: true},
		daySlice{Date: last, Units: 0.5, Home: true},
	)
	got := withholding([]SegmentResult{seg}, rates.Default(), one(), last, Flags{})
	if !got.IsZero() {
		t.Errorf("withheld = %s, want 0", got)
	}
}

// Abroad days exceed the abroad limit; the trip's last day uses the
// no-overnight threshold.
func TestWithholdingAbroadAndFinalDay(t *testing.T) {
	last := day(5, 1, 2025)
	abroad := SegmentResult{
		MealRate: types.Euros(113.61),
		days: []daySlice{
			{Date: day(2, 1, 2025), Units: 1},
			{Date: day(3, 1, 2025), Units: 1},
		},
	}
	back := homeSeg(53.34, daySlice{Date: last, Units: 1, Home: true})

	got := withholding([]SegmentResult{abroad, back}, rates.Default(), one(), last, Flags{})
	// abroad: 2 x (113.61 - 91.35) = 44.52; last home day: 53.34 - 26.67 = 26.67
	if got.String() != "71.19" {
		t.Errorf("withheld = %s, want 71.19", got)
	}
}

func TestWithholdingResidenceFactor(t *testing.T) {
	last := day(3, 1, 2025)
	seg := SegmentResult{
		MealRate: types.Euros(113.61),
		days:     []daySlice{{Date: day(2, 1, 2025), Units: 1}},
	}
	got := withholding([]SegmentResult{seg}, rates.Default(), types.Euros(0.8), last, Flags{})
	// 113.61 x 0.8 = 90.89 rounded, under the 91.35 limit
	if !got.IsZero() {
		t.Errorf("withheld = %s, want 0 after discount", got)
	}
}

func TestWithholdingExcludedMeals(t *testing.T) {
	last := day(3, 1, 2025)
	seg := homeSeg(500, daySlice{Date: last, Units: 1, Home: true})
	got := withholding([]SegmentResult{seg}, rates.Default(), one(), last, Flags{ExcludeMeals: true})
	if !got.IsZero() {
		t.Errorf("withheld = %s, want 0", got)
	}
}

// Monotonic in gross amount and never negative.
func TestWithholdingMonotonic(t *testing.T) {
	last := day(3, 1, 2025)
	prev := decimal.Zero
	for _, rate := range []float64{10, 26.67, 40, 53.34, 60, 100, 250} {
		seg := homeSeg(rate,
			daySlice{Date: day(2, 1, 2025), Units: 1, Home: true},
			daySlice{Date: last, Units: 1, Home: true},
		)
		got := withholding([]SegmentResult{seg}, rates.Default(), one(), last, Flags{})
		if got.IsNegative() {
			t.Fatalf("rate %v: negative withholding %s", rate, got)
		}
		if got.LessThan(prev) {
			t.Fatalf("rate %v: withholding decreased from %s to %s", rate, prev, got)
		}
		prev = got
	}
}

func TestWithholdingSkipsZeroUnitDays(t *testing.T) {
	last := day(3, 1, 2025)
	seg := homeSeg(53.34,
		daySlice{Date: day(2, 1, 2025), Units: 0, Home: true},
		daySlice{Date: last, Units: 0, Home: true},
	)
	got := withholding([]SegmentResult{seg}, rates.Default(), one(), last, Flags{})
	if !got.IsZero() {
		t.Errorf("withheld = %s, want 0", got)
	}
}
