// README: Per-day tax withholding against exempt thresholds.
package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp/internal/modules/rates"
	"github.com/clb2clb2/sgtri-desp/internal/types"
)

// withholding computes the meal-allowance portion subject to tax. Day
// slices arrive in ascending calendar order per segment; each carries its
// territory's meal rate through the segment it came from. Every day uses
// the with-overnight threshold except the trip's last calendar day.
func withholding(segs []SegmentResult, tbl *rates.Table, factor decimal.Decimal, lastDay time.Time, f Flags) decimal.Decimal {
	if f.ExcludeMeals {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, seg := range segs {
		for _, day := range seg.days {
			if day.Units == 0 {
				continue
			}
			gross := types.Round2(decimal.NewFromFloat(day.Units).Mul(seg.MealRate).Mul(factor))

			territory := rates.TerritoryAbroad
			if day.Home {
				territory = rates.TerritoryHome
			}
			limits := tbl.ExemptFor(territory)
			threshold := limits.WithOvernight
			if sameDate(day.Date, lastDay) {
				threshold = limits.WithoutOvernight
			}

			if subject := gross.Sub(threshold); subject.IsPositive() {
				total = total.Add(subject)
			}
		}
	}
	return types.Round2(total)
}
