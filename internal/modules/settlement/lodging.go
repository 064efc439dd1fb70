// README: Reimbursable nights and capped lodging per segment.
package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp/internal/types"
)

// Last-night window, minutes. Returning at or before 01:00 means the last
// night was not slept away; from 07:00 on it was. The window in between is
// ambiguous and defaults to not-pernocted unless justified. Policy values
// from the governing documentation, see DESIGN.md.
const (
	noPernoctaUntil = 1 * 60
	pernoctaFrom    = 7 * 60
)

// nights counts reimbursable nights for one segment and reports whether the
// last night fell in the ambiguous window unresolved.
func nights(seg Segment, f Flags) (int, bool) {
	if f.ExcludeLodging {
		return 0, false
	}
	base := daysBetween(seg.Start, seg.End)
	end := minutesOf(seg.End)

	n := base
	ambiguous := false
	switch {
	case end >= pernoctaFrom:
		// counted in base already
	case end <= noPernoctaUntil:
		n = base - 1
	default:
		n = base - 1
		ambiguous = true
		if f.JustifyLastNight {
			n++
			ambiguous = false
		}
	}
	if n < 0 {
		n = 0
	}
	return n, ambiguous
}

// lodgingCap is the maximum reimbursable amount for a segment's nights,
// before any residence discount.
func lodgingCap(n int, nightRate decimal.Decimal) decimal.Decimal {
	return types.Round2(decimal.NewFromInt(int64(n)).Mul(nightRate))
}

// reimburseLodging settles the claimed expense against the trip-wide cap:
// the lesser of the two, scaled by the residence factor, flagging a claim
// above the cap. The factor applies to the reimbursed amount itself so it
// bites whichever term binds.
func reimburseLodging(claimed, cap, factor decimal.Decimal, f Flags) (amount decimal.Decimal, exceeds bool) {
	if f.ExcludeLodging {
		return decimal.Zero, false
	}
	amount = claimed
	if claimed.GreaterThan(cap) {
		amount = cap
		exceeds = true
	}
	return types.Round2(amount.Mul(factor)), exceeds
}
