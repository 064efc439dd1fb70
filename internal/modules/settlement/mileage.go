// README: Mileage amount from distance and vehicle class.
package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp/internal/modules/rates"
	"github.com/clb2clb2/sgtri-desp/internal/types"
)

// mileageAmount multiplies distance by the vehicle-class rate. A caller
// override wins over the table. Zero distance with no class is fine; a
// class that is supplied must exist in the table regardless of distance.
func mileageAmount(in TripInput, tbl *rates.Table) (decimal.Decimal, error) {
	if in.DistanceKm.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative distance", ErrInvalidInput)
	}

	rate := decimal.Zero
	if in.MileageRateOverride != nil {
		rate = *in.MileageRateOverride
	} else if in.VehicleClass != "" || !in.DistanceKm.IsZero() {
		r, ok := tbl.VehicleRate(in.VehicleClass)
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownVehicleClass, in.VehicleClass)
		}
		rate = r
	}
	if in.DistanceKm.IsZero() {
		return decimal.Zero, nil
	}
	return types.MulRound2(in.DistanceKm, rate), nil
}
