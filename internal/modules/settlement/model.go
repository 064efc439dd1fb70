// README: Trip input, segments and settlement result types.
package settlement

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp/internal/modules/regulation"
)

var (
	ErrInvalidInput        = errors.New("invalid settlement input")
	ErrUnknownCountry      = errors.New("unknown destination country")
	ErrUnknownVehicleClass = errors.New("unknown vehicle class")
)

// Flags are the user-controlled switches collected by the form layer.
type Flags struct {
	// DinnerReceipt certifies payment of the last-night dinner; required for
	// the late-return full unit under the national statute.
	DinnerReceipt bool
	// ExcludeMeals zeroes the meal allowance and, with it, the withholding.
	ExcludeMeals bool
	// ExcludeLodging zeroes nights and lodging reimbursement.
	ExcludeLodging bool
	// JustifyLastNight resolves the ambiguous-night window in favour of a
	// counted night.
	JustifyLastNight bool
	// ForceEventualResidence applies the 0.8 factor regardless of duration.
	ForceEventualResidence bool
}

// TripInput is one trip to settle. Immutable value; instants carry both the
// calendar date and the wall-clock time. Border-crossing instants are
// date-only (midnight).
type TripInput struct {
	Departure time.Time
	Return    time.Time

	// CrossingOut / CrossingIn are the border-crossing dates of an
	// international trip. Both present or both absent.
	CrossingOut *time.Time
	CrossingIn  *time.Time

	DestinationCountry string
	ProjectType        string

	DistanceKm          decimal.Decimal
	VehicleClass        string
	MileageRateOverride *decimal.Decimal

	LodgingClaimed decimal.Decimal
	OtherExpenses  decimal.Decimal

	Flags Flags

	// HomeRatesForUnknown opts in to settling an unknown destination with
	// home-country rates instead of failing.
	HomeRatesForUnknown bool
}

// Segment is a contiguous sub-interval of the trip confined to one
// territory. Built fresh per calculation, never persisted.
type Segment struct {
	Start   time.Time
	End     time.Time
	Country string
	Home    bool
	// Final marks the segment containing the return instant. It governs the
	// last-night meal-receipt rule and the final-day exempt threshold.
	Final bool
}

// daySlice is one calendar day's meal entitlement inside a segment. Used
// only by the withholding calculator.
type daySlice struct {
	Date  time.Time
	Units float64
	Home  bool
}

// SegmentResult is the per-territory breakdown of one segment.
type SegmentResult struct {
	Country string    `json:"country"`
	Home    bool      `json:"home"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Final   bool      `json:"final"`

	MealUnits  float64         `json:"meal_units"`
	MealRate   decimal.Decimal `json:"meal_rate"`
	MealAmount decimal.Decimal `json:"meal_amount"`

	Nights             int             `json:"nights"`
	NightRate          decimal.Decimal `json:"night_rate"`
	LodgingCap         decimal.Decimal `json:"lodging_cap"`
	LastNightAmbiguous bool            `json:"last_night_ambiguous"`

	days []daySlice
}

// Result is the settlement of one trip. Owned by the caller; holds no
// reference back to the input.
type Result struct {
	Regulation        regulation.Regulation `json:"regulation"`
	EventualResidence bool                  `json:"eventual_residence"`
	ResidenceFactor   decimal.Decimal       `json:"residence_factor"`

	Segments []SegmentResult `json:"segments"`

	MealUnits  float64         `json:"meal_units"`
	MealAmount decimal.Decimal `json:"meal_amount"`

	Nights             int             `json:"nights"`
	LodgingCap         decimal.Decimal `json:"lodging_cap"`
	LodgingClaimed     decimal.Decimal `json:"lodging_claimed"`
	LodgingAmount      decimal.Decimal `json:"lodging_amount"`
	LodgingExceedsCap  bool            `json:"lodging_exceeds_cap"`
	LastNightAmbiguous bool            `json:"last_night_ambiguous"`

	MileageAmount decimal.Decimal `json:"mileage_amount"`
	OtherExpenses decimal.Decimal `json:"other_expenses"`
	TaxWithheld   decimal.Decimal `json:"tax_withheld"`

	Total decimal.Decimal `json:"total"`
}
