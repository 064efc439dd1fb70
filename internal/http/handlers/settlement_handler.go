// README: Settlement handlers for single trips and whole expedients.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/clb2clb2/sgtri-desp/internal/modules/settlement"
	"github.com/clb2clb2/sgtri-desp/internal/types"
)

type SettlementHandler struct {
	settlement *settlement.Service
}

func NewSettlementHandler(svc *settlement.Service) *SettlementHandler {
	return &SettlementHandler{settlement: svc}
}

type otherExpenseReq struct {
	Concept string            `json:"concept"`
	Amount  types.LooseAmount `json:"amount"`
}

// tripReq carries one trip in form shape: dates as dd/mm/yyyy, times as
// hh:mm, amounts either numbers or locale strings ("1.234,56 €").
type tripReq struct {
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

	LodgingAmount types.LooseAmount `json:"lodging_amount"`
	OtherExpenses []otherExpenseReq `json:"other_expenses"`

	DinnerReceipt          bool `json:"dinner_receipt"`
	ExcludeMeals           bool `json:"exclude_meals"`
	ExcludeLodging         bool `json:"exclude_lodging"`
	JustifyLastNight       bool `json:"justify_last_night"`
	ForceEventualResidence bool `json:"force_eventual_residence"`
	HomeRatesForUnknown    bool `json:"home_rates_for_unknown"`
}

func (r tripReq) toInput() (settlement.TripInput, error) {
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
		other = other.Add(e.Amount.Decimal)
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

// Calculate handles POST /api/settlements.
func (h *SettlementHandler) Calculate(c *gin.Context) {
	var req tripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.settlement.Settle(c.Request.Context(), in)
	if err != nil {
		writeSettlementError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

type expedientReq struct {
	Trips []tripReq `json:"trips"`
}

type expedientTotals struct {
	MealAmount    decimal.Decimal `json:"meal_amount"`
	LodgingAmount decimal.Decimal `json:"lodging_amount"`
	MileageAmount decimal.Decimal `json:"mileage_amount"`
	OtherExpenses decimal.Decimal `json:"other_expenses"`
	TaxWithheld   decimal.Decimal `json:"tax_withheld"`
	Total         decimal.Decimal `json:"total"`
}

type expedientResp struct {
	Trips  []*settlement.Result `json:"trips"`
	Totals expedientTotals      `json:"totals"`
}

// Expedient handles POST /api/expedients: every trip of the file in one
// request. Any invalid trip fails the whole batch, with its index in the
// message.
func (h *SettlementHandler) Expedient(c *gin.Context) {
	var req expedientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Trips) == 0 {
		writeError(c, http.StatusBadRequest, "empty expedient")
		return
	}

	resp := expedientResp{
		Totals: expedientTotals{
			MealAmount:    decimal.Zero,
			LodgingAmount: decimal.Zero,
			MileageAmount: decimal.Zero,
			OtherExpenses: decimal.Zero,
			TaxWithheld:   decimal.Zero,
			Total:         decimal.Zero,
		},
	}
	for i, tr := range req.Trips {
		in, err := tr.toInput()
		if err != nil {
			writeError(c, http.StatusBadRequest, fmt.Sprintf("trip %d: %v", i+1, err))
			return
		}
		res, err := h.settlement.Settle(c.Request.Context(), in)
		if err != nil {
			writeSettlementError(c, fmt.Errorf("trip %d: %w", i+1, err))
			return
		}
		resp.Trips = append(resp.Trips, res)
		resp.Totals.MealAmount = resp.Totals.MealAmount.Add(res.MealAmount)
		resp.Totals.LodgingAmount = resp.Totals.LodgingAmount.Add(res.LodgingAmount)
		resp.Totals.MileageAmount = resp.Totals.MileageAmount.Add(res.MileageAmount)
		resp.Totals.OtherExpenses = resp.Totals.OtherExpenses.Add(res.OtherExpenses)
		resp.Totals.TaxWithheld = resp.Totals.TaxWithheld.Add(res.TaxWithheld)
		resp.Totals.Total = resp.Totals.Total.Add(res.Total)
	}
	writeJSON(c, http.StatusOK, resp)
}
