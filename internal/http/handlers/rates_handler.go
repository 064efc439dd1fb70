// README: Rate-table handlers (country list and the active table).
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clb2clb2/sgtri-desp/internal/modules/rates"
	"github.com/clb2clb2/sgtri-desp/internal/modules/regulation"
)

// RatesSource hands out the active rate table. Satisfied by rates.Provider.
type RatesSource interface {
	Table(ctx context.Context) (*rates.Table, error)
}

type RatesHandler struct {
	rates RatesSource
}

func NewRatesHandler(src RatesSource) *RatesHandler {
	return &RatesHandler{rates: src}
}

// Countries handles GET /api/rates/countries?regulation=. The home country
// comes first, the way the original form lists them.
func (h *RatesHandler) Countries(c *gin.Context) {
	tbl, err := h.rates.Table(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "rates unavailable")
		return
	}
	reg := regulation.Regulation(c.Query("regulation"))
	if reg == "" {
		reg = regulation.StateDecree
	}
	names := tbl.CountryNames(reg)
	if len(names) == 0 {
		writeError(c, http.StatusBadRequest, "unknown regulation")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"regulation": reg, "countries": names})
}

// Table handles GET /api/rates/table.
func (h *RatesHandler) Table(c *gin.Context) {
	tbl, err := h.rates.Table(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "rates unavailable")
		return
	}
	writeJSON(c, http.StatusOK, tbl)
}
