// README: Settlement summary handler (Gemini-backed).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clb2clb2/sgtri-desp/internal/modules/settlement"
	"github.com/clb2clb2/sgtri-desp/internal/modules/summary"
)

type SummaryHandler struct {
	settlement *settlement.Service
	summary    *summary.Service
}

func NewSummaryHandler(settleSvc *settlement.Service, sumSvc *summary.Service) *SummaryHandler {
	return &SummaryHandler{settlement: settleSvc, summary: sumSvc}
}

// Summarize handles POST /api/settlements/summary: settles the trip, then
// asks for the paragraph. The figures in the response come from the local
// calculation, never from the model.
func (h *SummaryHandler) Summarize(c *gin.Context) {
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

	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	text, err := h.summary.Summarize(ctx, res)
	if err != nil {
		switch {
		case errors.Is(err, summary.ErrDisabled):
			writeError(c, http.StatusServiceUnavailable, err.Error())
		default:
			writeError(c, http.StatusBadGateway, "summary generation failed")
		}
		return
	}

	writeJSON(c, http.StatusOK, gin.H{"summary": text, "settlement": res})
}
