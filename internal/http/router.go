// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clb2clb2/sgtri-desp/internal/http/handlers"
	"github.com/clb2clb2/sgtri-desp/internal/http/middleware"
	"github.com/clb2clb2/sgtri-desp/internal/modules/settlement"
	"github.com/clb2clb2/sgtri-desp/internal/modules/summary"
)

// RouterDeps carries the services the router exposes. Route and Summary may
// be nil or key-less; their endpoints then answer 503.
type RouterDeps struct {
	Settlement *settlement.Service
	Summary    *summary.Service
	Rates      handlers.RatesSource
	Route      handlers.DistanceSource
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	settlementHandler := handlers.NewSettlementHandler(deps.Settlement)
	r.POST("/api/settlements", settlementHandler.Calculate)
	r.POST("/api/expedients", settlementHandler.Expedient)

	summaryHandler := handlers.NewSummaryHandler(deps.Settlement, deps.Summary)
	r.POST("/api/settlements/summary", summaryHandler.Summarize)

	ratesHandler := handlers.NewRatesHandler(deps.Rates)
	r.GET("/api/rates/table", ratesHandler.Table)
	r.GET("/api/rates/countries", ratesHandler.Countries)

	distanceHandler := handlers.NewDistanceHandler(deps.Route)
	r.GET("/api/distance", distanceHandler.Suggest)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
