package handlers

import (
	"net/http"

	portssvc "github.com/finbooks/ledger/internal/core/ports/services"
	"github.com/finbooks/ledger/internal/dto"
	"github.com/finbooks/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler handles HTTP requests for accounting periods.
type periodHandler struct {
	periods portssvc.PeriodSvcFacade
}

// registerPeriodRoutes registers routes related to accounting periods.
func registerPeriodRoutes(rg *gin.RouterGroup, periods portssvc.PeriodSvcFacade) {
	h := &periodHandler{periods: periods}

	group := rg.Group("/periods")
	{
		group.GET("", h.listPeriods)
		group.POST("/:key/open", h.openPeriod)
		group.POST("/:key/close", h.closePeriod)
	}
}

func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periods, err := h.periods.List(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"periods": dto.ToPeriodResponses(periods)})
}

func (h *periodHandler) openPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, err := h.periods.Open(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, err := h.periods.Close(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}
