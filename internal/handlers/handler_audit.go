package handlers

import (
	"net/http"

	portssvc "github.com/finbooks/ledger/internal/core/ports/services"
	"github.com/finbooks/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler exposes the reconciliation sweep.
type auditHandler struct {
	audit portssvc.AuditSvcFacade
}

// registerAuditRoutes registers routes related to reconciliation.
func registerAuditRoutes(rg *gin.RouterGroup, audit portssvc.AuditSvcFacade) {
	h := &auditHandler{audit: audit}

	rg.POST("/audit/run", h.runAudit)
}

func (h *auditHandler) runAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	report, err := h.audit.Run(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"runID":      report.RunID,
		"startedAt":  report.StartedAt,
		"finishedAt": report.FinishedAt,
		"clean":      report.Clean(),
		"findings":   report.Findings,
	})
}
