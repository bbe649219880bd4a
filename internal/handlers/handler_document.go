package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/finbooks/ledger/internal/core/ports/services"
	"github.com/finbooks/ledger/internal/dto"
	"github.com/finbooks/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler is the thin intake surface for document rows.
type documentHandler struct {
	documents portssvc.DocumentSvcFacade
}

// registerDocumentRoutes registers routes related to document intake.
func registerDocumentRoutes(rg *gin.RouterGroup, documents portssvc.DocumentSvcFacade) {
	h := &documentHandler{documents: documents}

	group := rg.Group("/documents")
	{
		group.POST("/:kind", h.createDocument)
		group.GET("/:kind/:id", h.getDocument)
	}
}

func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocument", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.documents.CreateDocument(c.Request.Context(), c.Param("kind"), req, actor)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document id must be a positive integer"})
		return
	}

	doc, err := h.documents.GetDocument(c.Request.Context(), c.Param("kind"), id)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}
