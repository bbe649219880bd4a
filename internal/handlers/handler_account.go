package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/finbooks/ledger/internal/core/ports/services"
	"github.com/finbooks/ledger/internal/dto"
	"github.com/finbooks/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	registry  portssvc.RegistrySvcFacade
	reporting portssvc.ReportingSvcFacade
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, registry portssvc.RegistrySvcFacade, reporting portssvc.ReportingSvcFacade) {
	h := &accountHandler{registry: registry, reporting: reporting}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/tree", h.accountTree)
		accounts.GET("/:code", h.getAccount)
		accounts.PUT("/:code", h.updateAccount)
		accounts.DELETE("/:code", h.deleteAccount)
		accounts.GET("/:code/balance", h.accountBalance)
		accounts.GET("/:code/ledger", h.accountLedger)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.registry.CreateAccount(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account, req.ParentCode))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accounts, err := h.registry.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	// Parent codes are resolved from the flat list itself.
	byID := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a.Code
	}
	out := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		parentCode := ""
		if accounts[i].ParentAccountID != nil {
			parentCode = byID[*accounts[i].ParentAccountID]
		}
		out[i] = dto.ToAccountResponse(&accounts[i], parentCode)
	}
	c.JSON(http.StatusOK, gin.H{"accounts": out})
}

func (h *accountHandler) accountTree(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	forest, err := h.registry.Tree(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountForest(forest)})
}

func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	account, err := h.registry.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	parentCode := ""
	if account.ParentAccountID != nil {
		// One extra lookup; the flat chart is small.
		if accounts, lerr := h.registry.ListAccounts(c.Request.Context()); lerr == nil {
			for i := range accounts {
				if accounts[i].AccountID == *account.ParentAccountID {
					parentCode = accounts[i].Code
					break
				}
			}
		}
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account, parentCode))
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.registry.UpdateAccount(c.Request.Context(), c.Param("code"), req, actor)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account, ""))
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.registry.DeleteAccount(c.Request.Context(), c.Param("code")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) accountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	var asOf *time.Time
	if raw := c.Query("asOf"); raw != "" {
		t, err := time.Parse(dto.DateFormat, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be YYYY-MM-DD"})
			return
		}
		asOf = &t
	}

	balance, err := h.reporting.AccountBalance(c.Request.Context(), code, asOf)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	resp := gin.H{"accountCode": code, "balance": balance}
	if asOf != nil {
		resp["asOf"] = asOf.Format(dto.DateFormat)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *accountHandler) accountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")
	filter, err := reportFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit := intQuery(c, "limit", 50)
	var nextToken *string
	if raw := c.Query("nextToken"); raw != "" {
		nextToken = &raw
	}

	lines, next, err := h.reporting.AccountLedger(c.Request.Context(), code, filter, limit, nextToken)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.AccountLedgerResponse{
		AccountCode: code,
		Lines:       lines,
		NextToken:   next,
	})
}
