package handler

import (
	"net/http"
	"time"

	"ilp-connector/internal/adapter/http/dto"
	"ilp-connector/internal/core/domain"
	"ilp-connector/internal/core/ports"
	"ilp-connector/pkg/apperror"
	"ilp-connector/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves the admin account endpoints.
type AccountHandler struct {
	accounts ports.AccountRepository
	balances ports.BalanceStore
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts ports.AccountRepository, balances ports.BalanceStore) *AccountHandler {
	return &AccountHandler{accounts: accounts, balances: balances}
}

// Create handles POST /accounts.
func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid account body: "+err.Error()))
		return
	}

	existing, err := h.accounts.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if existing != nil {
		response.Error(c, apperror.ErrAccountExists(req.ID))
		return
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:         req.ID,
		AssetCode:  req.AssetCode,
		AssetScale: req.AssetScale,
		ILPAddress: req.ILPAddress,
		LinkURL:    req.LinkURL,
		BalanceSettings: domain.AccountBalanceSettings{
			MinBalance:      req.MinBalance,
			SettleThreshold: req.SettleThreshold,
			SettleTo:        req.SettleTo,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.SEBaseURL != nil && req.SEAccountID != nil {
		account.SettlementEngine = &domain.SettlementEngineConfig{
			BaseURL:   *req.SEBaseURL,
			AccountID: *req.SEAccountID,
		}
	}

	if err := h.accounts.Create(c.Request.Context(), account); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, account)
}

// GetBalance handles GET /accounts/{accountID}/balance.
func (h *AccountHandler) GetBalance(c *gin.Context) {
	accountID := c.Param("id")
	account, err := h.accounts.GetByID(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if account == nil {
		response.Error(c, apperror.ErrAccountNotFound(accountID))
		return
	}

	balance, err := h.balances.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		AccountID:       accountID,
		AssetCode:       account.AssetCode,
		AssetScale:      account.AssetScale,
		ClearingBalance: balance.ClearingBalance,
		PrepaidAmount:   balance.PrepaidAmount,
		NetBalance:      balance.NetBalance(),
	})
}

// HealthCheck returns a handler that pings the given dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
