package handler

import (
	"io"
	"net/http"

	"ilp-connector/internal/adapter/http/dto"
	"ilp-connector/internal/core/domain"
	"ilp-connector/internal/core/ports"
	"ilp-connector/pkg/apperror"
	"ilp-connector/pkg/response"

	"github.com/gin-gonic/gin"
)

// SettlementHandler serves the endpoints the local settlement engine calls
// back into.
type SettlementHandler struct {
	svc ports.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(svc ports.SettlementService) *SettlementHandler {
	return &SettlementHandler{svc: svc}
}

// ReceiveSettlement handles POST /accounts/{seAccountID}/settlements: the
// engine observed an incoming settlement on the underlying ledger.
func (h *SettlementHandler) ReceiveSettlement(c *gin.Context) {
	idempotencyKey := c.GetHeader("Idempotency-Key")
	if idempotencyKey == "" {
		response.Error(c, apperror.Validation("Idempotency-Key header is required"))
		return
	}

	var req dto.SettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("invalid settlement body: "+err.Error()))
		return
	}
	qty, err := domain.ParseQuantity(req.Amount, req.Scale)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	applied, err := h.svc.HandleIncomingSettlement(c.Request.Context(), idempotencyKey, c.Param("id"), qty)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.QuantityResponse{Amount: applied.Amount().String(), Scale: applied.Scale()})
}

// RelayMessage handles POST /accounts/{seAccountID}/messages: the engine
// wants an opaque message delivered to the peer's engine. Both the request
// and response bodies are opaque bytes.
func (h *SettlementHandler) RelayMessage(c *gin.Context) {
	message, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.Validation("cannot read message body"))
		return
	}

	reply, err := h.svc.HandleLocalSettlementMessage(c.Request.Context(), c.Param("id"), message)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", reply)
}
