package handler

import (
	"io"
	"net/http"

	"ilp-connector/internal/core/ports"
	"ilp-connector/internal/ilp"
	"ilp-connector/pkg/apperror"
	"ilp-connector/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HeaderAccountID identifies the sending counterparty on the link ingress.
// Link-layer authentication lives outside this subsystem; deployments put
// this endpoint behind their transport auth.
const HeaderAccountID = "ILP-Account-Id"

// ILPHandler terminates inbound ILP packets. Only the peer.settle channel
// is handled here; everything else belongs to the packet switch and is
// rejected.
type ILPHandler struct {
	accounts ports.AccountRepository
	svc      ports.SettlementService
	log      zerolog.Logger
}

// NewILPHandler creates a new ILPHandler.
func NewILPHandler(accounts ports.AccountRepository, svc ports.SettlementService, log zerolog.Logger) *ILPHandler {
	return &ILPHandler{accounts: accounts, svc: svc, log: log}
}

// HandlePacket handles POST /ilp with a serialized ILP packet body.
func (h *ILPHandler) HandlePacket(c *gin.Context) {
	accountID := c.GetHeader(HeaderAccountID)
	if accountID == "" {
		response.Error(c, apperror.Validation("ILP-Account-Id header is required"))
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.Validation("cannot read packet body"))
		return
	}
	pkt, err := ilp.Unmarshal(body)
	if err != nil {
		response.Error(c, apperror.Validation("invalid ilp packet: "+err.Error()))
		return
	}
	prepare, ok := pkt.(*ilp.Prepare)
	if !ok {
		response.Error(c, apperror.Validation("expected an ilp prepare packet"))
		return
	}

	if prepare.Destination != ilp.PeerSettleAddress {
		h.reply(c, &ilp.Reject{
			Code:    "F02",
			Message: "only peer.settle packets are handled on this endpoint",
		})
		return
	}

	account, err := h.accounts.GetByID(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if account == nil {
		h.reply(c, &ilp.Reject{Code: "F02", Message: "unknown account"})
		return
	}

	data, err := h.svc.HandlePeerSettlementMessage(c.Request.Context(), account, prepare.Data)
	if err != nil {
		h.log.Warn().Err(err).Str("account_id", accountID).Msg("peer settlement message rejected")
		h.reply(c, &ilp.Reject{Code: "T00", Message: "settlement message relay failed"})
		return
	}

	h.reply(c, &ilp.Fulfill{Fulfillment: ilp.ZeroFulfillment, Data: data})
}

func (h *ILPHandler) reply(c *gin.Context, pkt ilp.Packet) {
	c.Data(http.StatusOK, "application/octet-stream", pkt.Marshal())
}
