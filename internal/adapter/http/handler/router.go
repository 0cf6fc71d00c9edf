package handler

import (
	"ilp-connector/internal/adapter/http/middleware"
	"ilp-connector/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	SettlementSvc  ports.SettlementService
	AccountRepo    ports.AccountRepository
	BalanceStore   ports.BalanceStore
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (verifies PostgreSQL + Redis connectivity)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	settlementHandler := NewSettlementHandler(deps.SettlementSvc)
	accountHandler := NewAccountHandler(deps.AccountRepo, deps.BalanceStore)
	ilpHandler := NewILPHandler(deps.AccountRepo, deps.SettlementSvc, deps.Logger)

	// Settlement engine callback API. The engine addresses the connector by
	// its own engine-side account id; the admin balance route uses the
	// local account id. gin requires one wildcard name per segment, so
	// both use :id and each handler interprets it.
	accounts := r.Group("/accounts")
	{
		accounts.POST("/:id/settlements", settlementHandler.ReceiveSettlement)
		accounts.POST("/:id/messages", settlementHandler.RelayMessage)
		accounts.GET("/:id/balance", accountHandler.GetBalance)
	}

	// Admin surface
	r.POST("/accounts", accountHandler.Create)

	// ILP link ingress (peer.settle only)
	r.POST("/ilp", ilpHandler.HandlePacket)

	return r
}
