package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ilp-connector/internal/adapter/http/dto"
	"ilp-connector/internal/adapter/storage/memory"
	"ilp-connector/internal/core/domain"
	"ilp-connector/internal/core/ports"
	"ilp-connector/internal/core/ports/mocks"
	"ilp-connector/internal/ilp"
	"ilp-connector/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func int64Ptr(v int64) *int64 { return &v }

func mustQuantity(t *testing.T, amount int64, scale uint8) domain.ScaledQuantity {
	t.Helper()
	q, err := domain.QuantityFromInt64(amount, scale)
	require.NoError(t, err)
	return q
}

// --- Settlement Handler Tests ---

func TestReceiveSettlement_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSettlementService(ctrl)
	h := NewSettlementHandler(mockSvc)

	mockSvc.EXPECT().
		HandleIncomingSettlement(gomock.Any(), "idem-1", "se-alice", mustQuantity(t, 1000, 9)).
		Return(mustQuantity(t, 1, 6), nil)

	body, _ := json.Marshal(dto.SettlementRequest{Amount: "1000", Scale: 9})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/accounts/se-alice/settlements", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set("Idempotency-Key", "idem-1")
	c.Params = gin.Params{{Key: "id", Value: "se-alice"}}

	h.ReceiveSettlement(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "1", data["amount"])
	assert.Equal(t, float64(6), data["scale"])
}

func TestReceiveSettlement_MissingIdempotencyKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewSettlementHandler(mocks.NewMockSettlementService(ctrl))

	body, _ := json.Marshal(dto.SettlementRequest{Amount: "1000", Scale: 9})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/accounts/se-alice/settlements", bytes.NewReader(body))
	c.Params = gin.Params{{Key: "id", Value: "se-alice"}}

	h.ReceiveSettlement(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Idempotency-Key")
}

func TestReceiveSettlement_BadAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewSettlementHandler(mocks.NewMockSettlementService(ctrl))

	body := []byte(`{"amount":"not-a-number","scale":9}`)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/accounts/se-alice/settlements", bytes.NewReader(body))
	c.Request.Header.Set("Idempotency-Key", "idem-1")
	c.Params = gin.Params{{Key: "id", Value: "se-alice"}}

	h.ReceiveSettlement(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReceiveSettlement_UnknownAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSettlementService(ctrl)
	h := NewSettlementHandler(mockSvc)

	mockSvc.EXPECT().
		HandleIncomingSettlement(gomock.Any(), "idem-1", "se-unknown", gomock.Any()).
		Return(domain.ScaledQuantity{}, apperror.ErrAccountNotFoundForEngine("se-unknown"))

	body, _ := json.Marshal(dto.SettlementRequest{Amount: "1000", Scale: 9})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/accounts/se-unknown/settlements", bytes.NewReader(body))
	c.Request.Header.Set("Idempotency-Key", "idem-1")
	c.Params = gin.Params{{Key: "id", Value: "se-unknown"}}

	h.ReceiveSettlement(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "SET_001")
}

func TestRelayMessage_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSettlementService(ctrl)
	h := NewSettlementHandler(mockSvc)

	mockSvc.EXPECT().
		HandleLocalSettlementMessage(gomock.Any(), "se-alice", []byte("engine message")).
		Return([]byte("peer reply"), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/accounts/se-alice/messages", bytes.NewReader([]byte("engine message")))
	c.Params = gin.Params{{Key: "id", Value: "se-alice"}}

	h.RelayMessage(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "peer reply", w.Body.String())
}

func TestRelayMessage_RelayFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSettlementService(ctrl)
	h := NewSettlementHandler(mockSvc)

	mockSvc.EXPECT().
		HandleLocalSettlementMessage(gomock.Any(), "se-alice", gomock.Any()).
		Return(nil, apperror.ErrSettlementMessageRelay("alice", errors.New("peer down")))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/accounts/se-alice/messages", bytes.NewReader([]byte("msg")))
	c.Params = gin.Params{{Key: "id", Value: "se-alice"}}

	h.RelayMessage(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "SET_004")
}

// --- Account Handler Tests ---

func TestCreateAccount_Success(t *testing.T) {
	repo := memory.NewAccountRepo()
	h := NewAccountHandler(repo, memory.NewBalanceStore())

	body, _ := json.Marshal(dto.CreateAccountRequest{
		ID:              "alice",
		AssetCode:       "XRP",
		AssetScale:      9,
		ILPAddress:      "example.alice",
		SettleThreshold: int64Ptr(1000),
		SEBaseURL:       strPtr("http://localhost:3000"),
		SEAccountID:     strPtr("se-alice"),
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	created, err := repo.GetByID(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotNil(t, created.SettlementEngine)
	assert.Equal(t, "se-alice", created.SettlementEngine.AccountID)
}

func strPtr(s string) *string { return &s }

func TestCreateAccount_Duplicate(t *testing.T) {
	repo := memory.NewAccountRepo()
	require.NoError(t, repo.Create(context.Background(), &domain.Account{ID: "alice"}))
	h := NewAccountHandler(repo, memory.NewBalanceStore())

	body, _ := json.Marshal(dto.CreateAccountRequest{
		ID:         "alice",
		AssetCode:  "XRP",
		ILPAddress: "example.alice",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CFG_002")
}

func TestGetBalance_Success(t *testing.T) {
	repo := memory.NewAccountRepo()
	store := memory.NewBalanceStore()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &domain.Account{ID: "alice", AssetCode: "XRP", AssetScale: 9}))
	_, err := store.UpdateBalanceForIncomingSettlement(ctx, "k", "alice", 750)
	require.NoError(t, err)

	h := NewAccountHandler(repo, store)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/accounts/alice/balance", nil)
	c.Params = gin.Params{{Key: "id", Value: "alice"}}

	h.GetBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(750), data["clearing_balance"])
	assert.Equal(t, float64(750), data["net_balance"])
	assert.Equal(t, "XRP", data["asset_code"])
}

func TestGetBalance_UnknownAccount(t *testing.T) {
	h := NewAccountHandler(memory.NewAccountRepo(), memory.NewBalanceStore())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/accounts/nobody/balance", nil)
	c.Params = gin.Params{{Key: "id", Value: "nobody"}}

	h.GetBalance(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CFG_001")
}

// --- ILP Handler Tests ---

func peerSettlePrepare(data []byte) *ilp.Prepare {
	return &ilp.Prepare{
		Destination:        ilp.PeerSettleAddress,
		ExecutionCondition: ilp.ZeroCondition,
		Data:               data,
	}
}

func ilpRequest(t *testing.T, accountID string, body []byte) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/ilp", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/octet-stream")
	if accountID != "" {
		c.Request.Header.Set(HeaderAccountID, accountID)
	}
	return w, c
}

func TestHandlePacket_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := memory.NewAccountRepo()
	account := &domain.Account{ID: "alice", SettlementEngine: &domain.SettlementEngineConfig{AccountID: "se-alice"}}
	require.NoError(t, repo.Create(context.Background(), account))

	mockSvc := mocks.NewMockSettlementService(ctrl)
	mockSvc.EXPECT().
		HandlePeerSettlementMessage(gomock.Any(), gomock.Any(), []byte("peer message")).
		Return([]byte("engine reply"), nil)

	h := NewILPHandler(repo, mockSvc, zerolog.Nop())
	w, c := ilpRequest(t, "alice", peerSettlePrepare([]byte("peer message")).Marshal())

	h.HandlePacket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	pkt, err := ilp.Unmarshal(w.Body.Bytes())
	require.NoError(t, err)
	fulfill, ok := pkt.(*ilp.Fulfill)
	require.True(t, ok)
	assert.Equal(t, ilp.ZeroFulfillment, fulfill.Fulfillment)
	assert.Equal(t, []byte("engine reply"), fulfill.Data)
}

func TestHandlePacket_MissingAccountHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewILPHandler(memory.NewAccountRepo(), mocks.NewMockSettlementService(ctrl), zerolog.Nop())
	w, c := ilpRequest(t, "", peerSettlePrepare(nil).Marshal())

	h.HandlePacket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePacket_NonPeerSettleDestinationRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewILPHandler(memory.NewAccountRepo(), mocks.NewMockSettlementService(ctrl), zerolog.Nop())
	prepare := &ilp.Prepare{Destination: "example.bob"}
	w, c := ilpRequest(t, "alice", prepare.Marshal())

	h.HandlePacket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	pkt, err := ilp.Unmarshal(w.Body.Bytes())
	require.NoError(t, err)
	reject, ok := pkt.(*ilp.Reject)
	require.True(t, ok)
	assert.Equal(t, "F02", reject.Code)
}

func TestHandlePacket_UnknownAccountRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewILPHandler(memory.NewAccountRepo(), mocks.NewMockSettlementService(ctrl), zerolog.Nop())
	w, c := ilpRequest(t, "ghost", peerSettlePrepare(nil).Marshal())

	h.HandlePacket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	pkt, err := ilp.Unmarshal(w.Body.Bytes())
	require.NoError(t, err)
	reject, ok := pkt.(*ilp.Reject)
	require.True(t, ok)
	assert.Equal(t, "F02", reject.Code)
}

func TestHandlePacket_RelayFailureIsT00(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := memory.NewAccountRepo()
	require.NoError(t, repo.Create(context.Background(), &domain.Account{ID: "alice"}))

	mockSvc := mocks.NewMockSettlementService(ctrl)
	mockSvc.EXPECT().
		HandlePeerSettlementMessage(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrSettlementEngineNotConfigured("alice"))

	h := NewILPHandler(repo, mockSvc, zerolog.Nop())
	w, c := ilpRequest(t, "alice", peerSettlePrepare([]byte("msg")).Marshal())

	h.HandlePacket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	pkt, err := ilp.Unmarshal(w.Body.Bytes())
	require.NoError(t, err)
	reject, ok := pkt.(*ilp.Reject)
	require.True(t, ok)
	assert.Equal(t, "T00", reject.Code)
}

func TestHandlePacket_GarbledBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewILPHandler(memory.NewAccountRepo(), mocks.NewMockSettlementService(ctrl), zerolog.Nop())
	w, c := ilpRequest(t, "alice", []byte("not a packet"))

	h.HandlePacket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Router / health ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := SetupRouter(RouterDeps{
		SettlementSvc:  mocks.NewMockSettlementService(ctrl),
		AccountRepo:    memory.NewAccountRepo(),
		BalanceStore:   memory.NewBalanceStore(),
		HealthCheckers: []ports.HealthChecker{stubChecker{name: "postgresql"}, stubChecker{name: "redis"}},
		Logger:         zerolog.Nop(),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := SetupRouter(RouterDeps{
		SettlementSvc:  mocks.NewMockSettlementService(ctrl),
		AccountRepo:    memory.NewAccountRepo(),
		BalanceStore:   memory.NewBalanceStore(),
		HealthCheckers: []ports.HealthChecker{stubChecker{name: "redis", err: errors.New("connection refused")}},
		Logger:         zerolog.Nop(),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}

func TestRouter_SettlementRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSettlementService(ctrl)
	mockSvc.EXPECT().
		HandleIncomingSettlement(gomock.Any(), "idem-1", "se-alice", mustQuantity(t, 500, 6)).
		Return(mustQuantity(t, 500, 6), nil)

	router := SetupRouter(RouterDeps{
		SettlementSvc: mockSvc,
		AccountRepo:   memory.NewAccountRepo(),
		BalanceStore:  memory.NewBalanceStore(),
		Logger:        zerolog.Nop(),
	})

	body, _ := json.Marshal(dto.SettlementRequest{Amount: "500", Scale: 6})
	req := httptest.NewRequest(http.MethodPost, "/accounts/se-alice/settlements", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "idem-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}
