// Package settlement contains the HTTP client for external settlement
// engines. The engine is an opaque remote party: it may commit less than
// requested, and its responses are honored as-is.
package settlement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ilp-connector/internal/core/domain"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// EngineClient implements ports.SettlementEngineClient over the settlement
// engine HTTP API.
type EngineClient struct {
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewEngineClient creates a settlement engine client.
func NewEngineClient(httpClient HTTPClient, log zerolog.Logger) *EngineClient {
	return &EngineClient{httpClient: httpClient, log: log}
}

// quantityBody is the wire form of a settlement amount. The amount travels
// as a decimal string so values beyond float precision survive transport.
type quantityBody struct {
	Amount string `json:"amount"`
	Scale  uint8  `json:"scale"`
}

// SendSettlement POSTs a clearing-scale settlement request. The response
// carries the amount the engine actually committed in its own scale, which
// may be less than requested; a partial commitment is a normal outcome,
// not an error.
func (c *EngineClient) SendSettlement(ctx context.Context, engine domain.SettlementEngineConfig, idempotencyKey string, amount domain.ScaledQuantity) (domain.ScaledQuantity, error) {
	url := fmt.Sprintf("%s/accounts/%s/settlements", strings.TrimRight(engine.BaseURL, "/"), engine.AccountID)

	body, err := json.Marshal(quantityBody{Amount: amount.Amount().String(), Scale: amount.Scale()})
	if err != nil {
		return domain.ScaledQuantity{}, fmt.Errorf("marshal settlement request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.ScaledQuantity{}, fmt.Errorf("build settlement request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ScaledQuantity{}, fmt.Errorf("settlement engine call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return domain.ScaledQuantity{}, fmt.Errorf("read settlement response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.ScaledQuantity{}, fmt.Errorf("settlement engine returned %d: %s", resp.StatusCode, truncate(respBody))
	}

	var committed quantityBody
	if err := json.Unmarshal(respBody, &committed); err != nil {
		return domain.ScaledQuantity{}, fmt.Errorf("decode settlement response: %w", err)
	}
	qty, err := domain.ParseQuantity(committed.Amount, committed.Scale)
	if err != nil {
		return domain.ScaledQuantity{}, fmt.Errorf("settlement engine committed amount: %w", err)
	}

	c.log.Debug().
		Str("se_account_id", engine.AccountID).
		Str("idempotency_key", idempotencyKey).
		Str("requested", amount.String()).
		Str("committed", qty.String()).
		Msg("settlement engine accepted settlement")

	return qty, nil
}

// SendMessage forwards an opaque settlement-protocol message to the engine
// and returns its opaque response.
func (c *EngineClient) SendMessage(ctx context.Context, engine domain.SettlementEngineConfig, message []byte) ([]byte, error) {
	url := fmt.Sprintf("%s/accounts/%s/messages", strings.TrimRight(engine.BaseURL, "/"), engine.AccountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(message))
	if err != nil {
		return nil, fmt.Errorf("build message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("settlement engine message call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read message response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("settlement engine returned %d: %s", resp.StatusCode, truncate(respBody))
	}
	return respBody, nil
}

func truncate(b []byte) string {
	const max = 256
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
