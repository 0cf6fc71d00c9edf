package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"ilp-connector/internal/core/domain"

	"github.com/rs/zerolog"
)

// eventRetryIntervals spaces the webhook delivery attempts.
var eventRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	5 * time.Minute,
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// LogEventPublisher implements ports.EventPublisher by writing events to
// the structured log. Used when no event webhook is configured.
type LogEventPublisher struct {
	log zerolog.Logger
}

// NewLogEventPublisher creates a logging-only event publisher.
func NewLogEventPublisher(log zerolog.Logger) *LogEventPublisher {
	return &LogEventPublisher{log: log}
}

func (p *LogEventPublisher) Publish(_ context.Context, event domain.SettlementEvent) {
	entry := p.log.Info()
	if event.Type == domain.EventIncomingSettlementFailed {
		entry = p.log.Warn()
	}
	entry.
		Str("event_type", string(event.Type)).
		Str("account_id", event.AccountID).
		Str("idempotency_key", event.IdempotencyKey).
		Str("requested", event.Requested.String()).
		Msg("settlement event")
}

// WebhookEventPublisher implements ports.EventPublisher by POSTing events
// as JSON to a configured URL. Delivery is asynchronous with fixed retry
// intervals and never blocks or fails the settlement path.
type WebhookEventPublisher struct {
	url        string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewWebhookEventPublisher creates a webhook event publisher.
func NewWebhookEventPublisher(url string, httpClient HTTPClient, log zerolog.Logger) *WebhookEventPublisher {
	return &WebhookEventPublisher{url: url, httpClient: httpClient, log: log}
}

func (p *WebhookEventPublisher) Publish(_ context.Context, event domain.SettlementEvent) {
	go p.deliverWithRetries(event)
}

// deliverWithRetries attempts delivery until a 2xx response or the retry
// schedule is exhausted.
func (p *WebhookEventPublisher) deliverWithRetries(event domain.SettlementEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Str("event_type", string(event.Type)).Msg("event webhook: failed to marshal event")
		return
	}

	for attempt := 0; attempt <= len(eventRetryIntervals); attempt++ {
		if attempt > 0 {
			time.Sleep(eventRetryIntervals[attempt-1])
		}
		if p.deliver(payload, event, attempt) {
			return
		}
	}

	p.log.Error().
		Str("event_type", string(event.Type)).
		Str("account_id", event.AccountID).
		Msg("event webhook: all retry attempts exhausted")
}

// deliver performs one delivery attempt; true means delivered.
func (p *WebhookEventPublisher) deliver(payload []byte, event domain.SettlementEvent, attempt int) bool {
	req, err := http.NewRequest(http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		p.log.Error().Err(err).Int("attempt", attempt+1).Msg("event webhook: failed to create request")
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.Warn().Err(err).Int("attempt", attempt+1).Msg("event webhook: delivery failed")
		return false
	}
	resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		p.log.Debug().
			Str("event_type", string(event.Type)).
			Int("attempt", attempt+1).
			Msg("event webhook: delivered")
		return true
	}

	p.log.Warn().
		Int("attempt", attempt+1).
		Int("status", resp.StatusCode).
		Msg("event webhook: non-2xx response, retrying")
	return false
}
