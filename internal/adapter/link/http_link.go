// Package link sends ILP packets to peers over HTTP. Transport concerns
// beyond a single request/response round-trip (authentication, circuit
// breaking, reconnection) live outside this subsystem.
package link

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"ilp-connector/internal/core/domain"
	"ilp-connector/internal/ilp"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPLink implements ports.Link by POSTing serialized packets to the
// account's configured link URL.
type HTTPLink struct {
	httpClient   HTTPClient
	packetExpiry time.Duration
	log          zerolog.Logger
}

// NewHTTPLink creates an ILP-over-HTTP link. packetExpiry sets the
// expiry stamped on outgoing prepares when the caller left it zero.
func NewHTTPLink(httpClient HTTPClient, packetExpiry time.Duration, log zerolog.Logger) *HTTPLink {
	if packetExpiry <= 0 {
		packetExpiry = 30 * time.Second
	}
	return &HTTPLink{httpClient: httpClient, packetExpiry: packetExpiry, log: log}
}

// SendPacket sends the prepare to the account's peer and decodes the reply
// packet. A Reject reply is returned as a packet, not an error; transport
// failures are errors.
func (l *HTTPLink) SendPacket(ctx context.Context, account *domain.Account, prepare *ilp.Prepare) (ilp.Packet, error) {
	if account.LinkURL == "" {
		return nil, fmt.Errorf("account %s has no link url", account.ID)
	}
	if prepare.ExpiresAt.IsZero() {
		prepare.ExpiresAt = time.Now().Add(l.packetExpiry)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, account.LinkURL, bytes.NewReader(prepare.Marshal()))
	if err != nil {
		return nil, fmt.Errorf("build link request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("link send to account %s: %w", account.ID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read link response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("link returned %d for account %s", resp.StatusCode, account.ID)
	}

	reply, err := ilp.Unmarshal(body)
	if err != nil {
		return nil, fmt.Errorf("decode link reply: %w", err)
	}

	l.log.Debug().
		Str("account_id", account.ID).
		Str("destination", prepare.Destination).
		Int("reply_type", int(reply.Type())).
		Msg("link round-trip complete")

	return reply, nil
}
