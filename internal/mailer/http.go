// AngelaMos | 2026
// http.go

package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/carterperez-dev/foodhall/internal/config"
	"github.com/carterperez-dev/foodhall/internal/core"
)

const maxErrorBody = 4 << 10

// HTTPProvider posts messages to a JSON email API that answers with the
// id of the accepted message.
type HTTPProvider struct {
	client *http.Client
	url    string
	apiKey string
	from   string
}

func NewHTTPProvider(cfg config.EmailConfig) *HTTPProvider {
	return &HTTPProvider{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		url:    cfg.APIURL,
		apiKey: cfg.APIKey,
		from:   cfg.From,
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

func (p *HTTPProvider) Send(ctx context.Context, msg Message) (string, error) {
	from := msg.From
	if from == "" {
		from = p.from
	}

	body, err := json.Marshal(sendRequest{
		From:    from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("email provider returned %d: %s: %w",
			resp.StatusCode, bytes.TrimSpace(detail), core.ErrUnavailable)
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode email response: %w", err)
	}

	return out.ID, nil
}
