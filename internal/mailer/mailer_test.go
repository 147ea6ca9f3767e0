// AngelaMos | 2026
// mailer_test.go

package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/carterperez-dev/foodhall/internal/config"
)

func TestHTTPProviderSend(t *testing.T) {
	var got sendRequest
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"id":"em_123"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(config.EmailConfig{
		APIURL:  srv.URL,
		APIKey:  "re_test",
		From:    "Food Hall <bookings@foodhall.test>",
		Timeout: 5 * time.Second,
	})

	id, err := p.Send(context.Background(), Message{
		To:      "guest@example.com",
		Subject: "Booking confirmed",
		HTML:    "<p>See you soon</p>",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if id != "em_123" {
		t.Errorf("id = %q", id)
	}
	if auth != "Bearer re_test" {
		t.Errorf("authorization = %q", auth)
	}
	if got.From != "Food Hall <bookings@foodhall.test>" || len(got.To) != 1 || got.To[0] != "guest@example.com" {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestHTTPProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"domain not verified"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewHTTPProvider(config.EmailConfig{APIURL: srv.URL, Timeout: time.Second})

	_, err := p.Send(context.Background(), Message{To: "guest@example.com"})
	if err == nil || !strings.Contains(err.Error(), "domain not verified") {
		t.Fatalf("expected provider error detail, got %v", err)
	}
}

func TestBuildMessageStripsHeaderBreaks(t *testing.T) {
	raw := string(buildMessage(
		"bookings@foodhall.test",
		"guest@example.com\r\nBcc: victim@example.com",
		"Hello\nX-Injected: yes",
		"<p>body</p>",
		"<id@foodhall.test>",
	))

	headers := raw[:strings.Index(raw, "\r\n\r\n")]
	for _, line := range strings.Split(headers, "\r\n") {
		if strings.HasPrefix(line, "Bcc:") || strings.HasPrefix(line, "X-Injected:") {
			t.Errorf("header injected: %q", line)
		}
	}
}

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		provider string
		wantErr  bool
	}{
		{provider: "log"},
		{provider: "http"},
		{provider: "smtp"},
		{provider: "carrier-pigeon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			p, err := New(config.EmailConfig{Provider: tt.provider}, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && p == nil {
				t.Fatal("nil provider")
			}
		})
	}
}

func TestLogProvider(t *testing.T) {
	id, err := NewLogProvider(nil).Send(context.Background(), Message{To: "a@b.test"})
	if err != nil || !strings.HasPrefix(id, "log-") {
		t.Errorf("id=%q err=%v", id, err)
	}
}
