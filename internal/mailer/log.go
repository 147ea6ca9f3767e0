// AngelaMos | 2026
// log.go

package mailer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogProvider records messages in the log instead of delivering them.
type LogProvider struct {
	logger *slog.Logger
}

func NewLogProvider(logger *slog.Logger) *LogProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogProvider{logger: logger}
}

func (p *LogProvider) Send(ctx context.Context, msg Message) (string, error) {
	id := "log-" + uuid.New().String()

	p.logger.InfoContext(ctx, "email captured",
		"email_id", id,
		"to", msg.To,
		"subject", msg.Subject,
		"bytes", len(msg.HTML),
	)

	return id, nil
}
