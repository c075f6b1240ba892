package mail

import (
	"context"

	"github.com/sparetrackhq/sparetrack-backend/pkg/logger"
)

// LogSender writes mail to the log instead of delivering it. Used in dev
// when no SendGrid key is configured.
type LogSender struct {
	logg *logger.Logger
}

func NewLogSender(logg *logger.Logger) *LogSender {
	return &LogSender{logg: logg}
}

func (s *LogSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"to":      to,
			"subject": subject,
			"body":    htmlBody,
		})
		s.logg.Info(ctx, "mail.logged_not_sent")
	}
	return nil
}
