package notifications

import (
	"context"
	"quote_negotiation/internal/domain/entities"
	"quote_negotiation/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

// LogNotifier writes notifications to the log instead of delivering them.
type LogNotifier struct {
	log zerolog.Logger
}

var _ interfaces.INotifier = (*LogNotifier)(nil)

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: logger.With().Str("component", "quote.notifier").Logger()}
}

func (l *LogNotifier) Notify(_ context.Context, n entities.Notification) error {
	l.log.Info().
		Str("notification_id", n.ID).
		Str("type", string(n.Type)).
		Str("recipient_id", n.RecipientID).
		Str("actor_id", n.ActorID).
		Str("quote_request_id", n.QuoteRequestID).
		Msg(Message(n))
	return nil
}
