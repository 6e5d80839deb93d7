package notifications

import (
	"context"
	"sync"
	"time"

	"quote_negotiation/internal/domain/entities"
	"quote_negotiation/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

const defaultNotifyTimeout = 5 * time.Second

// AsyncNotifier hands each notification to next on its own goroutine with
// its own deadline. Notify never blocks the caller and never fails.
type AsyncNotifier struct {
	next    interfaces.INotifier
	timeout time.Duration
	log     zerolog.Logger
	wg      sync.WaitGroup
}

var _ interfaces.INotifier = (*AsyncNotifier)(nil)

func NewAsyncNotifier(next interfaces.INotifier, timeout time.Duration, logger zerolog.Logger) *AsyncNotifier {
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	return &AsyncNotifier{
		next:    next,
		timeout: timeout,
		log:     logger.With().Str("component", "quote.notifier").Logger(),
	}
}

func (a *AsyncNotifier) Notify(ctx context.Context, n entities.Notification) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				a.log.Error().Interface("panic", r).Str("notification_id", n.ID).Msg("notifier panicked")
			}
		}()

		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()
		if err := a.next.Notify(dctx, n); err != nil {
			a.log.Warn().Err(err).
				Str("notification_id", n.ID).
				Str("type", string(n.Type)).
				Str("recipient_id", n.RecipientID).
				Msg("notification delivery failed")
		}
	}()
	return nil
}

// Wait blocks until every in-flight notification has finished.
func (a *AsyncNotifier) Wait() {
	a.wg.Wait()
}
