package interfaces

import (
	"context"
	"quote_negotiation/internal/domain/entities"
)

//go:generate mockgen -source=notifier_interface.go -destination=mocks/mock_notifier_interface.go -package=mock_interfaces

// INotifier delivers one-way messages to participants.
type INotifier interface {
	Notify(ctx context.Context, n entities.Notification) error
}
