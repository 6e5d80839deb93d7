package interfaces

import (
	"context"
	"quote_negotiation/internal/domain/entities"
)

//go:generate mockgen -source=quote_request_repository_interface.go -destination=mocks/mock_quote_request_repository_interface.go -package=mock_interfaces

// IQuoteRequestRepository abstracts persistence for QuoteRequest.
//
// Lookups return a zero-value QuoteRequest (empty ID) when nothing matched.
//
// ResolvePending is the only way a status changes: it applies t only when the
// stored row still has the given id, freelancer and status PENDING, as a single
// conditional write. A failed condition also yields the zero value.
type IQuoteRequestRepository interface {
	Create(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error)
	GetByID(ctx context.Context, id string) (entities.QuoteRequest, error)
	ListByParticipant(ctx context.Context, userID string) ([]entities.QuoteRequest, error)
	ResolvePending(ctx context.Context, id, freelancerID string, t entities.Transition) (entities.QuoteRequest, error)
	Delete(ctx context.Context, id string) (bool, error)
}
