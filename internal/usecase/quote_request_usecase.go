package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quote_negotiation/internal/domain/entities"
	"quote_negotiation/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrQuoteRequestNotFound        = errors.New("quote request not found")
	ErrQuoteRequestAlreadyResolved = errors.New("quote request already resolved")
	ErrUnauthenticated             = errors.New("caller identity is required")
	ErrForbidden                   = errors.New("forbidden")
	ErrNotQuoteFreelancer          = fmt.Errorf("%w: only the freelancer can resolve this quote request", ErrForbidden)
	ErrNotQuoteParticipant         = fmt.Errorf("%w: caller is not a participant of this quote request", ErrForbidden)
)

//go:generate mockgen -source=quote_request_usecase.go -destination=../adapter/http/handlers/mocks/mock_quote_request_usecase.go -package=mocks

// IQuoteRequestUseCase exposes the quote negotiation operations.
//
//   - Create: a client asks a freelancer for a quote (status PENDING).
//   - Resolve: the freelancer accepts, declines or counters a PENDING request, once.
//   - Remove: either participant hard-deletes the request at any status.
type IQuoteRequestUseCase interface {
	Create(ctx context.Context, callerID string, in entities.NewQuoteRequest) (entities.QuoteRequest, error)
	GetByID(ctx context.Context, id, callerID string) (entities.QuoteRequest, error)
	ListForParticipant(ctx context.Context, callerID string) ([]entities.QuoteRequest, error)
	Resolve(ctx context.Context, id, callerID, action string, counter entities.CounterProposal) (entities.QuoteRequest, error)
	Remove(ctx context.Context, id, callerID string) (string, error)
}

// Options tunes validation limits.
type Options struct {
	CounterMessageMaxLength int
}

type QuoteRequestUseCase struct {
	repo     interfaces.IQuoteRequestRepository
	notifier interfaces.INotifier
	log      zerolog.Logger
	opts     Options

	now   func() time.Time
	newID func() string
}

var _ IQuoteRequestUseCase = (*QuoteRequestUseCase)(nil)

// NewQuoteRequestUseCase wires the use case. notifier may be nil.
func NewQuoteRequestUseCase(repo interfaces.IQuoteRequestRepository, notifier interfaces.INotifier, logger zerolog.Logger, opts Options) *QuoteRequestUseCase {
	if opts.CounterMessageMaxLength <= 0 {
		opts.CounterMessageMaxLength = entities.DefaultCounterMessageMaxLength
	}
	return &QuoteRequestUseCase{
		repo:     repo,
		notifier: notifier,
		log:      logger.With().Str("component", "quote.usecase").Logger(),
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

func (u *QuoteRequestUseCase) Create(ctx context.Context, callerID string, in entities.NewQuoteRequest) (entities.QuoteRequest, error) {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return entities.QuoteRequest{}, ErrUnauthenticated
	}
	in.FreelancerID = strings.TrimSpace(in.FreelancerID)
	in.Title = strings.TrimSpace(in.Title)
	if err := in.Validate(callerID); err != nil {
		return entities.QuoteRequest{}, err
	}

	now := u.now()
	q := entities.QuoteRequest{
		ID:           u.newID(),
		ClientID:     callerID,
		FreelancerID: in.FreelancerID,
		Title:        in.Title,
		Description:  in.Description,
		BudgetMin:    in.BudgetMin,
		BudgetMax:    in.BudgetMax,
		Deadline:     in.Deadline,
		Status:       entities.QuoteRequestStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := u.repo.Create(ctx, q)
	if err != nil {
		u.log.Error().Err(err).Str("client_id", callerID).Msg("create quote request failed")
		return entities.QuoteRequest{}, fmt.Errorf("create quote request: %w", err)
	}
	u.log.Info().Str("quote_request_id", created.ID).Str("client_id", created.ClientID).
		Str("freelancer_id", created.FreelancerID).Msg("quote request created")

	u.notify(ctx, created.FreelancerID, callerID, created, entities.NotificationQuoteRequestCreated, now)
	return created, nil
}

func (u *QuoteRequestUseCase) GetByID(ctx context.Context, id, callerID string) (entities.QuoteRequest, error) {
	q, err := u.loadForParticipant(ctx, id, callerID)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	return q, nil
}

func (u *QuoteRequestUseCase) ListForParticipant(ctx context.Context, callerID string) ([]entities.QuoteRequest, error) {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	items, err := u.repo.ListByParticipant(ctx, callerID)
	if err != nil {
		u.log.Error().Err(err).Str("caller_id", callerID).Msg("list quote requests failed")
		return nil, fmt.Errorf("list quote requests: %w", err)
	}
	return sortNewestFirst(dedupeByID(items)), nil
}

// Resolve moves a PENDING quote request to ACCEPTED, DECLINED or COUNTERED.
// Checks run in a fixed order and the first failure wins. The final write is
// conditional on the row still being PENDING, so when two resolves race only
// one succeeds and the other gets ErrQuoteRequestAlreadyResolved.
func (u *QuoteRequestUseCase) Resolve(ctx context.Context, id, callerID, action string, counter entities.CounterProposal) (entities.QuoteRequest, error) {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return entities.QuoteRequest{}, ErrUnauthenticated
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteRequest{}, entities.NewValidationError("id", "is required")
	}
	act, err := entities.ParseQuoteAction(strings.TrimSpace(action))
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if act == entities.QuoteActionCounter {
		if err := counter.Validate(u.opts.CounterMessageMaxLength); err != nil {
			return entities.QuoteRequest{}, err
		}
	}

	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		u.log.Error().Err(err).Str("quote_request_id", id).Msg("load quote request failed")
		return entities.QuoteRequest{}, fmt.Errorf("load quote request: %w", err)
	}
	if current.ID == "" {
		return entities.QuoteRequest{}, ErrQuoteRequestNotFound
	}
	if current.FreelancerID != callerID {
		u.log.Warn().Str("quote_request_id", id).Str("caller_id", callerID).Msg("resolve rejected: caller is not the freelancer")
		return entities.QuoteRequest{}, ErrNotQuoteFreelancer
	}
	if current.Status != entities.QuoteRequestStatusPending {
		return entities.QuoteRequest{}, ErrQuoteRequestAlreadyResolved
	}

	t := entities.NewTransition(act, counter, u.now())
	updated, err := u.repo.ResolvePending(ctx, id, callerID, t)
	if err != nil {
		u.log.Error().Err(err).Str("quote_request_id", id).Str("action", string(act)).Msg("resolve quote request failed")
		return entities.QuoteRequest{}, fmt.Errorf("resolve quote request: %w", err)
	}
	if updated.ID == "" {
		u.log.Info().Str("quote_request_id", id).Str("action", string(act)).Msg("resolve lost the race: request no longer pending")
		return entities.QuoteRequest{}, ErrQuoteRequestAlreadyResolved
	}
	u.log.Info().Str("quote_request_id", id).Str("status", string(updated.Status)).Msg("quote request resolved")

	u.notify(ctx, updated.ClientID, callerID, updated, entities.NotificationTypeForStatus(updated.Status), t.At)
	return updated, nil
}

// Remove hard-deletes the quote request regardless of status.
func (u *QuoteRequestUseCase) Remove(ctx context.Context, id, callerID string) (string, error) {
	callerID = strings.TrimSpace(callerID)
	q, err := u.loadForParticipant(ctx, id, callerID)
	if err != nil {
		return "", err
	}

	deleted, err := u.repo.Delete(ctx, q.ID)
	if err != nil {
		u.log.Error().Err(err).Str("quote_request_id", q.ID).Msg("delete quote request failed")
		return "", fmt.Errorf("delete quote request: %w", err)
	}
	if !deleted {
		return "", ErrQuoteRequestNotFound
	}
	u.log.Info().Str("quote_request_id", q.ID).Str("caller_id", callerID).Msg("quote request deleted")

	u.notify(ctx, q.Counterpart(callerID), callerID, q, entities.NotificationQuoteRequestDeleted, u.now())
	return q.ID, nil
}

func (u *QuoteRequestUseCase) loadForParticipant(ctx context.Context, id, callerID string) (entities.QuoteRequest, error) {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return entities.QuoteRequest{}, ErrUnauthenticated
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteRequest{}, entities.NewValidationError("id", "is required")
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		u.log.Error().Err(err).Str("quote_request_id", id).Msg("load quote request failed")
		return entities.QuoteRequest{}, fmt.Errorf("load quote request: %w", err)
	}
	if q.ID == "" {
		return entities.QuoteRequest{}, ErrQuoteRequestNotFound
	}
	if !q.IsParticipant(callerID) {
		return entities.QuoteRequest{}, ErrNotQuoteParticipant
	}
	return q, nil
}

// notify is best effort: a failure is logged and never returned.
func (u *QuoteRequestUseCase) notify(ctx context.Context, recipientID, actorID string, q entities.QuoteRequest, typ entities.NotificationType, at time.Time) {
	if u.notifier == nil || recipientID == "" || typ == "" {
		return
	}
	n := entities.Notification{
		ID:             u.newID(),
		RecipientID:    recipientID,
		ActorID:        actorID,
		QuoteRequestID: q.ID,
		Type:           typ,
		Title:          q.Title,
		CreatedAt:      at,
	}
	if err := u.notifier.Notify(ctx, n); err != nil {
		u.log.Warn().Err(err).Str("quote_request_id", q.ID).Str("recipient_id", recipientID).
			Str("type", string(typ)).Msg("notification failed")
	}
}
