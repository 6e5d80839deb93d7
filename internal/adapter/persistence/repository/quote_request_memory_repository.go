package repository

import (
	"context"
	"fmt"
	"sync"

	"quote_negotiation/internal/domain/entities"
	"quote_negotiation/internal/usecase/interfaces"
)

// QuoteRequestMemoryRepository keeps quote requests in process memory. It is
// meant for local runs and tests; ResolvePending is a compare-and-set under
// the write lock.
type QuoteRequestMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]entities.QuoteRequest
}

var _ interfaces.IQuoteRequestRepository = (*QuoteRequestMemoryRepository)(nil)

func NewQuoteRequestMemoryRepository() *QuoteRequestMemoryRepository {
	return &QuoteRequestMemoryRepository{items: make(map[string]entities.QuoteRequest)}
}

func (r *QuoteRequestMemoryRepository) Create(_ context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[q.ID]; ok {
		return entities.QuoteRequest{}, fmt.Errorf("quote request %s already exists", q.ID)
	}
	r.items[q.ID] = q
	return q, nil
}

func (r *QuoteRequestMemoryRepository) GetByID(_ context.Context, id string) (entities.QuoteRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[id], nil
}

func (r *QuoteRequestMemoryRepository) ListByParticipant(_ context.Context, userID string) ([]entities.QuoteRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []entities.QuoteRequest
	for _, q := range r.items {
		if q.IsParticipant(userID) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *QuoteRequestMemoryRepository) ResolvePending(_ context.Context, id, freelancerID string, t entities.Transition) (entities.QuoteRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.items[id]
	if !ok || q.FreelancerID != freelancerID || q.Status != entities.QuoteRequestStatusPending {
		return entities.QuoteRequest{}, nil
	}
	q = t.Apply(q)
	r.items[id] = q
	return q, nil
}

func (r *QuoteRequestMemoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
