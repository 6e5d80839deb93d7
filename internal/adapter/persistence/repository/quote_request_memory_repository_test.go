package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"quote_negotiation/internal/domain/entities"
)

func TestQuoteRequestMemoryRepository_ResolvePending(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRequestMemoryRepository()
	if _, err := repo.Create(ctx, sampleQuote()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, sampleQuote()); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	decline := entities.NewTransition(entities.QuoteActionDecline, entities.CounterProposal{}, time.Now())

	if q, _ := repo.ResolvePending(ctx, "q-1", "C1", decline); q.ID != "" {
		t.Fatalf("client must not match the freelancer guard")
	}
	if q, _ := repo.ResolvePending(ctx, "missing", "F1", decline); q.ID != "" {
		t.Fatalf("missing row must yield zero value")
	}

	q, err := repo.ResolvePending(ctx, "q-1", "F1", decline)
	if err != nil || q.Status != entities.QuoteRequestStatusDeclined {
		t.Fatalf("unexpected result %+v %v", q, err)
	}
	if q, _ := repo.ResolvePending(ctx, "q-1", "F1", decline); q.ID != "" {
		t.Fatalf("second resolve must not match")
	}
}

func TestQuoteRequestMemoryRepository_ConcurrentResolve(t *testing.T) {
	ctx := context.Background()

	for round := 0; round < 50; round++ {
		repo := NewQuoteRequestMemoryRepository()
		if _, err := repo.Create(ctx, sampleQuote()); err != nil {
			t.Fatalf("create: %v", err)
		}

		actions := []entities.QuoteAction{entities.QuoteActionAccept, entities.QuoteActionDecline}
		results := make([]entities.QuoteRequest, len(actions))
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i, a := range actions {
			wg.Add(1)
			go func(i int, a entities.QuoteAction) {
				defer wg.Done()
				<-start
				results[i], _ = repo.ResolvePending(ctx, "q-1", "F1", entities.NewTransition(a, entities.CounterProposal{}, time.Now()))
			}(i, a)
		}
		close(start)
		wg.Wait()

		wins := 0
		for _, r := range results {
			if r.ID != "" {
				wins++
			}
		}
		if wins != 1 {
			t.Fatalf("round %d: expected exactly one winner, got %d", round, wins)
		}
		stored, _ := repo.GetByID(ctx, "q-1")
		if !stored.Status.IsTerminal() {
			t.Fatalf("round %d: expected terminal status, got %s", round, stored.Status)
		}
	}
}

func TestQuoteRequestMemoryRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRequestMemoryRepository()
	a := sampleQuote()
	b := sampleQuote()
	b.ID, b.ClientID, b.FreelancerID = "q-2", "X", "Y"
	_, _ = repo.Create(ctx, a)
	_, _ = repo.Create(ctx, b)

	items, _ := repo.ListByParticipant(ctx, "F1")
	if len(items) != 1 || items[0].ID != "q-1" {
		t.Fatalf("unexpected items %+v", items)
	}

	if ok, _ := repo.Delete(ctx, "q-1"); !ok {
		t.Fatalf("expected deletion")
	}
	if ok, _ := repo.Delete(ctx, "q-1"); ok {
		t.Fatalf("second delete must report false")
	}
}
