package entities

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func f64(v float64) *float64 { return &v }

func TestParseQuoteAction(t *testing.T) {
	for _, v := range []string{"accept", "decline", "counter"} {
		a, err := ParseQuoteAction(v)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", v, err)
		}
		if string(a) != v {
			t.Fatalf("expected %q, got %q", v, a)
		}
	}

	_, err := ParseQuoteAction("ACCEPT")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "action" {
		t.Fatalf("expected action field error, got %v", err)
	}
}

func TestQuoteAction_TargetStatus(t *testing.T) {
	cases := map[QuoteAction]QuoteRequestStatus{
		QuoteActionAccept:  QuoteRequestStatusAccepted,
		QuoteActionDecline: QuoteRequestStatusDeclined,
		QuoteActionCounter: QuoteRequestStatusCountered,
		QuoteAction("x"):   "",
	}
	for action, want := range cases {
		if got := action.TargetStatus(); got != want {
			t.Fatalf("%s: expected %q, got %q", action, want, got)
		}
	}
}

func TestCounterProposal_Validate(t *testing.T) {
	msg := "Adjusted scope"
	long := strings.Repeat("é", 11)

	cases := []struct {
		name    string
		c       CounterProposal
		max     int
		field   string
		wantErr bool
	}{
		{name: "empty", c: CounterProposal{}},
		{name: "valid range", c: CounterProposal{BudgetMin: f64(200), BudgetMax: f64(400), Message: &msg}},
		{name: "equal bounds", c: CounterProposal{BudgetMin: f64(300), BudgetMax: f64(300)}},
		{name: "only max", c: CounterProposal{BudgetMax: f64(10)}},
		{name: "max below min", c: CounterProposal{BudgetMin: f64(500), BudgetMax: f64(300)}, field: "counterBudgetMax", wantErr: true},
		{name: "negative min", c: CounterProposal{BudgetMin: f64(-1)}, field: "counterBudgetMin", wantErr: true},
		{name: "infinite max", c: CounterProposal{BudgetMax: f64(math.Inf(1))}, field: "counterBudgetMax", wantErr: true},
		{name: "nan min", c: CounterProposal{BudgetMin: f64(math.NaN())}, field: "counterBudgetMin", wantErr: true},
		{name: "message counts characters", c: CounterProposal{Message: &long}, max: 11},
		{name: "message too long", c: CounterProposal{Message: &long}, max: 10, field: "counterMessage", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.c.Validate(tc.max)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.field {
				t.Fatalf("expected field %s, got %s", tc.field, ve.Field)
			}
		})
	}
}

func TestCounterProposal_ValidateDefaultLimit(t *testing.T) {
	ok := strings.Repeat("a", DefaultCounterMessageMaxLength)
	if err := (CounterProposal{Message: &ok}).Validate(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tooLong := ok + "a"
	if err := (CounterProposal{Message: &tooLong}).Validate(0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTransition_Apply(t *testing.T) {
	now := time.Now().UTC()
	old := "old"
	q := QuoteRequest{
		ID:               "q-1",
		Status:           QuoteRequestStatusPending,
		CounterBudgetMin: f64(1),
		CounterMessage:   &old,
	}

	t.Run("accept keeps other fields", func(t *testing.T) {
		got := NewTransition(QuoteActionAccept, CounterProposal{BudgetMin: f64(9)}, now).Apply(q)
		if got.Status != QuoteRequestStatusAccepted || !got.UpdatedAt.Equal(now) {
			t.Fatalf("unexpected result: %+v", got)
		}
		if got.CounterBudgetMin == nil || *got.CounterBudgetMin != 1 || got.CounterMessage != &old {
			t.Fatalf("accept must not touch counter fields: %+v", got)
		}
	})

	t.Run("counter replaces all counter fields", func(t *testing.T) {
		got := NewTransition(QuoteActionCounter, CounterProposal{BudgetMax: f64(400)}, now).Apply(q)
		if got.Status != QuoteRequestStatusCountered {
			t.Fatalf("expected COUNTERED, got %s", got.Status)
		}
		if got.CounterBudgetMin != nil || got.CounterMessage != nil {
			t.Fatalf("expected previous counter values cleared: %+v", got)
		}
		if got.CounterBudgetMax == nil || *got.CounterBudgetMax != 400 {
			t.Fatalf("unexpected counter max: %+v", got.CounterBudgetMax)
		}
	})
}
