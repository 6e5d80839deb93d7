package entities

import (
	"errors"
	"strings"
	"testing"
)

func TestParseQuoteRequestStatus(t *testing.T) {
	for _, v := range []string{"PENDING", "ACCEPTED", "DECLINED", "COUNTERED"} {
		if _, err := ParseQuoteRequestStatus(v); err != nil {
			t.Fatalf("unexpected error for %s: %v", v, err)
		}
	}
	if _, err := ParseQuoteRequestStatus("pending"); err == nil {
		t.Fatalf("expected error for lowercase status")
	}
	if _, err := ParseQuoteRequestStatus(""); err == nil {
		t.Fatalf("expected error for empty status")
	}
}

func TestQuoteRequestStatus_IsTerminal(t *testing.T) {
	if !QuoteRequestStatusAccepted.IsTerminal() || !QuoteRequestStatusDeclined.IsTerminal() {
		t.Fatalf("accepted and declined must be terminal")
	}
	if QuoteRequestStatusPending.IsTerminal() || QuoteRequestStatusCountered.IsTerminal() {
		t.Fatalf("pending and countered must not be terminal")
	}
}

func TestQuoteRequest_Participants(t *testing.T) {
	q := QuoteRequest{ClientID: "C1", FreelancerID: "F1"}
	if !q.IsParticipant("C1") || !q.IsParticipant("F1") {
		t.Fatalf("expected both participants")
	}
	if q.IsParticipant("X") || q.IsParticipant("") {
		t.Fatalf("stranger must not be a participant")
	}
	if q.Counterpart("C1") != "F1" || q.Counterpart("F1") != "C1" {
		t.Fatalf("unexpected counterpart")
	}
}

func TestNewQuoteRequest_Validate(t *testing.T) {
	base := NewQuoteRequest{FreelancerID: "F1", Title: "Landing page"}

	cases := []struct {
		name  string
		mod   func(n *NewQuoteRequest)
		field string
	}{
		{name: "valid"},
		{name: "missing freelancer", mod: func(n *NewQuoteRequest) { n.FreelancerID = "" }, field: "freelancerId"},
		{name: "self request", mod: func(n *NewQuoteRequest) { n.FreelancerID = "C1" }, field: "freelancerId"},
		{name: "missing title", mod: func(n *NewQuoteRequest) { n.Title = "" }, field: "title"},
		{name: "long title", mod: func(n *NewQuoteRequest) { n.Title = strings.Repeat("x", MaxTitleLength+1) }, field: "title"},
		{name: "long description", mod: func(n *NewQuoteRequest) { n.Description = strings.Repeat("x", MaxDescriptionLength+1) }, field: "description"},
		{name: "budget inverted", mod: func(n *NewQuoteRequest) { n.BudgetMin, n.BudgetMax = f64(10), f64(5) }, field: "budgetMax"},
		{name: "budget negative", mod: func(n *NewQuoteRequest) { n.BudgetMin = f64(-5) }, field: "budgetMin"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := base
			if tc.mod != nil {
				tc.mod(&n)
			}
			err := n.Validate("C1")
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("expected %s error, got %v", tc.field, err)
			}
		})
	}
}
