package entities

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"
)

// QuoteAction is a freelancer's answer to a pending quote request.
type QuoteAction string

const (
	QuoteActionAccept  QuoteAction = "accept"
	QuoteActionDecline QuoteAction = "decline"
	QuoteActionCounter QuoteAction = "counter"
)

// DefaultCounterMessageMaxLength bounds CounterProposal.Message in characters.
const DefaultCounterMessageMaxLength = 4000

// ParseQuoteAction validates the action enum.
func ParseQuoteAction(v string) (QuoteAction, error) {
	switch a := QuoteAction(v); a {
	case QuoteActionAccept, QuoteActionDecline, QuoteActionCounter:
		return a, nil
	}
	return "", NewValidationError("action", fmt.Sprintf("must be one of accept, decline, counter (got %q)", v))
}

// TargetStatus is the status a successful action moves a PENDING request to.
func (a QuoteAction) TargetStatus() QuoteRequestStatus {
	switch a {
	case QuoteActionAccept:
		return QuoteRequestStatusAccepted
	case QuoteActionDecline:
		return QuoteRequestStatusDeclined
	case QuoteActionCounter:
		return QuoteRequestStatusCountered
	}
	return ""
}

// CounterProposal is the freelancer's adjusted offer. Nil fields are stored
// as absent, never merged with a previous proposal.
type CounterProposal struct {
	BudgetMin *float64
	BudgetMax *float64
	Deadline  *time.Time
	Message   *string
}

// Validate checks bounds and the message length limit.
func (c CounterProposal) Validate(maxMessageLength int) error {
	if err := validateBudgetRange("counterBudgetMin", "counterBudgetMax", c.BudgetMin, c.BudgetMax); err != nil {
		return err
	}
	if maxMessageLength <= 0 {
		maxMessageLength = DefaultCounterMessageMaxLength
	}
	if c.Message != nil && runeLen(*c.Message) > maxMessageLength {
		return NewValidationError("counterMessage", fmt.Sprintf("must be at most %d characters", maxMessageLength))
	}
	return nil
}

// Transition is the single state change applied by a resolve call.
type Transition struct {
	Status  QuoteRequestStatus
	Counter *CounterProposal
	At      time.Time
}

// NewTransition builds the transition for action. counter is only kept for
// QuoteActionCounter.
func NewTransition(action QuoteAction, counter CounterProposal, at time.Time) Transition {
	t := Transition{Status: action.TargetStatus(), At: at}
	if action == QuoteActionCounter {
		c := counter
		t.Counter = &c
	}
	return t
}

// Apply returns q with the transition applied.
func (t Transition) Apply(q QuoteRequest) QuoteRequest {
	q.Status = t.Status
	q.UpdatedAt = t.At
	if t.Counter != nil {
		q.CounterBudgetMin = t.Counter.BudgetMin
		q.CounterBudgetMax = t.Counter.BudgetMax
		q.CounterDeadline = t.Counter.Deadline
		q.CounterMessage = t.Counter.Message
	}
	return q
}

func validateBudgetRange(minField, maxField string, min, max *float64) error {
	if err := validateAmount(minField, min); err != nil {
		return err
	}
	if err := validateAmount(maxField, max); err != nil {
		return err
	}
	if min != nil && max != nil && *max < *min {
		return NewValidationError(maxField, fmt.Sprintf("must be greater than or equal to %s", minField))
	}
	return nil
}

func validateAmount(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return NewValidationError(field, "must be a finite number")
	}
	if *v < 0 {
		return NewValidationError(field, "must not be negative")
	}
	return nil
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
