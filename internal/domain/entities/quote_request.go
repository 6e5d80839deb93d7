package entities

import (
	"fmt"
	"time"
)

// QuoteRequestStatus represents the lifecycle of a quote request.
//
// Domain notes:
//   - Every quote request starts PENDING.
//   - Only the freelancer moves it out of PENDING, and only once.
//   - ACCEPTED and DECLINED are terminal; COUNTERED waits on an out-of-band decision.
type QuoteRequestStatus string

const (
	QuoteRequestStatusPending   QuoteRequestStatus = "PENDING"
	QuoteRequestStatusAccepted  QuoteRequestStatus = "ACCEPTED"
	QuoteRequestStatusDeclined  QuoteRequestStatus = "DECLINED"
	QuoteRequestStatusCountered QuoteRequestStatus = "COUNTERED"
)

// ParseQuoteRequestStatus converts a stored value into a known status.
func ParseQuoteRequestStatus(v string) (QuoteRequestStatus, error) {
	switch s := QuoteRequestStatus(v); s {
	case QuoteRequestStatusPending, QuoteRequestStatusAccepted, QuoteRequestStatusDeclined, QuoteRequestStatusCountered:
		return s, nil
	}
	return "", fmt.Errorf("unknown quote request status %q", v)
}

// IsTerminal reports whether no further transition can ever apply.
func (s QuoteRequestStatus) IsTerminal() bool {
	return s == QuoteRequestStatusAccepted || s == QuoteRequestStatusDeclined
}

// QuoteRequest is one negotiation thread between a client and a freelancer.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (client_id-index): client_id
//   - GSI2 (freelancer_id-index): freelancer_id
//
// Counter fields are only populated by a counter transition and are replaced
// as a whole on each one.
type QuoteRequest struct {
	ID           string `json:"id"`
	ClientID     string `json:"client_id"`
	FreelancerID string `json:"freelancer_id"`

	Title       string     `json:"title"`
	Description string     `json:"description"`
	BudgetMin   *float64   `json:"budget_min,omitempty"`
	BudgetMax   *float64   `json:"budget_max,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`

	Status QuoteRequestStatus `json:"status"`

	CounterBudgetMin *float64   `json:"counter_budget_min,omitempty"`
	CounterBudgetMax *float64   `json:"counter_budget_max,omitempty"`
	CounterDeadline  *time.Time `json:"counter_deadline,omitempty"`
	CounterMessage   *string    `json:"counter_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsParticipant reports whether userID is the client or the freelancer.
func (q QuoteRequest) IsParticipant(userID string) bool {
	return userID != "" && (userID == q.ClientID || userID == q.FreelancerID)
}

// Counterpart returns the other participant of the thread.
func (q QuoteRequest) Counterpart(userID string) string {
	if userID == q.ClientID {
		return q.FreelancerID
	}
	return q.ClientID
}

// NewQuoteRequest is the client's initial ask.
type NewQuoteRequest struct {
	FreelancerID string
	Title        string
	Description  string
	BudgetMin    *float64
	BudgetMax    *float64
	Deadline     *time.Time
}

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 8000
)

// Validate checks the client supplied fields.
func (n NewQuoteRequest) Validate(clientID string) error {
	if n.FreelancerID == "" {
		return NewValidationError("freelancerId", "is required")
	}
	if n.FreelancerID == clientID {
		return NewValidationError("freelancerId", "must differ from the client")
	}
	if n.Title == "" {
		return NewValidationError("title", "is required")
	}
	if runeLen(n.Title) > MaxTitleLength {
		return NewValidationError("title", fmt.Sprintf("must be at most %d characters", MaxTitleLength))
	}
	if runeLen(n.Description) > MaxDescriptionLength {
		return NewValidationError("description", fmt.Sprintf("must be at most %d characters", MaxDescriptionLength))
	}
	return validateBudgetRange("budgetMin", "budgetMax", n.BudgetMin, n.BudgetMax)
}
