package request

import (
	"strings"
	"time"

	"quote_negotiation/internal/domain/entities"
)

// CreateQuoteRequestRequest is the client's POST /quote-requests body.
type CreateQuoteRequestRequest struct {
	FreelancerID string   `json:"freelancerId" binding:"required"`
	Title        string   `json:"title" binding:"required,max=200"`
	Description  string   `json:"description" binding:"max=8000"`
	BudgetMin    *float64 `json:"budgetMin" binding:"omitempty,gte=0"`
	BudgetMax    *float64 `json:"budgetMax" binding:"omitempty,gte=0"`
	Deadline     *string  `json:"deadline" binding:"omitempty,isodate"`
}

// ToNewQuoteRequest converts the payload into the domain command.
func (r CreateQuoteRequestRequest) ToNewQuoteRequest() (entities.NewQuoteRequest, error) {
	deadline, err := parseOptionalDate("deadline", r.Deadline)
	if err != nil {
		return entities.NewQuoteRequest{}, err
	}
	return entities.NewQuoteRequest{
		FreelancerID: strings.TrimSpace(r.FreelancerID),
		Title:        strings.TrimSpace(r.Title),
		Description:  r.Description,
		BudgetMin:    r.BudgetMin,
		BudgetMax:    r.BudgetMax,
		Deadline:     deadline,
	}, nil
}

// CounterProposalRequest carries the freelancer's adjusted offer. Bounds are
// checked by the use case so that accept and decline can ignore them.
type CounterProposalRequest struct {
	CounterBudgetMin *float64 `json:"counterBudgetMin"`
	CounterBudgetMax *float64 `json:"counterBudgetMax"`
	CounterDeadline  *string  `json:"counterDeadline"`
	CounterMessage   *string  `json:"counterMessage"`
}

// ResolveCounter parses the payload into a domain counter proposal.
func (r CounterProposalRequest) ResolveCounter() (entities.CounterProposal, error) {
	deadline, err := parseOptionalDate("counterDeadline", r.CounterDeadline)
	if err != nil {
		return entities.CounterProposal{}, err
	}
	return entities.CounterProposal{
		BudgetMin: r.CounterBudgetMin,
		BudgetMax: r.CounterBudgetMax,
		Deadline:  deadline,
		Message:   r.CounterMessage,
	}, nil
}

// ResolveQuoteRequestRequest is the POST /quote-requests/:id/resolve body.
type ResolveQuoteRequestRequest struct {
	Action string `json:"action"`
	CounterProposalRequest
}

// IsCounter reports whether the counter fields should be read.
func (r ResolveQuoteRequestRequest) IsCounter() bool {
	return strings.TrimSpace(r.Action) == string(entities.QuoteActionCounter)
}

// ParseISODate accepts an RFC 3339 timestamp or a YYYY-MM-DD date.
func ParseISODate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	t, err := time.Parse(time.RFC3339, v)
	if err == nil {
		return t.UTC(), nil
	}
	d, dateErr := time.Parse(time.DateOnly, v)
	if dateErr != nil {
		return time.Time{}, err
	}
	return d, nil
}

func parseOptionalDate(field string, v *string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	t, err := ParseISODate(*v)
	if err != nil {
		return nil, entities.NewValidationError(field, "must be an RFC 3339 timestamp or a YYYY-MM-DD date")
	}
	return &t, nil
}
