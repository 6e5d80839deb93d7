package response

import (
	"time"

	"quote_negotiation/internal/domain/entities"
)

type QuoteRequestResponse struct {
	ID               string     `json:"id"`
	ClientID         string     `json:"clientId"`
	FreelancerID     string     `json:"freelancerId"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	BudgetMin        *float64   `json:"budgetMin"`
	BudgetMax        *float64   `json:"budgetMax"`
	Deadline         *time.Time `json:"deadline"`
	Status           string     `json:"status"`
	CounterBudgetMin *float64   `json:"counterBudgetMin"`
	CounterBudgetMax *float64   `json:"counterBudgetMax"`
	CounterDeadline  *time.Time `json:"counterDeadline"`
	CounterMessage   *string    `json:"counterMessage"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type QuoteRequestListResponse struct {
	Items []QuoteRequestResponse `json:"items"`
}

type DeleteQuoteRequestResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func FromQuoteRequest(q entities.QuoteRequest) QuoteRequestResponse {
	return QuoteRequestResponse{
		ID:               q.ID,
		ClientID:         q.ClientID,
		FreelancerID:     q.FreelancerID,
		Title:            q.Title,
		Description:      q.Description,
		BudgetMin:        q.BudgetMin,
		BudgetMax:        q.BudgetMax,
		Deadline:         q.Deadline,
		Status:           string(q.Status),
		CounterBudgetMin: q.CounterBudgetMin,
		CounterBudgetMax: q.CounterBudgetMax,
		CounterDeadline:  q.CounterDeadline,
		CounterMessage:   q.CounterMessage,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

// FromQuoteRequests never returns a nil Items slice, so an empty list
// renders as [].
func FromQuoteRequests(items []entities.QuoteRequest) QuoteRequestListResponse {
	out := make([]QuoteRequestResponse, 0, len(items))
	for _, q := range items {
		out = append(out, FromQuoteRequest(q))
	}
	return QuoteRequestListResponse{Items: out}
}

func FromDeletedQuoteRequest(id string) DeleteQuoteRequestResponse {
	return DeleteQuoteRequestResponse{ID: id, Deleted: true}
}
