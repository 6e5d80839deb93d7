package entities

import "time"

// NotificationType identifies what happened to a quote request.
type NotificationType string

const (
	NotificationQuoteRequestCreated   NotificationType = "QUOTE_REQUEST_CREATED"
	NotificationQuoteRequestAccepted  NotificationType = "QUOTE_REQUEST_ACCEPTED"
	NotificationQuoteRequestDeclined  NotificationType = "QUOTE_REQUEST_DECLINED"
	NotificationQuoteRequestCountered NotificationType = "QUOTE_REQUEST_COUNTERED"
	NotificationQuoteRequestDeleted   NotificationType = "QUOTE_REQUEST_DELETED"
)

// NotificationTypeForStatus maps a resolved status to the event sent to the client.
func NotificationTypeForStatus(s QuoteRequestStatus) NotificationType {
	switch s {
	case QuoteRequestStatusAccepted:
		return NotificationQuoteRequestAccepted
	case QuoteRequestStatusDeclined:
		return NotificationQuoteRequestDeclined
	case QuoteRequestStatusCountered:
		return NotificationQuoteRequestCountered
	}
	return ""
}

// Notification is a one-way message to a participant about a quote request.
type Notification struct {
	ID             string           `json:"id"`
	RecipientID    string           `json:"recipient_id"`
	ActorID        string           `json:"actor_id"`
	QuoteRequestID string           `json:"quote_request_id"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	CreatedAt      time.Time        `json:"created_at"`
}
