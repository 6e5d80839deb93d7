package notifications

import (
	"fmt"
	"quote_negotiation/internal/domain/entities"
)

// Message renders the human readable text shown to the recipient.
func Message(n entities.Notification) string {
	title := n.Title
	if title == "" {
		title = n.QuoteRequestID
	}
	switch n.Type {
	case entities.NotificationQuoteRequestCreated:
		return fmt.Sprintf("You received a new quote request: %q", title)
	case entities.NotificationQuoteRequestAccepted:
		return fmt.Sprintf("Your quote request %q was accepted", title)
	case entities.NotificationQuoteRequestDeclined:
		return fmt.Sprintf("Your quote request %q was declined", title)
	case entities.NotificationQuoteRequestCountered:
		return fmt.Sprintf("You received a counter proposal for %q", title)
	case entities.NotificationQuoteRequestDeleted:
		return fmt.Sprintf("The quote request %q was deleted", title)
	}
	return fmt.Sprintf("Quote request %q was updated", title)
}
