package notifications

import (
	"context"
	"fmt"
	"time"

	"quote_negotiation/internal/domain/entities"
	"quote_negotiation/internal/usecase/interfaces"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NotificationInserter is the subset of *mongo.Collection used here.
type NotificationInserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
}

type notificationDocument struct {
	ID             string    `bson:"_id"`
	RecipientID    string    `bson:"recipientId"`
	ActorID        string    `bson:"actorId"`
	QuoteRequestID string    `bson:"quoteRequestId"`
	Type           string    `bson:"type"`
	Title          string    `bson:"title,omitempty"`
	Message        string    `bson:"message"`
	Read           bool      `bson:"read"`
	CreatedAt      time.Time `bson:"createdAt"`
}

// MongoNotifier stores notifications in a MongoDB collection, one document
// per recipient, for the inbox to read.
type MongoNotifier struct {
	col NotificationInserter
}

var _ interfaces.INotifier = (*MongoNotifier)(nil)

func NewMongoNotifier(col NotificationInserter) *MongoNotifier {
	return &MongoNotifier{col: col}
}

func (m *MongoNotifier) Notify(ctx context.Context, n entities.Notification) error {
	doc := notificationDocument{
		ID:             n.ID,
		RecipientID:    n.RecipientID,
		ActorID:        n.ActorID,
		QuoteRequestID: n.QuoteRequestID,
		Type:           string(n.Type),
		Title:          n.Title,
		Message:        Message(n),
		CreatedAt:      n.CreatedAt.UTC(),
	}
	if _, err := m.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}
