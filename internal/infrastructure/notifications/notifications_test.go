package notifications

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"quote_negotiation/internal/domain/entities"
	mock_interfaces "quote_negotiation/internal/usecase/interfaces/mocks"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/mock/gomock"
)

func sampleNotification() entities.Notification {
	return entities.Notification{
		ID:             "n-1",
		RecipientID:    "C1",
		ActorID:        "F1",
		QuoteRequestID: "q-1",
		Type:           entities.NotificationQuoteRequestAccepted,
		Title:          "Landing page",
		CreatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

type fakeInserter struct {
	doc any
	err error
}

func (f *fakeInserter) InsertOne(_ context.Context, document interface{}, _ ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error) {
	f.doc = document
	if f.err != nil {
		return nil, f.err
	}
	return &mongo.InsertOneResult{InsertedID: "n-1"}, nil
}

func TestMongoNotifier_Notify(t *testing.T) {
	col := &fakeInserter{}
	if err := NewMongoNotifier(col).Notify(context.Background(), sampleNotification()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, ok := col.doc.(notificationDocument)
	if !ok {
		t.Fatalf("unexpected document type %T", col.doc)
	}
	if doc.ID != "n-1" || doc.RecipientID != "C1" || doc.Type != "QUOTE_REQUEST_ACCEPTED" || doc.Read {
		t.Fatalf("unexpected document %+v", doc)
	}
	if !strings.Contains(doc.Message, "accepted") {
		t.Fatalf("unexpected message %q", doc.Message)
	}

	col.err = errors.New("no primary")
	if err := NewMongoNotifier(col).Notify(context.Background(), sampleNotification()); err == nil {
		t.Fatalf("expected insert error")
	}
}

func TestLogNotifier_Notify(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))
	if err := n.Notify(context.Background(), sampleNotification()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"recipient_id":"C1"`) || !strings.Contains(buf.String(), "QUOTE_REQUEST_ACCEPTED") {
		t.Fatalf("unexpected log output %q", buf.String())
	}
}

func TestAsyncNotifier(t *testing.T) {
	t.Run("delivers with a deadline after the caller context is cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := mock_interfaces.NewMockINotifier(ctrl)
		a := NewAsyncNotifier(next, time.Second, zerolog.Nop())

		next.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, n entities.Notification) error {
				if ctx.Err() != nil {
					t.Errorf("delivery context must outlive the request: %v", ctx.Err())
				}
				if _, ok := ctx.Deadline(); !ok {
					t.Errorf("expected a deadline")
				}
				if n.ID != "n-1" {
					t.Errorf("unexpected notification %+v", n)
				}
				return nil
			},
		)

		ctx, cancel := context.WithCancel(context.Background())
		err := a.Notify(ctx, sampleNotification())
		cancel()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		a.Wait()
	})

	t.Run("errors and panics are swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := mock_interfaces.NewMockINotifier(ctrl)
		var buf bytes.Buffer
		a := NewAsyncNotifier(next, 0, zerolog.New(&buf))

		gomock.InOrder(
			next.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("mongo down")),
			next.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(
				func(context.Context, entities.Notification) error { panic("boom") },
			),
		)

		if err := a.Notify(context.Background(), sampleNotification()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		a.Wait()
		if err := a.Notify(context.Background(), sampleNotification()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		a.Wait()

		if !strings.Contains(buf.String(), "notification delivery failed") || !strings.Contains(buf.String(), "notifier panicked") {
			t.Fatalf("expected both failures logged, got %q", buf.String())
		}
	})
}

func TestMessage(t *testing.T) {
	n := sampleNotification()
	for typ, want := range map[entities.NotificationType]string{
		entities.NotificationQuoteRequestCreated:   "new quote request",
		entities.NotificationQuoteRequestDeclined:  "declined",
		entities.NotificationQuoteRequestCountered: "counter proposal",
		entities.NotificationQuoteRequestDeleted:   "deleted",
	} {
		n.Type = typ
		if got := Message(n); !strings.Contains(got, want) {
			t.Fatalf("%s: expected %q in %q", typ, want, got)
		}
	}
}
