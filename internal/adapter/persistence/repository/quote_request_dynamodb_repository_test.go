package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"quote_negotiation/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeDynamo struct {
	putIn    *dynamodb.PutItemInput
	updateIn *dynamodb.UpdateItemInput
	deleteIn *dynamodb.DeleteItemInput
	queries  []*dynamodb.QueryInput

	getOut    *dynamodb.GetItemOutput
	updateOut *dynamodb.UpdateItemOutput
	queryOut  map[string][]*dynamodb.QueryOutput
	err       error
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putIn = in
	return &dynamodb.PutItemOutput{}, f.err
}

func (f *fakeDynamo) GetItem(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.getOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getOut, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updateIn = in
	if f.err != nil {
		return nil, f.err
	}
	return f.updateOut, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.deleteIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queries = append(f.queries, in)
	if f.err != nil {
		return nil, f.err
	}
	pages := f.queryOut[aws.ToString(in.IndexName)]
	if len(pages) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}
	page := pages[0]
	f.queryOut[aws.ToString(in.IndexName)] = pages[1:]
	return page, nil
}

func f64(v float64) *float64 { return &v }

func mustMarshal(t *testing.T, q entities.QuoteRequest) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(toQuoteRequestItem(q))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func sampleQuote() entities.QuoteRequest {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return entities.QuoteRequest{
		ID:           "q-1",
		ClientID:     "C1",
		FreelancerID: "F1",
		Title:        "Landing page",
		BudgetMin:    f64(100),
		Status:       entities.QuoteRequestStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestQuoteRequestDynamoRepository_Create(t *testing.T) {
	ddb := &fakeDynamo{}
	repo := NewQuoteRequestDynamoRepository(ddb, "")

	if _, err := repo.Create(context.Background(), sampleQuote()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aws.ToString(ddb.putIn.TableName) != "quote_requests" {
		t.Fatalf("expected default table, got %s", aws.ToString(ddb.putIn.TableName))
	}
	if aws.ToString(ddb.putIn.ConditionExpression) != "attribute_not_exists(#id)" {
		t.Fatalf("unexpected condition %s", aws.ToString(ddb.putIn.ConditionExpression))
	}
	if _, ok := ddb.putIn.Item["budget_max"]; ok {
		t.Fatalf("nil budget must be omitted")
	}
	if n, ok := ddb.putIn.Item["budget_min"].(*types.AttributeValueMemberN); !ok || n.Value != "100" {
		t.Fatalf("expected numeric budget_min, got %#v", ddb.putIn.Item["budget_min"])
	}
}

func TestQuoteRequestDynamoRepository_GetByID(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		repo := NewQuoteRequestDynamoRepository(&fakeDynamo{}, "t")
		q, err := repo.GetByID(context.Background(), "q-1")
		if err != nil || q.ID != "" {
			t.Fatalf("expected zero value, got %+v %v", q, err)
		}
	})

	t.Run("found", func(t *testing.T) {
		want := sampleQuote()
		repo := NewQuoteRequestDynamoRepository(&fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: mustMarshal(t, want)}}, "t")
		q, err := repo.GetByID(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.ID != want.ID || q.Status != want.Status || !q.CreatedAt.Equal(want.CreatedAt) || *q.BudgetMin != 100 || q.BudgetMax != nil {
			t.Fatalf("unexpected entity: %+v", q)
		}
	})

	t.Run("unknown status is an error", func(t *testing.T) {
		bad := sampleQuote()
		bad.Status = "ARCHIVED"
		repo := NewQuoteRequestDynamoRepository(&fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: mustMarshal(t, bad)}}, "t")
		if _, err := repo.GetByID(context.Background(), "q-1"); err == nil {
			t.Fatalf("expected error for unknown status")
		}
	})
}

func TestBuildResolveUpdate(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("accept", func(t *testing.T) {
		u := buildResolveUpdate("F1", entities.NewTransition(entities.QuoteActionAccept, entities.CounterProposal{}, at))
		if u.update != "SET #status = :status, #updated_at = :updated_at" {
			t.Fatalf("unexpected update %q", u.update)
		}
		if u.condition != "attribute_exists(#id) AND #status = :pending AND #freelancer_id = :caller" {
			t.Fatalf("unexpected condition %q", u.condition)
		}
		if s := u.values[":caller"].(*types.AttributeValueMemberS); s.Value != "F1" {
			t.Fatalf("unexpected caller %s", s.Value)
		}
		if s := u.values[":status"].(*types.AttributeValueMemberS); s.Value != "ACCEPTED" {
			t.Fatalf("unexpected status %s", s.Value)
		}
	})

	t.Run("counter sets present fields and removes absent ones", func(t *testing.T) {
		msg := "Adjusted scope"
		u := buildResolveUpdate("F1", entities.NewTransition(entities.QuoteActionCounter, entities.CounterProposal{
			BudgetMin: f64(200),
			BudgetMax: f64(400),
			Message:   &msg,
		}, at))

		if !strings.Contains(u.update, "#counter_budget_min = :counter_budget_min") ||
			!strings.Contains(u.update, "#counter_budget_max = :counter_budget_max") ||
			!strings.Contains(u.update, "#counter_message = :counter_message") {
			t.Fatalf("missing SET clauses: %q", u.update)
		}
		if !strings.HasSuffix(u.update, " REMOVE #counter_deadline") {
			t.Fatalf("expected deadline removal: %q", u.update)
		}
		if n := u.values[":counter_budget_max"].(*types.AttributeValueMemberN); n.Value != "400" {
			t.Fatalf("unexpected counter max %s", n.Value)
		}
		if _, ok := u.values[":counter_deadline"]; ok {
			t.Fatalf("removed attribute must not have a value placeholder")
		}
		for placeholder := range u.names {
			if !strings.Contains(u.update+u.condition, placeholder) {
				t.Fatalf("unused attribute name %s", placeholder)
			}
		}
	})
}

func TestQuoteRequestDynamoRepository_ResolvePending(t *testing.T) {
	tr := entities.NewTransition(entities.QuoteActionDecline, entities.CounterProposal{}, time.Now())

	t.Run("condition failed yields zero value", func(t *testing.T) {
		ddb := &fakeDynamo{err: &types.ConditionalCheckFailedException{Message: aws.String("failed")}}
		repo := NewQuoteRequestDynamoRepository(ddb, "t")
		q, err := repo.ResolvePending(context.Background(), "q-1", "F1", tr)
		if err != nil || q.ID != "" {
			t.Fatalf("expected zero value, got %+v %v", q, err)
		}
		if ddb.updateIn.ReturnValues != types.ReturnValueAllNew {
			t.Fatalf("expected ALL_NEW")
		}
	})

	t.Run("other errors propagate", func(t *testing.T) {
		boom := errors.New("throttled")
		repo := NewQuoteRequestDynamoRepository(&fakeDynamo{err: boom}, "t")
		if _, err := repo.ResolvePending(context.Background(), "q-1", "F1", tr); !errors.Is(err, boom) {
			t.Fatalf("expected throttled, got %v", err)
		}
	})

	t.Run("returns updated entity", func(t *testing.T) {
		updated := tr.Apply(sampleQuote())
		repo := NewQuoteRequestDynamoRepository(&fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{Attributes: mustMarshal(t, updated)}}, "t")
		q, err := repo.ResolvePending(context.Background(), "q-1", "F1", tr)
		if err != nil || q.Status != entities.QuoteRequestStatusDeclined {
			t.Fatalf("unexpected result %+v %v", q, err)
		}
	})
}

func TestQuoteRequestDynamoRepository_Delete(t *testing.T) {
	ddb := &fakeDynamo{}
	repo := NewQuoteRequestDynamoRepository(ddb, "t")
	ok, err := repo.Delete(context.Background(), "q-1")
	if err != nil || !ok {
		t.Fatalf("expected deletion, got %v %v", ok, err)
	}
	if aws.ToString(ddb.deleteIn.ConditionExpression) != "attribute_exists(#id)" {
		t.Fatalf("expected existence condition")
	}

	repo = NewQuoteRequestDynamoRepository(&fakeDynamo{err: &types.ConditionalCheckFailedException{}}, "t")
	ok, err = repo.Delete(context.Background(), "q-1")
	if err != nil || ok {
		t.Fatalf("expected not deleted, got %v %v", ok, err)
	}
}

func TestQuoteRequestDynamoRepository_ListByParticipant(t *testing.T) {
	a := sampleQuote()
	b := sampleQuote()
	b.ID, b.ClientID, b.FreelancerID = "q-2", "C9", "C1"

	ddb := &fakeDynamo{queryOut: map[string][]*dynamodb.QueryOutput{
		"client_id-index": {
			{Items: []map[string]types.AttributeValue{mustMarshal(t, a)}, LastEvaluatedKey: idKey("q-1")},
			{Items: nil},
		},
		"freelancer_id-index": {
			{Items: []map[string]types.AttributeValue{mustMarshal(t, b)}},
		},
	}}
	repo := NewQuoteRequestDynamoRepository(ddb, "t")

	items, err := repo.ListByParticipant(context.Background(), "C1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].ID != "q-1" || items[1].ID != "q-2" {
		t.Fatalf("unexpected items %+v", items)
	}
	if len(ddb.queries) != 3 {
		t.Fatalf("expected paginated queries, got %d", len(ddb.queries))
	}
}
