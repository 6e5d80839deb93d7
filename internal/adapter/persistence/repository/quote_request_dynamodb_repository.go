package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quote_negotiation/internal/domain/entities"
	"quote_negotiation/internal/infrastructure/database"
	"quote_negotiation/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultQuoteRequestsTableName = "quote_requests"

// DynamoDBAPI is the subset of *dynamodb.Client used by the repository.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

type quoteRequestItem struct {
	ID           string `dynamodbav:"id"`
	ClientID     string `dynamodbav:"client_id"`
	FreelancerID string `dynamodbav:"freelancer_id"`

	Title       string   `dynamodbav:"title"`
	Description string   `dynamodbav:"description"`
	BudgetMin   *float64 `dynamodbav:"budget_min,omitempty"`
	BudgetMax   *float64 `dynamodbav:"budget_max,omitempty"`
	Deadline    string   `dynamodbav:"deadline,omitempty"`

	Status string `dynamodbav:"status"`

	CounterBudgetMin *float64 `dynamodbav:"counter_budget_min,omitempty"`
	CounterBudgetMax *float64 `dynamodbav:"counter_budget_max,omitempty"`
	CounterDeadline  string   `dynamodbav:"counter_deadline,omitempty"`
	CounterMessage   *string  `dynamodbav:"counter_message,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// QuoteRequestDynamoRepository persists QuoteRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: client_id-index (PK: client_id)
//   - GSI: freelancer_id-index (PK: freelancer_id)
type QuoteRequestDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IQuoteRequestRepository = (*QuoteRequestDynamoRepository)(nil)

func NewQuoteRequestDynamoRepository(ddb DynamoDBAPI, tableName string) *QuoteRequestDynamoRepository {
	if tableName == "" {
		tableName = defaultQuoteRequestsTableName
	}
	return &QuoteRequestDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteRequestDynamoRepository) Create(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
	av, err := attributevalue.MarshalMap(toQuoteRequestItem(q))
	if err != nil {
		return entities.QuoteRequest{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	return q, nil
}

func (r *QuoteRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.QuoteRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.QuoteRequest{}, nil
	}
	return unmarshalQuoteRequest(out.Item)
}

func (r *QuoteRequestDynamoRepository) ListByParticipant(ctx context.Context, userID string) ([]entities.QuoteRequest, error) {
	asClient, err := r.queryIndex(ctx, database.ClientIDIndex, "client_id", userID)
	if err != nil {
		return nil, err
	}
	asFreelancer, err := r.queryIndex(ctx, database.FreelancerIDIndex, "freelancer_id", userID)
	if err != nil {
		return nil, err
	}
	return append(asClient, asFreelancer...), nil
}

func (r *QuoteRequestDynamoRepository) queryIndex(ctx context.Context, index, attr, value string) ([]entities.QuoteRequest, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})

	var items []entities.QuoteRequest
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			q, err := unmarshalQuoteRequest(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, q)
		}
	}
	return items, nil
}

// ResolvePending applies t with a single conditional UpdateItem. A failed
// condition (missing row, other freelancer, status no longer PENDING) yields
// the zero value.
func (r *QuoteRequestDynamoRepository) ResolvePending(ctx context.Context, id, freelancerID string, t entities.Transition) (entities.QuoteRequest, error) {
	u := buildResolveUpdate(freelancerID, t)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String(u.condition),
		UpdateExpression:          aws.String(u.update),
		ExpressionAttributeNames:  u.names,
		ExpressionAttributeValues: u.values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.QuoteRequest{}, nil
		}
		return entities.QuoteRequest{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.QuoteRequest{}, nil
	}
	return unmarshalQuoteRequest(out.Attributes)
}

func (r *QuoteRequestDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type resolveUpdate struct {
	condition string
	update    string
	names     map[string]string
	values    map[string]types.AttributeValue
}

func buildResolveUpdate(freelancerID string, t entities.Transition) resolveUpdate {
	u := resolveUpdate{
		condition: "attribute_exists(#id) AND #status = :pending AND #freelancer_id = :caller",
		names: map[string]string{
			"#id":            "id",
			"#status":        "status",
			"#freelancer_id": "freelancer_id",
			"#updated_at":    "updated_at",
		},
		values: map[string]types.AttributeValue{
			":pending":    &types.AttributeValueMemberS{Value: string(entities.QuoteRequestStatusPending)},
			":caller":     &types.AttributeValueMemberS{Value: freelancerID},
			":status":     &types.AttributeValueMemberS{Value: string(t.Status)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(t.At)},
		},
	}

	set := []string{"#status = :status", "#updated_at = :updated_at"}
	var remove []string

	if c := t.Counter; c != nil {
		counterFields := []struct {
			attr string
			av   types.AttributeValue
		}{
			{"counter_budget_min", numberAV(c.BudgetMin)},
			{"counter_budget_max", numberAV(c.BudgetMax)},
			{"counter_deadline", timeAV(c.Deadline)},
			{"counter_message", stringAV(c.Message)},
		}
		for _, f := range counterFields {
			u.names["#"+f.attr] = f.attr
			if f.av == nil {
				remove = append(remove, "#"+f.attr)
				continue
			}
			set = append(set, fmt.Sprintf("#%s = :%s", f.attr, f.attr))
			u.values[":"+f.attr] = f.av
		}
	}

	u.update = "SET " + strings.Join(set, ", ")
	if len(remove) > 0 {
		u.update += " REMOVE " + strings.Join(remove, ", ")
	}
	return u
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func numberAV(v *float64) types.AttributeValue {
	if v == nil {
		return nil
	}
	return &types.AttributeValueMemberN{Value: floatToString(*v)}
}

func timeAV(v *time.Time) types.AttributeValue {
	if v == nil {
		return nil
	}
	return &types.AttributeValueMemberS{Value: formatTime(*v)}
}

func stringAV(v *string) types.AttributeValue {
	if v == nil {
		return nil
	}
	return &types.AttributeValueMemberS{Value: *v}
}

func unmarshalQuoteRequest(av map[string]types.AttributeValue) (entities.QuoteRequest, error) {
	var it quoteRequestItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.QuoteRequest{}, err
	}
	return fromQuoteRequestItem(it)
}

func toQuoteRequestItem(q entities.QuoteRequest) quoteRequestItem {
	return quoteRequestItem{
		ID:               q.ID,
		ClientID:         q.ClientID,
		FreelancerID:     q.FreelancerID,
		Title:            q.Title,
		Description:      q.Description,
		BudgetMin:        q.BudgetMin,
		BudgetMax:        q.BudgetMax,
		Deadline:         formatOptionalTime(q.Deadline),
		Status:           string(q.Status),
		CounterBudgetMin: q.CounterBudgetMin,
		CounterBudgetMax: q.CounterBudgetMax,
		CounterDeadline:  formatOptionalTime(q.CounterDeadline),
		CounterMessage:   q.CounterMessage,
		CreatedAt:        formatTime(q.CreatedAt),
		UpdatedAt:        formatTime(q.UpdatedAt),
	}
}

func fromQuoteRequestItem(it quoteRequestItem) (entities.QuoteRequest, error) {
	status, err := entities.ParseQuoteRequestStatus(it.Status)
	if err != nil {
		return entities.QuoteRequest{}, fmt.Errorf("quote request %s: %w", it.ID, err)
	}
	return entities.QuoteRequest{
		ID:               it.ID,
		ClientID:         it.ClientID,
		FreelancerID:     it.FreelancerID,
		Title:            it.Title,
		Description:      it.Description,
		BudgetMin:        it.BudgetMin,
		BudgetMax:        it.BudgetMax,
		Deadline:         parseOptionalTime(it.Deadline),
		Status:           status,
		CounterBudgetMin: it.CounterBudgetMin,
		CounterBudgetMax: it.CounterBudgetMax,
		CounterDeadline:  parseOptionalTime(it.CounterDeadline),
		CounterMessage:   it.CounterMessage,
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}, nil
}
