package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"quote_negotiation/internal/domain/entities"
	"quote_negotiation/internal/infrastructure/database"
	"quote_negotiation/internal/usecase/interfaces"

	"github.com/Masterminds/squirrel"
)

const quoteRequestsTable = "quote_requests"

var quoteRequestColumns = []string{
	"id", "client_id", "freelancer_id", "title", "description",
	"budget_min", "budget_max", "deadline", "status",
	"counter_budget_min", "counter_budget_max", "counter_deadline", "counter_message",
	"created_at", "updated_at",
}

// QuoteRequestPostgresRepository persists QuoteRequest entities in PostgreSQL.
// Schema lives in internal/infrastructure/database/migrations.
type QuoteRequestPostgresRepository struct {
	*database.Postgres
}

var _ interfaces.IQuoteRequestRepository = (*QuoteRequestPostgresRepository)(nil)

func NewQuoteRequestPostgresRepository(pg *database.Postgres) *QuoteRequestPostgresRepository {
	return &QuoteRequestPostgresRepository{pg}
}

func (r *QuoteRequestPostgresRepository) Create(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
	query, args, err := r.SqlBuilder.
		Insert(quoteRequestsTable).
		Columns(quoteRequestColumns...).
		Values(
			q.ID, q.ClientID, q.FreelancerID, q.Title, q.Description,
			q.BudgetMin, q.BudgetMax, q.Deadline, string(q.Status),
			q.CounterBudgetMin, q.CounterBudgetMax, q.CounterDeadline, q.CounterMessage,
			q.CreatedAt, q.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if _, err := r.Database.ExecContext(ctx, query, args...); err != nil {
		return entities.QuoteRequest{}, err
	}
	return q, nil
}

func (r *QuoteRequestPostgresRepository) GetByID(ctx context.Context, id string) (entities.QuoteRequest, error) {
	query, args, err := r.SqlBuilder.
		Select(quoteRequestColumns...).
		From(quoteRequestsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return entities.QuoteRequest{}, err
	}

	q, err := scanQuoteRequest(r.Database.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.QuoteRequest{}, nil
	}
	return q, err
}

func (r *QuoteRequestPostgresRepository) ListByParticipant(ctx context.Context, userID string) ([]entities.QuoteRequest, error) {
	query, args, err := r.SqlBuilder.
		Select(quoteRequestColumns...).
		From(quoteRequestsTable).
		Where(squirrel.Or{squirrel.Eq{"client_id": userID}, squirrel.Eq{"freelancer_id": userID}}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.Database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entities.QuoteRequest
	for rows.Next() {
		q, err := scanQuoteRequest(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, q)
	}
	return items, rows.Err()
}

// ResolvePending issues one UPDATE guarded by id, freelancer and PENDING
// status. No matched row yields the zero value.
func (r *QuoteRequestPostgresRepository) ResolvePending(ctx context.Context, id, freelancerID string, t entities.Transition) (entities.QuoteRequest, error) {
	query, args, err := buildResolveQuery(r.SqlBuilder, id, freelancerID, t).ToSql()
	if err != nil {
		return entities.QuoteRequest{}, err
	}

	q, err := scanQuoteRequest(r.Database.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.QuoteRequest{}, nil
	}
	return q, err
}

func (r *QuoteRequestPostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := r.SqlBuilder.
		Delete(quoteRequestsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, err
	}
	res, err := r.Database.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func buildResolveQuery(b squirrel.StatementBuilderType, id, freelancerID string, t entities.Transition) squirrel.UpdateBuilder {
	u := b.Update(quoteRequestsTable).
		Set("status", string(t.Status)).
		Set("updated_at", t.At)

	if c := t.Counter; c != nil {
		u = u.Set("counter_budget_min", c.BudgetMin).
			Set("counter_budget_max", c.BudgetMax).
			Set("counter_deadline", c.Deadline).
			Set("counter_message", c.Message)
	}

	return u.
		Where(squirrel.Eq{
			"id":            id,
			"freelancer_id": freelancerID,
			"status":        string(entities.QuoteRequestStatusPending),
		}).
		Suffix("RETURNING " + strings.Join(quoteRequestColumns, ", "))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuoteRequest(row rowScanner) (entities.QuoteRequest, error) {
	var (
		q                         entities.QuoteRequest
		status                    string
		budgetMin, budgetMax      sql.NullFloat64
		counterMin, counterMax    sql.NullFloat64
		deadline, counterDeadline sql.NullTime
		counterMessage            sql.NullString
		createdAt, updatedAt      time.Time
	)
	err := row.Scan(
		&q.ID, &q.ClientID, &q.FreelancerID, &q.Title, &q.Description,
		&budgetMin, &budgetMax, &deadline, &status,
		&counterMin, &counterMax, &counterDeadline, &counterMessage,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return entities.QuoteRequest{}, err
	}

	q.Status, err = entities.ParseQuoteRequestStatus(status)
	if err != nil {
		return entities.QuoteRequest{}, fmt.Errorf("quote request %s: %w", q.ID, err)
	}
	q.BudgetMin = nullFloat(budgetMin)
	q.BudgetMax = nullFloat(budgetMax)
	q.Deadline = nullTime(deadline)
	q.CounterBudgetMin = nullFloat(counterMin)
	q.CounterBudgetMax = nullFloat(counterMax)
	q.CounterDeadline = nullTime(counterDeadline)
	if counterMessage.Valid {
		q.CounterMessage = &counterMessage.String
	}
	q.CreatedAt = createdAt.UTC()
	q.UpdatedAt = updatedAt.UTC()
	return q, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}
