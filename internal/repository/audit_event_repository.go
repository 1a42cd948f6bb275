package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/booking-gateway/internal/events"
)

// AuditEvent is a persisted gateway event row.
type AuditEvent struct {
	ID         string
	Type       string
	UserID     string
	Payload    []byte
	OccurredAt time.Time
	CreatedAt  time.Time
}

// AuditEventRepository defines persistence access for audit events.
type AuditEventRepository interface {
	Record(ctx context.Context, event events.Event) error
	ListRecent(ctx context.Context, limit int) ([]AuditEvent, error)
}

type auditEventRepository struct {
	pool *pgxpool.Pool
}

// NewAuditEventRepository returns a Postgres-backed implementation.
func NewAuditEventRepository(pool *pgxpool.Pool) AuditEventRepository {
	return &auditEventRepository{pool: pool}
}

func (r *auditEventRepository) Record(ctx context.Context, event events.Event) error {
	if r.pool == nil {
		return nil
	}

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		payload = []byte("{}")
	}

	const query = `
        INSERT INTO audit_events (id, event_type, user_id, payload, occurred_at)
        VALUES ($1, $2, $3, $4, $5)`

	_, err = r.pool.Exec(ctx, query,
		event.ID,
		string(event.Type),
		event.UserID,
		payload,
		event.Timestamp,
	)
	return err
}

func (r *auditEventRepository) ListRecent(ctx context.Context, limit int) ([]AuditEvent, error) {
	if r.pool == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	const query = `
        SELECT id, event_type, user_id, payload, occurred_at, created_at
        FROM audit_events
        ORDER BY occurred_at DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AuditEvent
	for rows.Next() {
		var event AuditEvent
		if err := rows.Scan(
			&event.ID,
			&event.Type,
			&event.UserID,
			&event.Payload,
			&event.OccurredAt,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
