// Package audit provides PostgreSQL-backed storage for the append-only
// audit trail of vault actions.
package audit

import (
	"context"
	"fmt"

	"github.com/passvault/passvault/internal/dbx"
	"github.com/passvault/passvault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, event *models.AuditEvent) error {
	query :=
		`INSERT INTO audit_events (user_id, action, entity, entity_id, success, ip_address, user_agent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query,
		event.UserID, event.Action, event.Entity, event.EntityID,
		event.Success, event.IPAddress, event.UserAgent)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.AuditEvent, error) {
	query :=
		`SELECT id, user_id, action, entity, entity_id, success, ip_address, user_agent, created_at
		 FROM audit_events
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AuditEvent
	for rows.Next() {
		var item models.AuditEvent
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Action, &item.Entity, &item.EntityID,
			&item.Success, &item.IPAddress, &item.UserAgent, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
