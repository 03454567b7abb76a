// Package credentials provides PostgreSQL-backed storage for vault
// credential records. All row access is keyed by (id, user_id) so ownership
// is enforced in the query itself.
package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/passvault/passvault/internal/common"
	"github.com/passvault/passvault/internal/dbx"
	"github.com/passvault/passvault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, cred *models.Credential) (*models.Credential, error) {
	query :=
		`INSERT INTO credentials (id, user_id, title, username, secret, url, notes, strength)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		cred.ID, cred.UserID, cred.Title, cred.Username, cred.Secret,
		cred.URL, cred.Notes, cred.Strength).Scan(&cred.CreatedAt, &cred.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*models.Credential, error) {
	query :=
		`SELECT id, user_id, title, username, secret, url, notes, strength, created_at, updated_at
		 FROM credentials
		 WHERE id = $1 AND user_id = $2
		 `

	cred := &models.Credential{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&cred.ID, &cred.UserID, &cred.Title, &cred.Username, &cred.Secret,
		&cred.URL, &cred.Notes, &cred.Strength, &cred.CreatedAt, &cred.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

// Update rewrites the mutable fields of a record. user_id is part of the
// WHERE clause, never the SET list: ownership is immutable.
func (r *PostgresRepository) Update(ctx context.Context, cred *models.Credential) (*models.Credential, error) {
	query :=
		`UPDATE credentials
		 SET title = $3, username = $4, secret = $5, url = $6, notes = $7, strength = $8, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		cred.ID, cred.UserID, cred.Title, cred.Username, cred.Secret,
		cred.URL, cred.Notes, cred.Strength).Scan(&cred.CreatedAt, &cred.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM credentials WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Credential, error) {
	query :=
		`SELECT id, user_id, title, username, secret, url, notes, strength, created_at, updated_at
		 FROM credentials
		 WHERE user_id = $1
		 ORDER BY updated_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Credential
	for rows.Next() {
		var item models.Credential
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Username, &item.Secret,
			&item.URL, &item.Notes, &item.Strength, &item.CreatedAt, &item.UpdatedAt,
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
