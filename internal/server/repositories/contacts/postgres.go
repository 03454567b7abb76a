// Package contacts provides PostgreSQL-backed storage for address-book contacts.
package contacts

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

func (r *PostgresRepository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	query :=
		`INSERT INTO contacts (id, user_id, first_name, last_name, email, phone, mobile,
		                       company, job_title, website, notes, category, favorite, emergency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		contact.ID, contact.UserID, contact.FirstName, contact.LastName,
		contact.Email, contact.Phone, contact.Mobile, contact.Company,
		contact.JobTitle, contact.Website, contact.Notes, contact.Category,
		contact.Favorite, contact.Emergency).
		Scan(&contact.CreatedAt, &contact.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contact, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*models.Contact, error) {
	query :=
		`SELECT id, user_id, first_name, last_name, email, phone, mobile,
		        company, job_title, website, notes, category, favorite, emergency,
		        created_at, updated_at
		 FROM contacts
		 WHERE id = $1 AND user_id = $2
		 `

	contact := &models.Contact{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&contact.ID, &contact.UserID, &contact.FirstName, &contact.LastName,
		&contact.Email, &contact.Phone, &contact.Mobile, &contact.Company,
		&contact.JobTitle, &contact.Website, &contact.Notes, &contact.Category,
		&contact.Favorite, &contact.Emergency, &contact.CreatedAt, &contact.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contact, nil
}

func (r *PostgresRepository) Update(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	query :=
		`UPDATE contacts
		 SET first_name = $3, last_name = $4, email = $5, phone = $6, mobile = $7,
		     company = $8, job_title = $9, website = $10, notes = $11, category = $12,
		     favorite = $13, emergency = $14, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		contact.ID, contact.UserID, contact.FirstName, contact.LastName,
		contact.Email, contact.Phone, contact.Mobile, contact.Company,
		contact.JobTitle, contact.Website, contact.Notes, contact.Category,
		contact.Favorite, contact.Emergency).
		Scan(&contact.CreatedAt, &contact.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contact, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM contacts WHERE id = $1 AND user_id = $2`

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

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Contact, error) {
	query :=
		`SELECT id, user_id, first_name, last_name, email, phone, mobile,
		        company, job_title, website, notes, category, favorite, emergency,
		        created_at, updated_at
		 FROM contacts
		 WHERE user_id = $1
		 ORDER BY updated_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Contact
	for rows.Next() {
		var item models.Contact
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.FirstName, &item.LastName,
			&item.Email, &item.Phone, &item.Mobile, &item.Company,
			&item.JobTitle, &item.Website, &item.Notes, &item.Category,
			&item.Favorite, &item.Emergency, &item.CreatedAt, &item.UpdatedAt,
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
