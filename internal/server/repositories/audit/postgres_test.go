package audit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/passvault/passvault/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+audit_events`).
		WithArgs("u-1", "create", "credential", "c-1", true, "192.0.2.1", "curl/8").
		WillReturnResult(sqlmock.NewResult(1, 1))

	event := &models.AuditEvent{
		UserID:    "u-1",
		Action:    "create",
		Entity:    "credential",
		EntityID:  "c-1",
		Success:   true,
		IPAddress: "192.0.2.1",
		UserAgent: "curl/8",
	}
	if err := repo.Create(context.Background(), event); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestListByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "entity", "entity_id", "success", "ip_address", "user_agent", "created_at"}).
		AddRow(2, "u-1", "delete", "credential", "c-1", true, "192.0.2.1", "curl/8", now).
		AddRow(1, "u-1", "create", "credential", "c-1", true, "192.0.2.1", "curl/8", now.Add(-time.Minute))
	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM\s+audit_events\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC\s+LIMIT\s+\$2`).
		WithArgs("u-1", 100).
		WillReturnRows(rows)

	events, err := repo.ListByUser(context.Background(), "u-1", 100)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2 events, got %d", len(events))
	}
	if events[0].Action != "delete" {
		t.Fatalf("unexpected order: %+v", events[0])
	}
}
