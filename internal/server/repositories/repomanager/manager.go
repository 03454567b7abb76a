package repomanager

import (
	"context"
	"database/sql"

	"github.com/passvault/passvault/internal/dbx"
	"github.com/passvault/passvault/internal/server/repositories/audit"
	"github.com/passvault/passvault/internal/server/repositories/contacts"
	"github.com/passvault/passvault/internal/server/repositories/credentials"
	"github.com/passvault/passvault/internal/server/repositories/notes"
	"github.com/passvault/passvault/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX
// (either the pooled *sql.DB or a transaction) and runs schema migrations.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Credentials(db dbx.DBTX) credentials.Repository
	Notes(db dbx.DBTX) notes.Repository
	Contacts(db dbx.DBTX) contacts.Repository
	Audit(db dbx.DBTX) audit.Repository
}
