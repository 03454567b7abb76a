package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"

	"github.com/passvault/passvault/internal/common"
	"github.com/passvault/passvault/internal/dbx"
	"github.com/passvault/passvault/internal/logging"
	"github.com/passvault/passvault/internal/server/models"
	auditrepo "github.com/passvault/passvault/internal/server/repositories/audit"
	contactsrepo "github.com/passvault/passvault/internal/server/repositories/contacts"
	credentialsrepo "github.com/passvault/passvault/internal/server/repositories/credentials"
	notesrepo "github.com/passvault/passvault/internal/server/repositories/notes"
	usersrepo "github.com/passvault/passvault/internal/server/repositories/users"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// In-memory repository fakes shared by the service tests. They enforce the
// same contracts as the Postgres implementations: unique emails, ownership
// checks folded into not-found.

type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	byID    map[string]*models.User

	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[string]*models.User),
	}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorEmailExists
	}
	cp := *u
	f.byEmail[u.Email] = &cp
	f.byID[u.ID] = &cp
	return &cp, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUsersRepo) delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		delete(f.byEmail, u.Email)
		delete(f.byID, id)
	}
}

type fakeCredentialsRepo struct {
	mu    sync.Mutex
	items map[string]*models.Credential

	listErr error
}

func newFakeCredentialsRepo() *fakeCredentialsRepo {
	return &fakeCredentialsRepo{items: make(map[string]*models.Credential)}
}

func (f *fakeCredentialsRepo) Create(ctx context.Context, c *models.Credential) (*models.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.items[c.ID] = &cp
	return &cp, nil
}

func (f *fakeCredentialsRepo) GetByID(ctx context.Context, id, userID string) (*models.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok || c.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (f *fakeCredentialsRepo) Update(ctx context.Context, c *models.Credential) (*models.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.items[c.ID]
	if !ok || existing.UserID != c.UserID {
		return nil, common.ErrorNotFound
	}
	cp := *c
	f.items[c.ID] = &cp
	return &cp, nil
}

func (f *fakeCredentialsRepo) Delete(ctx context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok || c.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeCredentialsRepo) ListByUser(ctx context.Context, userID string) ([]*models.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Credential
	for _, c := range f.items {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeNotesRepo struct {
	mu    sync.Mutex
	items map[string]*models.Note
}

func newFakeNotesRepo() *fakeNotesRepo {
	return &fakeNotesRepo{items: make(map[string]*models.Note)}
}

func (f *fakeNotesRepo) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *n
	f.items[n.ID] = &cp
	return &cp, nil
}

func (f *fakeNotesRepo) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.items[id]
	if !ok || n.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return n, nil
}

func (f *fakeNotesRepo) Update(ctx context.Context, n *models.Note) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.items[n.ID]
	if !ok || existing.UserID != n.UserID {
		return nil, common.ErrorNotFound
	}
	cp := *n
	f.items[n.ID] = &cp
	return &cp, nil
}

func (f *fakeNotesRepo) Delete(ctx context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.items[id]
	if !ok || n.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeNotesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Note
	for _, n := range f.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeContactsRepo struct {
	mu    sync.Mutex
	items map[string]*models.Contact
}

func newFakeContactsRepo() *fakeContactsRepo {
	return &fakeContactsRepo{items: make(map[string]*models.Contact)}
}

func (f *fakeContactsRepo) Create(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.items[c.ID] = &cp
	return &cp, nil
}

func (f *fakeContactsRepo) GetByID(ctx context.Context, id, userID string) (*models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok || c.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (f *fakeContactsRepo) Update(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.items[c.ID]
	if !ok || existing.UserID != c.UserID {
		return nil, common.ErrorNotFound
	}
	cp := *c
	f.items[c.ID] = &cp
	return &cp, nil
}

func (f *fakeContactsRepo) Delete(ctx context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok || c.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeContactsRepo) ListByUser(ctx context.Context, userID string) ([]*models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Contact
	for _, c := range f.items {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	mu     sync.Mutex
	events []*models.AuditEvent

	createErr error
}

func (f *fakeAuditRepo) Create(ctx context.Context, e *models.AuditEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.events = append(f.events, e)
	return nil
}

func (f *fakeAuditRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*models.AuditEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.AuditEvent
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		if f.events[i].UserID == userID {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	users    *fakeUsersRepo
	creds    *fakeCredentialsRepo
	notes    *fakeNotesRepo
	contacts *fakeContactsRepo
	audit    *fakeAuditRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:    newFakeUsersRepo(),
		creds:    newFakeCredentialsRepo(),
		notes:    newFakeNotesRepo(),
		contacts: newFakeContactsRepo(),
		audit:    &fakeAuditRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository             { return m.users }
func (m *fakeRepoManager) Credentials(db dbx.DBTX) credentialsrepo.Repository { return m.creds }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository             { return m.notes }
func (m *fakeRepoManager) Contacts(db dbx.DBTX) contactsrepo.Repository       { return m.contacts }
func (m *fakeRepoManager) Audit(db dbx.DBTX) auditrepo.Repository             { return m.audit }
