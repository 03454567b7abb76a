package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/passvault/passvault/internal/common"
	"github.com/passvault/passvault/internal/logging"
	"github.com/passvault/passvault/internal/server/models"
	"github.com/passvault/passvault/internal/server/repositories/repomanager"
)

// ContactInput is the caller-supplied portion of an address-book contact.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Mobile    string
	Company   string
	JobTitle  string
	Website   string
	Notes     string
	Category  string
	Favorite  bool
	Emergency bool
}

// ContactService performs owner-scoped operations on address-book contacts.
type ContactService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewContactService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ContactService {
	return &ContactService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "contact_service"),
	}
}

func (s *ContactService) Create(ctx context.Context, userID string, in ContactInput, meta ClientMeta) (*models.Contact, error) {
	if err := validateContactInput(in); err != nil {
		return nil, err
	}

	contact := contactFromInput(in)
	contact.ID = uuid.NewString()
	contact.UserID = userID

	created, err := s.repomanager.Contacts(s.db).Create(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("error creating contact: %w", err)
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "create", "contact", created.ID, true, meta)

	return created, nil
}

func (s *ContactService) Get(ctx context.Context, userID, id string, meta ClientMeta) (*models.Contact, error) {
	contact, err := s.repomanager.Contacts(s.db).GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "read", "contact", contact.ID, true, meta)

	return contact, nil
}

func (s *ContactService) List(ctx context.Context, userID string, meta ClientMeta) ([]*models.Contact, error) {
	contacts, err := s.repomanager.Contacts(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "read", "contact", "", true, meta)

	return contacts, nil
}

func (s *ContactService) Update(ctx context.Context, userID, id string, in ContactInput, meta ClientMeta) (*models.Contact, error) {
	if err := validateContactInput(in); err != nil {
		return nil, err
	}

	contact := contactFromInput(in)
	contact.ID = id
	contact.UserID = userID

	updated, err := s.repomanager.Contacts(s.db).Update(ctx, contact)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "update", "contact", updated.ID, true, meta)

	return updated, nil
}

func (s *ContactService) Delete(ctx context.Context, userID, id string, meta ClientMeta) error {
	if err := s.repomanager.Contacts(s.db).Delete(ctx, id, userID); err != nil {
		return err
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "delete", "contact", id, true, meta)

	return nil
}

func contactFromInput(in ContactInput) *models.Contact {
	return &models.Contact{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Mobile:    strings.TrimSpace(in.Mobile),
		Company:   strings.TrimSpace(in.Company),
		JobTitle:  strings.TrimSpace(in.JobTitle),
		Website:   strings.TrimSpace(in.Website),
		Notes:     in.Notes,
		Category:  contactCategory(in.Category),
		Favorite:  in.Favorite,
		Emergency: in.Emergency,
	}
}

// Only the first name is mandatory. The email and website are optional but
// must be well formed when present.
func validateContactInput(in ContactInput) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", common.ErrorValidation)
	}
	if email := strings.TrimSpace(in.Email); email != "" &&
		(!strings.Contains(email, "@") || strings.ContainsAny(email, " \t")) {
		return fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if website := strings.TrimSpace(in.Website); website != "" &&
		!strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
		return fmt.Errorf("%w: website must be a valid HTTP/HTTPS URL", common.ErrorValidation)
	}
	return nil
}

func contactCategory(c string) string {
	if c == "" {
		return "personal"
	}
	return c
}
