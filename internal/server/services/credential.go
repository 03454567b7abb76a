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

// CredentialInput is the caller-supplied portion of a credential record.
type CredentialInput struct {
	Title    string
	Username string
	Secret   string
	URL      string
	Notes    string
}

// CredentialService performs owner-scoped operations on vault credential
// records. The owning user ID comes from the resolved token, never from the
// request body, and every repository call carries it.
type CredentialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewCredentialService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *CredentialService {
	return &CredentialService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "credential_service"),
	}
}

func (s *CredentialService) Create(ctx context.Context, userID string, in CredentialInput, meta ClientMeta) (*models.Credential, error) {
	if err := validateCredentialInput(in); err != nil {
		return nil, err
	}

	cred := &models.Credential{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    strings.TrimSpace(in.Title),
		Username: strings.TrimSpace(in.Username),
		Secret:   in.Secret,
		URL:      strings.TrimSpace(in.URL),
		Notes:    in.Notes,
		Strength: ScorePasswordStrength(in.Secret),
	}

	created, err := s.repomanager.Credentials(s.db).Create(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("error creating credential: %w", err)
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "create", "credential", created.ID, true, meta)

	return created, nil
}

func (s *CredentialService) Get(ctx context.Context, userID, id string, meta ClientMeta) (*models.Credential, error) {
	cred, err := s.repomanager.Credentials(s.db).GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "read", "credential", cred.ID, true, meta)

	return cred, nil
}

func (s *CredentialService) List(ctx context.Context, userID string, meta ClientMeta) ([]*models.Credential, error) {
	creds, err := s.repomanager.Credentials(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "read", "credential", "", true, meta)

	return creds, nil
}

func (s *CredentialService) Update(ctx context.Context, userID, id string, in CredentialInput, meta ClientMeta) (*models.Credential, error) {
	if err := validateCredentialInput(in); err != nil {
		return nil, err
	}

	cred := &models.Credential{
		ID:       id,
		UserID:   userID,
		Title:    strings.TrimSpace(in.Title),
		Username: strings.TrimSpace(in.Username),
		Secret:   in.Secret,
		URL:      strings.TrimSpace(in.URL),
		Notes:    in.Notes,
		Strength: ScorePasswordStrength(in.Secret),
	}

	updated, err := s.repomanager.Credentials(s.db).Update(ctx, cred)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "update", "credential", updated.ID, true, meta)

	return updated, nil
}

func (s *CredentialService) Delete(ctx context.Context, userID, id string, meta ClientMeta) error {
	if err := s.repomanager.Credentials(s.db).Delete(ctx, id, userID); err != nil {
		return err
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "delete", "credential", id, true, meta)

	return nil
}

// ListAuditEvents returns the user's most recent audit events, newest first.
func (s *CredentialService) ListAuditEvents(ctx context.Context, userID string) ([]*models.AuditEvent, error) {
	return s.repomanager.Audit(s.db).ListByUser(ctx, userID, 100)
}

func validateCredentialInput(in CredentialInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if strings.TrimSpace(in.Username) == "" {
		return fmt.Errorf("%w: username is required", common.ErrorValidation)
	}
	if in.Secret == "" {
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	if in.URL != "" && !strings.HasPrefix(in.URL, "http://") && !strings.HasPrefix(in.URL, "https://") {
		return fmt.Errorf("%w: url must be a valid HTTP/HTTPS URL", common.ErrorValidation)
	}
	return nil
}
