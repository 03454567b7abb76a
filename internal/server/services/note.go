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

// NoteInput is the caller-supplied portion of a secure note.
type NoteInput struct {
	Title    string
	Content  string
	Category string
	Pinned   bool
}

// NoteService performs owner-scoped operations on secure notes, mirroring
// CredentialService.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *NoteService {
	return &NoteService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "note_service"),
	}
}

func (s *NoteService) Create(ctx context.Context, userID string, in NoteInput, meta ClientMeta) (*models.Note, error) {
	if err := validateNoteInput(in); err != nil {
		return nil, err
	}

	note := &models.Note{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		Category: noteCategory(in.Category),
		Pinned:   in.Pinned,
	}

	created, err := s.repomanager.Notes(s.db).Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "create", "note", created.ID, true, meta)

	return created, nil
}

func (s *NoteService) Get(ctx context.Context, userID, id string, meta ClientMeta) (*models.Note, error) {
	note, err := s.repomanager.Notes(s.db).GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "read", "note", note.ID, true, meta)

	return note, nil
}

func (s *NoteService) List(ctx context.Context, userID string, meta ClientMeta) ([]*models.Note, error) {
	notes, err := s.repomanager.Notes(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "read", "note", "", true, meta)

	return notes, nil
}

func (s *NoteService) Update(ctx context.Context, userID, id string, in NoteInput, meta ClientMeta) (*models.Note, error) {
	if err := validateNoteInput(in); err != nil {
		return nil, err
	}

	note := &models.Note{
		ID:       id,
		UserID:   userID,
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		Category: noteCategory(in.Category),
		Pinned:   in.Pinned,
	}

	updated, err := s.repomanager.Notes(s.db).Update(ctx, note)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "update", "note", updated.ID, true, meta)

	return updated, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, id string, meta ClientMeta) error {
	if err := s.repomanager.Notes(s.db).Delete(ctx, id, userID); err != nil {
		return err
	}

	recordAudit(ctx, s.repomanager.Audit(s.db), s.logger,
		userID, "delete", "note", id, true, meta)

	return nil
}

func validateNoteInput(in NoteInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if in.Content == "" {
		return fmt.Errorf("%w: content is required", common.ErrorValidation)
	}
	return nil
}

func noteCategory(c string) string {
	if c == "" {
		return "personal"
	}
	return c
}
