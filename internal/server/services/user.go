// Package services contains server-side business logic: registration, login
// and token resolution, owner-scoped vault record operations, and backup
// exports.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/passvault/passvault/internal/common"
	"github.com/passvault/passvault/internal/server/auth"
	"github.com/passvault/passvault/internal/server/config"
	"github.com/passvault/passvault/internal/server/models"
	"github.com/passvault/passvault/internal/server/repositories/repomanager"
)

// MinPasswordLength is enforced at registration, next to the rest of the
// registration rules rather than at the HTTP layer.
const MinPasswordLength = 8

// UserService handles the authentication lifecycle:
// - Register: create users with hashed passwords
// - Login: verify credentials and mint a bearer token
// - ResolveIdentity: map a presented token back to a live user
type UserService struct {
	db                  *sql.DB
	repomanager         repomanager.RepositoryManager
	hasher              *auth.PasswordHasher
	jwtSecret           []byte
	tokenValidity       time.Duration
	timingEqualizerHash string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	// Hashed once at startup; compared against on the unknown-email login
	// path so that path costs roughly the same as a wrong-password login.
	equalizer, _ := hasher.Hash(uuid.NewString())

	return &UserService{
		db:                  db,
		repomanager:         m,
		hasher:              hasher,
		jwtSecret:           []byte(cfg.SecretKey),
		tokenValidity:       cfg.TokenValidityDuration,
		timingEqualizerHash: equalizer,
	}
}

// Register creates a new user. The email pre-check and the unique index on
// users.email both surface as common.ErrorEmailExists; the pre-check alone
// would race with concurrent registrations. The returned user carries the
// hash internally; callers expose only the Public() view.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if err := validateRegistration(email, password); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	exists, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, common.ErrorEmailExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  email,
	}

	created, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorEmailExists) {
			return nil, common.ErrorEmailExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// Login verifies the email/password pair and returns a signed bearer token
// bound to the user ID. An unknown email and a wrong password are
// indistinguishable: same error, and the unknown-email path still pays for
// one bcrypt comparison.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Check(password, s.timingEqualizerHash)
			return "", common.ErrorInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return "", common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// ResolveIdentity verifies the presented token and resolves its subject to a
// live user record. A token whose subject has been deleted since issuance
// yields common.ErrorUnknownSubject.
func (s *UserService) ResolveIdentity(ctx context.Context, token string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnknownSubject
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

func validateRegistration(email, password string) error {
	if email == "" || !strings.Contains(email, "@") || strings.ContainsAny(email, " \t") {
		return fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinPasswordLength)
	}
	return nil
}
