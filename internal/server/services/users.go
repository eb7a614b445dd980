// Package services implements the application core: the registration and
// authentication flow, and the ownership coordinator that keeps users and
// their notes consistent.
package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rjrato/Write-it-V2-Backend/internal/common"
	"github.com/rjrato/Write-it-V2-Backend/internal/cryptox"
	"github.com/rjrato/Write-it-V2-Backend/internal/logging"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/config"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/models"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/repositories/repomanager"
)

// PublicProfile is what callers see after register/login. The stored
// credential never leaves the service layer.
type PublicProfile struct {
	ID        string
	FirstName string
	LastName  string
}

type UserService struct {
	db             *sql.DB
	repos          repomanager.RepositoryManager
	logger         logging.Logger
	bcryptCost     int
	storageTimeout time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:             db,
		repos:          m,
		logger:         logger.With("module", "users_service"),
		bcryptCost:     cfg.BcryptCost,
		storageTimeout: cfg.StorageTimeout,
	}
}

// Register hashes the password, creates the account and returns its public
// profile. A taken email fails with ErrorDuplicateEmail.
func (s *UserService) Register(ctx context.Context, firstName, lastName, email, password string) (*PublicProfile, error) {

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := cryptox.HashPassword(password, s.bcryptCost)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	user := &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
	}

	ctx, cancel := context.WithTimeout(ctx, s.storageTimeout)
	defer cancel()

	user, err = s.repos.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, mapStorageErr(ctx, s.logger, "create user", err)
	}

	return &PublicProfile{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName}, nil
}

// Login verifies the credentials for email and returns the public profile.
// An unknown email fails with ErrorNotFound, a wrong password with
// ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*PublicProfile, error) {

	ctx, cancel := context.WithTimeout(ctx, s.storageTimeout)
	defer cancel()

	user, err := s.repos.Users(s.db).GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, mapStorageErr(ctx, s.logger, "find user by email", err)
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	return &PublicProfile{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName}, nil
}
