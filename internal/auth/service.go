package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakhollow/orderdesk-backend/internal/memberships"
	"github.com/oakhollow/orderdesk-backend/internal/permissions"
	"github.com/oakhollow/orderdesk-backend/internal/profiles"
	"github.com/oakhollow/orderdesk-backend/internal/users"
	pkgauth "github.com/oakhollow/orderdesk-backend/pkg/auth"
	"github.com/oakhollow/orderdesk-backend/pkg/auth/session"
	"github.com/oakhollow/orderdesk-backend/pkg/config"
	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
	"github.com/oakhollow/orderdesk-backend/pkg/logger"
	"github.com/oakhollow/orderdesk-backend/pkg/security"
)

const minPasswordLength = 8

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type sessionManager interface {
	Create(ctx context.Context, accessID string, userID uuid.UUID) error
	Revoke(ctx context.Context, accessID string) error
}

// Service exposes the identity operations.
type Service interface {
	Register(ctx context.Context, email, password string) (*Snapshot, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, accessID string) error
	Me(ctx context.Context, userID uuid.UUID) (*Snapshot, error)
}

type service struct {
	users       users.Repository
	profiles    profiles.Repository
	memberships memberships.Repository
	sessions    sessionManager
	tx          txRunner
	jwt         config.JWTConfig
	password    config.PasswordConfig
	logg        *logger.Logger
}

// NewService builds the auth service.
func NewService(
	userRepo users.Repository,
	profileRepo profiles.Repository,
	membershipRepo memberships.Repository,
	sessions sessionManager,
	tx txRunner,
	jwt config.JWTConfig,
	password config.PasswordConfig,
	logg *logger.Logger,
) (Service, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if profileRepo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	if membershipRepo == nil {
		return nil, fmt.Errorf("memberships repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		users:       userRepo,
		profiles:    profileRepo,
		memberships: membershipRepo,
		sessions:    sessions,
		tx:          tx,
		jwt:         jwt,
		password:    password,
		logg:        logg,
	}, nil
}

// Register creates the account and its contact card in one transaction.
func (s *service) Register(ctx context.Context, email, password string) (*Snapshot, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email is already registered")
	}

	hash, err := security.HashPassword(password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var user *models.User
	var profile *models.Profile
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		user, err = s.users.WithTx(tx).Create(ctx, &models.User{
			Email:        email,
			PasswordHash: hash,
			IsActive:     true,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
		profile, err = s.profiles.WithTx(tx).Create(ctx, &models.Profile{
			ID:    user.ID,
			Email: email,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "user registered")
	}
	return &Snapshot{
		User:       *user,
		Profile:    profile,
		Resolution: permissions.Resolve(permissions.Identity{UserID: user.ID}),
	}, nil
}

// Login verifies the credentials, mints an access token and opens the
// server-side session backing it.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account is disabled")
	}
	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	snapshot, err := s.Me(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	role := enums.SystemRoleStore
	if snapshot.Resolution.IsSuperAdmin {
		role = enums.SystemRoleAdmin
	}

	accessID := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(s.jwt, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	if err := s.sessions.Create(ctx, accessID, user.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open session")
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, time.Now().UTC()); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "updating last login failed")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "user logged in")
	}

	return &LoginResult{AccessToken: token, Identity: *snapshot}, nil
}

// Logout revokes the server-side session; the JWT dies with it.
func (s *service) Logout(ctx context.Context, accessID string) error {
	return s.sessions.Revoke(ctx, accessID)
}

// Me rebuilds the identity snapshot: account, contact card, store roles and
// the capability set resolved from them.
func (s *service) Me(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	identity := permissions.Identity{UserID: userID}

	roles, err := s.users.SystemRoles(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load system roles")
	}
	for _, role := range roles {
		identity.SystemRoles = append(identity.SystemRoles, enums.SystemRole(role))
	}

	rows, err := s.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load memberships")
	}
	for _, row := range rows {
		identity.Memberships = append(identity.Memberships, permissions.Membership{
			StoreID: row.StoreID,
			Role:    row.Role,
			Status:  row.Status,
		})
	}

	snapshot := &Snapshot{
		User:       *user,
		Identity:   identity,
		Resolution: permissions.Resolve(identity),
	}
	if profile, err := s.profiles.FindByID(ctx, userID); err == nil {
		snapshot.Profile = profile
	}
	return snapshot, nil
}
