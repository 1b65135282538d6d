package memberships

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakhollow/orderdesk-backend/internal/profiles"
	"github.com/oakhollow/orderdesk-backend/internal/users"
	"github.com/oakhollow/orderdesk-backend/pkg/config"
	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
	"github.com/oakhollow/orderdesk-backend/pkg/security"
)

const tempPasswordLength = 12

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Member is one roster entry with its contact card attached.
type Member struct {
	Membership models.StoreUser `json:"membership"`
	Email      string           `json:"email"`
	UserName   *string          `json:"user_name,omitempty"`
}

// InviteInput adds a user to a store roster, creating the account when the
// email is unknown.
type InviteInput struct {
	StoreID uuid.UUID
	Email   string
	Role    enums.MemberRole
}

// InviteResult reports the new membership. TempPassword is set only when the
// invite created a fresh account; it is shown once and never stored.
type InviteResult struct {
	Membership   models.StoreUser `json:"membership"`
	UserCreated  bool             `json:"user_created"`
	TempPassword string           `json:"temp_password,omitempty"`
}

// InviteRequest is the HTTP payload for inviting a member.
type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

// RoleRequest is the HTTP payload for changing a member's role.
type RoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// Service exposes store roster operations.
type Service interface {
	ListMembers(ctx context.Context, storeID uuid.UUID) ([]Member, error)
	Invite(ctx context.Context, input InviteInput) (*InviteResult, error)
	ChangeRole(ctx context.Context, storeID, userID uuid.UUID, role enums.MemberRole) (*models.StoreUser, error)
	SetStatus(ctx context.Context, storeID, userID uuid.UUID, status enums.MembershipStatus) (*models.StoreUser, error)
	Remove(ctx context.Context, storeID, userID uuid.UUID) error
}

type service struct {
	repo     Repository
	users    users.Repository
	profiles profiles.Repository
	tx       txRunner
	password config.PasswordConfig
}

// NewService builds the membership service.
func NewService(repo Repository, userRepo users.Repository, profileRepo profiles.Repository, tx txRunner, password config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("memberships repository required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if profileRepo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:     repo,
		users:    userRepo,
		profiles: profileRepo,
		tx:       tx,
		password: password,
	}, nil
}

func (s *service) ListMembers(ctx context.Context, storeID uuid.UUID) ([]Member, error) {
	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	members := make([]Member, 0, len(rows))
	for _, row := range rows {
		member := Member{Membership: row}
		if user, err := s.users.FindByID(ctx, row.UserID); err == nil {
			member.Email = user.Email
		}
		if profile, err := s.profiles.FindByID(ctx, row.UserID); err == nil {
			member.UserName = profile.UserName
		}
		members = append(members, member)
	}
	return members, nil
}

// Invite adds the email to the store roster. Unknown emails get a fresh
// account with a one-time temporary password; the account, contact card and
// membership are written in one transaction.
func (s *service) Invite(ctx context.Context, input InviteInput) (*InviteResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email address")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown member role")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		if _, err := s.repo.Find(ctx, input.StoreID, existing.ID); err == nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "user is already a member of this store")
		}
		membership, err := s.repo.Create(ctx, &models.StoreUser{
			StoreID: input.StoreID,
			UserID:  existing.ID,
			Role:    input.Role,
			Status:  enums.MembershipStatusEnabled,
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create membership")
		}
		return &InviteResult{Membership: *membership}, nil
	}
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		return nil, err
	}

	tempPassword, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	hash, err := security.HashPassword(tempPassword, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash temp password")
	}

	var membership *models.StoreUser
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		user, err := s.users.WithTx(tx).Create(ctx, &models.User{
			Email:        email,
			PasswordHash: hash,
			IsActive:     true,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
		if _, err := s.profiles.WithTx(tx).Create(ctx, &models.Profile{
			ID:    user.ID,
			Email: email,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
		}
		membership, err = s.repo.WithTx(tx).Create(ctx, &models.StoreUser{
			StoreID: input.StoreID,
			UserID:  user.ID,
			Role:    input.Role,
			Status:  enums.MembershipStatusEnabled,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create membership")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &InviteResult{
		Membership:   *membership,
		UserCreated:  true,
		TempPassword: tempPassword,
	}, nil
}

func (s *service) ChangeRole(ctx context.Context, storeID, userID uuid.UUID, role enums.MemberRole) (*models.StoreUser, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown member role")
	}
	membership, err := s.repo.Find(ctx, storeID, userID)
	if err != nil {
		return nil, err
	}
	membership.Role = role
	updated, err := s.repo.Save(ctx, membership)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "change member role")
	}
	return updated, nil
}

// SetStatus enables or disables the membership. A disabled membership keeps
// the row but stops contributing roles to the member's capability set.
func (s *service) SetStatus(ctx context.Context, storeID, userID uuid.UUID, status enums.MembershipStatus) (*models.StoreUser, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown membership status")
	}
	membership, err := s.repo.Find(ctx, storeID, userID)
	if err != nil {
		return nil, err
	}
	membership.Status = status
	updated, err := s.repo.Save(ctx, membership)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set membership status")
	}
	return updated, nil
}

func (s *service) Remove(ctx context.Context, storeID, userID uuid.UUID) error {
	return s.repo.Delete(ctx, storeID, userID)
}
