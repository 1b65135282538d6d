package profiles

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
)

// UpdateProfileInput holds the fields an account may change on its own card.
// Email is identity-bound and never editable here.
type UpdateProfileInput struct {
	UserName  *string
	StoreName *string
	Address   *string
	Phone     *string
}

// UpdateProfileRequest is the HTTP payload for self-service profile edits.
type UpdateProfileRequest struct {
	UserName  *string `json:"user_name" validate:"omitempty,max=255"`
	StoreName *string `json:"store_name" validate:"omitempty,max=255"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
}

// RenameRequest is the HTTP payload for a manager renaming a member.
type RenameRequest struct {
	UserName string `json:"user_name" validate:"required,max=255"`
}

// Service exposes profile operations.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdateSelf(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*models.Profile, error)
	Rename(ctx context.Context, userID uuid.UUID, userName string) (*models.Profile, error)
}

type service struct {
	repo Repository
}

// NewService builds the profile service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) UpdateSelf(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if input.UserName != nil {
		profile.UserName = input.UserName
	}
	if input.StoreName != nil {
		profile.StoreName = input.StoreName
	}
	if input.Address != nil {
		profile.Address = input.Address
	}
	if input.Phone != nil {
		profile.Phone = input.Phone
	}
	updated, err := s.repo.Save(ctx, profile)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return updated, nil
}

// Rename changes the member's display name only. Managers use this from the
// roster; every other field stays under the account's own control.
func (s *service) Rename(ctx context.Context, userID uuid.UUID, userName string) (*models.Profile, error) {
	name := strings.TrimSpace(userName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user name is required")
	}
	profile, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.UserName = &name
	updated, err := s.repo.Save(ctx, profile)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rename profile")
	}
	return updated, nil
}
