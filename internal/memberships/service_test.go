package memberships

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakhollow/orderdesk-backend/internal/profiles"
	"github.com/oakhollow/orderdesk-backend/internal/users"
	"github.com/oakhollow/orderdesk-backend/pkg/config"
	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
)

type stubRepo struct {
	rows []*models.StoreUser
}

func (r *stubRepo) WithTx(*gorm.DB) Repository { return r }

func (r *stubRepo) Create(_ context.Context, membership *models.StoreUser) (*models.StoreUser, error) {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}
	clone := *membership
	r.rows = append(r.rows, &clone)
	return membership, nil
}

func (r *stubRepo) Save(_ context.Context, membership *models.StoreUser) (*models.StoreUser, error) {
	for i, row := range r.rows {
		if row.ID == membership.ID {
			clone := *membership
			r.rows[i] = &clone
		}
	}
	return membership, nil
}

func (r *stubRepo) Find(_ context.Context, storeID, userID uuid.UUID) (*models.StoreUser, error) {
	for _, row := range r.rows {
		if row.StoreID == storeID && row.UserID == userID {
			clone := *row
			return &clone, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
}

func (r *stubRepo) ListByStore(_ context.Context, storeID uuid.UUID) ([]models.StoreUser, error) {
	var out []models.StoreUser
	for _, row := range r.rows {
		if row.StoreID == storeID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *stubRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.StoreUser, error) {
	var out []models.StoreUser
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *stubRepo) Delete(_ context.Context, storeID, userID uuid.UUID) error {
	for i, row := range r.rows {
		if row.StoreID == storeID && row.UserID == userID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
}

type stubUsers struct {
	rows map[uuid.UUID]*models.User
}

func newStubUsers() *stubUsers {
	return &stubUsers{rows: map[uuid.UUID]*models.User{}}
}

func (u *stubUsers) WithTx(*gorm.DB) users.Repository { return u }

func (u *stubUsers) Create(_ context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	u.rows[user.ID] = &clone
	return user, nil
}

func (u *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	row, ok := u.rows[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	clone := *row
	return &clone, nil
}

func (u *stubUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, row := range u.rows {
		if row.Email == email {
			clone := *row
			return &clone, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}

func (u *stubUsers) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if row, ok := u.rows[id]; ok {
		row.LastLoginAt = &at
	}
	return nil
}

func (u *stubUsers) SystemRoles(context.Context, uuid.UUID) ([]string, error) { return nil, nil }

func (u *stubUsers) GrantSystemRole(context.Context, uuid.UUID, string) error { return nil }

type stubProfiles struct {
	rows map[uuid.UUID]*models.Profile
}

func newStubProfiles() *stubProfiles {
	return &stubProfiles{rows: map[uuid.UUID]*models.Profile{}}
}

func (p *stubProfiles) WithTx(*gorm.DB) profiles.Repository { return p }

func (p *stubProfiles) Create(_ context.Context, profile *models.Profile) (*models.Profile, error) {
	clone := *profile
	p.rows[profile.ID] = &clone
	return profile, nil
}

func (p *stubProfiles) FindByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	row, ok := p.rows[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}
	clone := *row
	return &clone, nil
}

func (p *stubProfiles) Save(_ context.Context, profile *models.Profile) (*models.Profile, error) {
	clone := *profile
	p.rows[profile.ID] = &clone
	return profile, nil
}

type stubTx struct{}

func (stubTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func newTestService(t *testing.T) (Service, *stubRepo, *stubUsers, *stubProfiles) {
	t.Helper()
	repo := &stubRepo{}
	userRepo := newStubUsers()
	profileRepo := newStubProfiles()
	svc, err := NewService(repo, userRepo, profileRepo, stubTx{}, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo, userRepo, profileRepo
}

func TestInviteCreatesAccountForUnknownEmail(t *testing.T) {
	svc, repo, userRepo, profileRepo := newTestService(t)
	storeID := uuid.New()

	result, err := svc.Invite(context.Background(), InviteInput{
		StoreID: storeID,
		Email:   "New.Member@Example.com",
		Role:    enums.MemberRoleEmployee,
	})
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if !result.UserCreated || result.TempPassword == "" {
		t.Fatal("expected a fresh account with a temp password")
	}

	user, err := userRepo.FindByEmail(context.Background(), "new.member@example.com")
	if err != nil {
		t.Fatalf("expected created user: %v", err)
	}
	if user.PasswordHash == result.TempPassword {
		t.Fatal("password must be stored hashed")
	}
	if _, err := profileRepo.FindByID(context.Background(), user.ID); err != nil {
		t.Fatalf("expected created profile: %v", err)
	}
	if len(repo.rows) != 1 || repo.rows[0].Role != enums.MemberRoleEmployee {
		t.Fatalf("expected one employee membership, got %+v", repo.rows)
	}
}

func TestInviteReusesExistingAccount(t *testing.T) {
	svc, _, userRepo, _ := newTestService(t)
	storeID := uuid.New()

	existing, _ := userRepo.Create(context.Background(), &models.User{Email: "known@example.com", PasswordHash: "hash"})

	result, err := svc.Invite(context.Background(), InviteInput{
		StoreID: storeID,
		Email:   "known@example.com",
		Role:    enums.MemberRoleManager,
	})
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if result.UserCreated || result.TempPassword != "" {
		t.Fatal("existing accounts must not get a temp password")
	}
	if result.Membership.UserID != existing.ID {
		t.Fatal("membership must bind the existing account")
	}

	// Inviting the same member twice conflicts.
	_, err = svc.Invite(context.Background(), InviteInput{StoreID: storeID, Email: "known@example.com", Role: enums.MemberRoleEmployee})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestInviteValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Invite(context.Background(), InviteInput{StoreID: uuid.New(), Email: "not-an-email", Role: enums.MemberRoleEmployee})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for email, got %v", err)
	}

	_, err = svc.Invite(context.Background(), InviteInput{StoreID: uuid.New(), Email: "ok@example.com", Role: enums.MemberRole("owner")})
	coded = pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for role, got %v", err)
	}
}

func TestChangeRoleAndStatus(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	storeID := uuid.New()
	userID := uuid.New()
	repo.rows = append(repo.rows, &models.StoreUser{
		ID: uuid.New(), StoreID: storeID, UserID: userID,
		Role: enums.MemberRoleEmployee, Status: enums.MembershipStatusEnabled,
	})

	updated, err := svc.ChangeRole(context.Background(), storeID, userID, enums.MemberRoleStoreManager)
	if err != nil {
		t.Fatalf("ChangeRole: %v", err)
	}
	if updated.Role != enums.MemberRoleStoreManager {
		t.Fatalf("expected store_manager, got %s", updated.Role)
	}

	updated, err = svc.SetStatus(context.Background(), storeID, userID, enums.MembershipStatusDisabled)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != enums.MembershipStatusDisabled {
		t.Fatalf("expected disabled, got %s", updated.Status)
	}
}
