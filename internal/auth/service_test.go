package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakhollow/orderdesk-backend/internal/memberships"
	"github.com/oakhollow/orderdesk-backend/internal/profiles"
	"github.com/oakhollow/orderdesk-backend/internal/users"
	pkgauth "github.com/oakhollow/orderdesk-backend/pkg/auth"
	"github.com/oakhollow/orderdesk-backend/pkg/config"
	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
)

type stubUsers struct {
	rows  map[uuid.UUID]*models.User
	roles map[uuid.UUID][]string
}

func newStubUsers() *stubUsers {
	return &stubUsers{rows: map[uuid.UUID]*models.User{}, roles: map[uuid.UUID][]string{}}
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

func (u *stubUsers) SystemRoles(_ context.Context, id uuid.UUID) ([]string, error) {
	return u.roles[id], nil
}

func (u *stubUsers) GrantSystemRole(_ context.Context, id uuid.UUID, role string) error {
	u.roles[id] = append(u.roles[id], role)
	return nil
}

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

type stubMemberships struct {
	rows []models.StoreUser
}

func (m *stubMemberships) WithTx(*gorm.DB) memberships.Repository { return m }

func (m *stubMemberships) Create(_ context.Context, membership *models.StoreUser) (*models.StoreUser, error) {
	m.rows = append(m.rows, *membership)
	return membership, nil
}

func (m *stubMemberships) Save(_ context.Context, membership *models.StoreUser) (*models.StoreUser, error) {
	return membership, nil
}

func (m *stubMemberships) Find(context.Context, uuid.UUID, uuid.UUID) (*models.StoreUser, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
}

func (m *stubMemberships) ListByStore(context.Context, uuid.UUID) ([]models.StoreUser, error) {
	return nil, nil
}

func (m *stubMemberships) ListByUser(_ context.Context, userID uuid.UUID) ([]models.StoreUser, error) {
	var out []models.StoreUser
	for _, row := range m.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *stubMemberships) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type stubSessions struct {
	open map[string]uuid.UUID
}

func newStubSessions() *stubSessions {
	return &stubSessions{open: map[string]uuid.UUID{}}
}

func (s *stubSessions) Create(_ context.Context, accessID string, userID uuid.UUID) error {
	s.open[accessID] = userID
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	delete(s.open, accessID)
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "orderdesk", ExpirationMinutes: 15}
}

func newTestService(t *testing.T) (Service, *stubUsers, *stubMemberships, *stubSessions) {
	t.Helper()
	userRepo := newStubUsers()
	membershipRepo := &stubMemberships{}
	sessions := newStubSessions()
	svc, err := NewService(userRepo, newStubProfiles(), membershipRepo, sessions, stubTx{}, jwtConfig(), config.PasswordConfig{}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, userRepo, membershipRepo, sessions
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	svc, userRepo, _, _ := newTestService(t)

	snapshot, err := svc.Register(context.Background(), "Who@Example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if snapshot.User.Email != "who@example.com" {
		t.Fatalf("expected normalized email, got %q", snapshot.User.Email)
	}
	if snapshot.Profile == nil {
		t.Fatal("expected contact card to be created")
	}
	if snapshot.User.PasswordHash == "correct horse battery" {
		t.Fatal("password must be stored hashed")
	}

	// Duplicate registration conflicts.
	_, err = svc.Register(context.Background(), "who@example.com", "another password")
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(userRepo.rows) != 1 {
		t.Fatalf("expected one account, got %d", len(userRepo.rows))
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	if _, err := svc.Register(context.Background(), "not-an-email", "long enough password"); pkgerrors.As(err) == nil {
		t.Fatal("expected validation error for email")
	}
	if _, err := svc.Register(context.Background(), "ok@example.com", "short"); pkgerrors.As(err) == nil {
		t.Fatal("expected validation error for password")
	}
}

func TestLoginMintsTokenAndOpensSession(t *testing.T) {
	svc, userRepo, _, sessions := newTestService(t)

	if _, err := svc.Register(context.Background(), "who@example.com", "correct horse battery"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	result, err := svc.Login(context.Background(), "who@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected an access token")
	}

	claims, err := pkgauth.ParseAccessToken(jwtConfig(), result.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Role != enums.SystemRoleStore {
		t.Fatalf("expected store role, got %s", claims.Role)
	}
	if _, ok := sessions.open[claims.ID]; !ok {
		t.Fatal("expected a server-side session for the token")
	}

	user, _ := userRepo.FindByEmail(context.Background(), "who@example.com")
	if user.LastLoginAt == nil {
		t.Fatal("expected last login to be stamped")
	}

	// Logout closes the session.
	if err := svc.Logout(context.Background(), claims.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.open) != 0 {
		t.Fatal("expected the session to be revoked")
	}
}

func TestLoginRejectsBadCredentialsAndDisabledAccounts(t *testing.T) {
	svc, userRepo, _, _ := newTestService(t)

	if _, err := svc.Register(context.Background(), "who@example.com", "correct horse battery"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Login(context.Background(), "who@example.com", "wrong password")
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	_, err = svc.Login(context.Background(), "nobody@example.com", "whatever")
	coded = pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}

	for _, row := range userRepo.rows {
		row.IsActive = false
	}
	_, err = svc.Login(context.Background(), "who@example.com", "correct horse battery")
	coded = pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for disabled account, got %v", err)
	}
}

func TestMeResolvesAdminAndMemberships(t *testing.T) {
	svc, userRepo, membershipRepo, _ := newTestService(t)

	snapshot, err := svc.Register(context.Background(), "boss@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	userID := snapshot.User.ID
	_ = userRepo.GrantSystemRole(context.Background(), userID, string(enums.SystemRoleAdmin))

	storeID := uuid.New()
	membershipRepo.rows = append(membershipRepo.rows, models.StoreUser{
		StoreID: storeID, UserID: userID,
		Role: enums.MemberRoleEmployee, Status: enums.MembershipStatusEnabled,
	})

	me, err := svc.Me(context.Background(), userID)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if !me.Resolution.IsSuperAdmin {
		t.Fatal("expected super admin resolution")
	}
	if _, ok := me.Resolution.RoleIn(storeID); !ok {
		t.Fatal("expected membership to resolve")
	}
}
