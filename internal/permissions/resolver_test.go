package permissions

import (
	"testing"

	"github.com/google/uuid"

	"github.com/oakhollow/orderdesk-backend/pkg/enums"
)

func TestResolveSkipsDisabledMemberships(t *testing.T) {
	storeA := uuid.New()
	storeB := uuid.New()

	res := Resolve(Identity{
		UserID: uuid.New(),
		Memberships: []Membership{
			{StoreID: storeA, Role: enums.MemberRoleStoreManager, Status: enums.MembershipStatusEnabled},
			{StoreID: storeB, Role: enums.MemberRoleManager, Status: enums.MembershipStatusDisabled},
		},
	})

	if res.IsSuperAdmin {
		t.Fatal("expected non-admin resolution")
	}
	if _, ok := res.RoleIn(storeA); !ok {
		t.Fatal("expected enabled membership to resolve")
	}
	if _, ok := res.RoleIn(storeB); ok {
		t.Fatal("disabled membership should not resolve")
	}
}

func TestResolveEmptyIdentity(t *testing.T) {
	res := Resolve(Identity{UserID: uuid.New()})
	if res.IsSuperAdmin || res.IsManager() || len(res.StoreRoles) != 0 {
		t.Fatalf("expected empty capability set, got %+v", res)
	}
}

func TestCanEditStore(t *testing.T) {
	storeA := uuid.New()
	storeB := uuid.New()

	t.Run("super admin edits any store", func(t *testing.T) {
		res := Resolve(Identity{SystemRoles: []enums.SystemRole{enums.SystemRoleAdmin}})
		if !res.CanEditStore(storeA) {
			t.Fatal("super admin should edit any store")
		}
	})

	t.Run("store manager edits own store only", func(t *testing.T) {
		res := Resolve(Identity{Memberships: []Membership{
			{StoreID: storeA, Role: enums.MemberRoleStoreManager, Status: enums.MembershipStatusEnabled},
		}})
		if !res.CanEditStore(storeA) {
			t.Fatal("store manager should edit own store")
		}
		if res.CanEditStore(storeB) {
			t.Fatal("store manager should not edit other stores")
		}
	})

	t.Run("employee cannot edit", func(t *testing.T) {
		res := Resolve(Identity{Memberships: []Membership{
			{StoreID: storeA, Role: enums.MemberRoleEmployee, Status: enums.MembershipStatusEnabled},
		}})
		if res.CanEditStore(storeA) {
			t.Fatal("employee should not edit store")
		}
	})

	t.Run("manager elsewhere with membership here", func(t *testing.T) {
		res := Resolve(Identity{Memberships: []Membership{
			{StoreID: storeA, Role: enums.MemberRoleManager, Status: enums.MembershipStatusEnabled},
			{StoreID: storeB, Role: enums.MemberRoleEmployee, Status: enums.MembershipStatusEnabled},
		}})
		if !res.CanEditStore(storeB) {
			t.Fatal("manager with membership should edit")
		}
	})
}

func TestCanManageUsersIsStricter(t *testing.T) {
	storeA := uuid.New()

	res := Resolve(Identity{Memberships: []Membership{
		{StoreID: storeA, Role: enums.MemberRoleManager, Status: enums.MembershipStatusEnabled},
	}})
	if !res.CanEditStore(storeA) {
		t.Fatal("manager should edit store")
	}
	if res.CanManageUsers(storeA) {
		t.Fatal("manager role alone should not manage users")
	}

	res = Resolve(Identity{Memberships: []Membership{
		{StoreID: storeA, Role: enums.MemberRoleStoreManager, Status: enums.MembershipStatusEnabled},
	}})
	if !res.CanManageUsers(storeA) {
		t.Fatal("store manager should manage own store users")
	}

	res = Resolve(Identity{SystemRoles: []enums.SystemRole{enums.SystemRoleAdmin}})
	if !res.CanManageUsers(storeA) {
		t.Fatal("super admin should manage users anywhere")
	}
}
