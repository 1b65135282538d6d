package permissions

import (
	"github.com/google/uuid"

	"github.com/oakhollow/orderdesk-backend/pkg/enums"
)

// Membership is one store-role edge from the identity snapshot.
type Membership struct {
	StoreID uuid.UUID
	Role    enums.MemberRole
	Status  enums.MembershipStatus
}

// Identity is the snapshot the resolver derives capabilities from. It is
// rebuilt whenever the session changes; the resolver itself performs no I/O.
type Identity struct {
	UserID      uuid.UUID
	SystemRoles []enums.SystemRole
	Memberships []Membership
}

// Resolution holds the effective capability set for one identity snapshot.
type Resolution struct {
	IsSuperAdmin bool
	StoreRoles   map[uuid.UUID]enums.MemberRole
}

// Resolve derives capabilities from the identity snapshot. Only enabled
// memberships contribute store roles; a user with no memberships and no
// admin system role resolves to an empty capability set.
func Resolve(identity Identity) Resolution {
	res := Resolution{
		StoreRoles: map[uuid.UUID]enums.MemberRole{},
	}
	for _, role := range identity.SystemRoles {
		if role == enums.SystemRoleAdmin {
			res.IsSuperAdmin = true
		}
	}
	for _, m := range identity.Memberships {
		if m.Status != enums.MembershipStatusEnabled {
			continue
		}
		res.StoreRoles[m.StoreID] = m.Role
	}
	return res
}

// IsManager reports whether the user holds a manager-grade role in any store.
func (r Resolution) IsManager() bool {
	for _, role := range r.StoreRoles {
		if role == enums.MemberRoleManager || role == enums.MemberRoleStoreManager {
			return true
		}
	}
	return false
}

// RoleIn returns the user's role in the given store, if any.
func (r Resolution) RoleIn(storeID uuid.UUID) (enums.MemberRole, bool) {
	role, ok := r.StoreRoles[storeID]
	return role, ok
}

// CanEditStore reports whether the user may edit the store's settings:
// super admins always, store managers of that store, or managers anywhere
// who also belong to that store.
func (r Resolution) CanEditStore(storeID uuid.UUID) bool {
	if r.IsSuperAdmin {
		return true
	}
	role, ok := r.RoleIn(storeID)
	if !ok {
		return false
	}
	if role == enums.MemberRoleStoreManager {
		return true
	}
	return r.IsManager()
}

// CanManageUsers reports whether the user may manage the store's membership
// roster. Stricter than CanEditStore: only super admins and that store's own
// store manager qualify.
func (r Resolution) CanManageUsers(storeID uuid.UUID) bool {
	if r.IsSuperAdmin {
		return true
	}
	role, ok := r.RoleIn(storeID)
	return ok && role == enums.MemberRoleStoreManager
}
