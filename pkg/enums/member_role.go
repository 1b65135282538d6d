package enums

import "fmt"

// MemberRole represents a store-level permissions role.
type MemberRole string

const (
	MemberRoleStoreManager MemberRole = "store_manager"
	MemberRoleManager      MemberRole = "manager"
	MemberRoleEmployee     MemberRole = "employee"
)

var validMemberRoles = []MemberRole{
	MemberRoleStoreManager,
	MemberRoleManager,
	MemberRoleEmployee,
}

// String implements fmt.Stringer.
func (m MemberRole) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MemberRole.
func (m MemberRole) IsValid() bool {
	for _, candidate := range validMemberRoles {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMemberRole converts raw input into a MemberRole.
func ParseMemberRole(value string) (MemberRole, error) {
	for _, candidate := range validMemberRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member role %q", value)
}

// MembershipStatus captures whether a store membership is usable.
type MembershipStatus string

const (
	MembershipStatusEnabled  MembershipStatus = "enabled"
	MembershipStatusDisabled MembershipStatus = "disabled"
)

var validMembershipStatuses = []MembershipStatus{
	MembershipStatusEnabled,
	MembershipStatusDisabled,
}

// String implements fmt.Stringer.
func (m MembershipStatus) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MembershipStatus.
func (m MembershipStatus) IsValid() bool {
	for _, candidate := range validMembershipStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMembershipStatus converts raw input into a MembershipStatus.
func ParseMembershipStatus(value string) (MembershipStatus, error) {
	for _, candidate := range validMembershipStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid membership status %q", value)
}
