package enums

import "fmt"

// SystemRole is the global role assignment kept in user_roles. The admin
// role is the super-admin flag; store is the default storefront account.
type SystemRole string

const (
	SystemRoleAdmin SystemRole = "admin"
	SystemRoleStore SystemRole = "store"
)

var validSystemRoles = []SystemRole{
	SystemRoleAdmin,
	SystemRoleStore,
}

// String implements fmt.Stringer.
func (s SystemRole) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SystemRole.
func (s SystemRole) IsValid() bool {
	for _, candidate := range validSystemRoles {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSystemRole converts raw input into a SystemRole.
func ParseSystemRole(value string) (SystemRole, error) {
	for _, candidate := range validSystemRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid system role %q", value)
}
