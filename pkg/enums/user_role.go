package enums

import "fmt"

// UserRole gates authorization for material and group-order mutations.
// The domain's terminology is inverted: a "buyer" supplies materials, a
// "vendor" organizes and joins group orders.
type UserRole string

const (
	UserRoleVendor UserRole = "vendor"
	UserRoleBuyer  UserRole = "buyer"
)

var validUserRoles = []UserRole{
	UserRoleVendor,
	UserRoleBuyer,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
