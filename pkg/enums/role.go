package enums

import "fmt"

// Role identifies which side of the marketplace a user acts on.
type Role string

const (
	RoleDriver   Role = "driver"
	RoleMerchant Role = "merchant"
	RoleClient   Role = "client"
)

var validRoles = []Role{
	RoleDriver,
	RoleMerchant,
	RoleClient,
}

// IsValid checks whether the given role matches the canonical enum.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw strings into Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
