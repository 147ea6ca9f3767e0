// AngelaMos | 2026
// roles.go

package core

import "slices"

const (
	RoleAdmin    = "admin"
	RoleTenant   = "tenant"
	RoleInvestor = "investor"
	RoleGuest    = "guest"
)

// Roles lists every account role in the order they are presented to admins.
var Roles = []string{RoleAdmin, RoleTenant, RoleInvestor, RoleGuest}

// SelfServiceRoles are the roles a visitor may pick when registering.
var SelfServiceRoles = []string{RoleGuest, RoleTenant, RoleInvestor}

func IsRole(role string) bool {
	return slices.Contains(Roles, role)
}
