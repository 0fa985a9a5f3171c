package service

import "github.com/lendstack/agency-system/internal/core/domain"

// CanInvoke is the authorization predicate evaluated by the request layer
// before any role-gated operation. An empty requiredRoles set declares no
// restriction; otherwise the acting role must be a member. Unauthenticated
// operations (admin bootstrap, login, refresh) bypass this gate entirely.
func CanInvoke(requiredRoles []domain.Role, actingRole domain.Role) bool {
	if len(requiredRoles) == 0 {
		return true
	}
	for _, r := range requiredRoles {
		if r == actingRole {
			return true
		}
	}
	return false
}
