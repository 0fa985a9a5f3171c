package domain

// Claims is the identity payload embedded in signed tokens. It is ephemeral:
// built from a User at signing time, recovered at verification time, and never
// persisted.
type Claims struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
	TenantID string `json:"tenantId"`
}

// ClaimsFor derives the token claims for a user.
func ClaimsFor(u *User) Claims {
	c := Claims{
		ID:    u.ID,
		Role:  u.Role,
		Email: u.Email,
	}
	if u.Tenant != nil {
		c.TenantID = u.Tenant.ID
	}
	return c
}

// Complete reports whether every claim field required for signing is present.
func (c Claims) Complete() bool {
	return c.ID != "" && c.Role != "" && c.Email != "" && c.TenantID != ""
}
