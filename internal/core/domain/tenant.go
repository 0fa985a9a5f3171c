package domain

import "time"

// DefaultCountry is applied to tenants created without an explicit country.
const DefaultCountry = "Uganda"

// Tenant is a loan agency, the top-level isolation boundary. Each user
// belongs to exactly one tenant, and tenants are created only during admin
// bootstrap.
type Tenant struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	RegistrationNumber string         `json:"registration_number,omitempty"`
	Address            string         `json:"address,omitempty"`
	City               string         `json:"city,omitempty"`
	Country            string         `json:"country"`
	PhoneNumber        string         `json:"phone_number,omitempty"`
	Email              string         `json:"email,omitempty"`
	Website            string         `json:"website,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}
