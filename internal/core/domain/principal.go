package domain

import "github.com/google/uuid"

type Role string

const (
	RoleCustomer Role = "Customer"
	RoleOwner    Role = "Owner"
	RoleAdmin    Role = "Admin"
)

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID uuid.UUID
	Role   Role
	Name   string
	Email  string
}

func (p Principal) Is(role Role) bool {
	return p.Role == role
}
