// models/volunteer.go
package models

import "time"

// Roles
const (
	RoleVolunteer  = "volunteer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
	RoleParent     = "parent"
)

// Volunteer categories
const (
	CategoryStudent = "student"
	CategoryAdult   = "adult"
	CategoryParent  = "parent"
)

type Volunteer struct {
	ID         int       `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone"`
	Age        *int      `json:"age,omitempty"`
	Role       string    `json:"role"`
	Category   string    `json:"category"`
	IsApproved bool      `json:"is_approved"`
	ManagedBy  *int      `json:"managed_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleVolunteer, RoleAdmin, RoleSuperAdmin, RoleParent:
		return true
	}
	return false
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryStudent, CategoryAdult, CategoryParent:
		return true
	}
	return false
}
