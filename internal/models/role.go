package models

import "strings"

// Role identifies which collection an account lives in.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleHOD     Role = "hod"
)

// Valid returns true when the role is a supported value.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleHOD:
		return true
	default:
		return false
	}
}

// ParseRole normalises user input into a Role. The boolean is false for unknown roles.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	return role, role.Valid()
}

// RoleOption describes an entry on the role selection screen.
type RoleOption struct {
	Role        Role   `json:"role"`
	Label       string `json:"label"`
	Description string `json:"description"`
	CanLogin    bool   `json:"canLogin"`
	CanRegister bool   `json:"canRegister"`
	Note        string `json:"note,omitempty"`
}

// RoleOptions lists the roles in display order.
func RoleOptions() []RoleOption {
	return []RoleOption{
		{Role: RoleStudent, Label: "Student", Description: "Mark attendance and view your records", CanLogin: true, CanRegister: true},
		{Role: RoleTeacher, Label: "Teacher", Description: "Manage classes and track attendance", CanLogin: true, Note: "Teachers cannot self-register. Contact your HOD."},
		{Role: RoleHOD, Label: "HOD", Description: "Department administration and oversight", CanLogin: true, CanRegister: true},
	}
}
