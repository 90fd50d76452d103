package models

import "time"

// HOD is the head of a department. At most one exists per department.
type HOD struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Phone      string    `db:"phone" json:"phone"`
	Email      string    `db:"email" json:"email"`
	Department string    `db:"department" json:"department"`
	EmployeeID string    `db:"employee_id" json:"employeeId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// HODRegistration is the payload of an HOD sign-up.
type HODRegistration struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required,phone_digits"`
	Email      string `json:"email" validate:"required,contains=@"`
	Department string `json:"department" validate:"required"`
	EmployeeID string `json:"employeeId" validate:"required"`
}

// DepartmentOverview summarises an HOD's department.
type DepartmentOverview struct {
	Department string `json:"department"`
	Teachers   int    `json:"teachers"`
	Students   int    `json:"students"`
	Classes    int    `json:"classes"`
	Divisions  int    `json:"divisions"`
}
