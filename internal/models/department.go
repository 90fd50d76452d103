package models

import (
	"time"

	"github.com/lib/pq"
)

// Default class and division lists given to a new department.
var (
	DefaultClasses   = []string{"SE", "TE", "BE"}
	DefaultDivisions = []string{"A", "B", "C"}
)

// Department holds the ordered class and division lists of an academic unit.
type Department struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Classes   pq.StringArray `db:"classes" json:"classes"`
	Divisions pq.StringArray `db:"divisions" json:"divisions"`
	CreatedBy string         `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}

// DepartmentRequest carries a department name.
type DepartmentRequest struct {
	Name string `json:"name" validate:"required"`
}

// DepartmentEntryRequest carries a class or division to add.
type DepartmentEntryRequest struct {
	Value string `json:"value" validate:"required"`
}
