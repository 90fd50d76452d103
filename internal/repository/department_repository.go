package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/dept-attendance-api/internal/models"
)

const departmentColumns = "id, name, classes, divisions, created_by, created_at"

// DepartmentRepository manages the class and division lists of departments.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository constructs a DepartmentRepository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// FindByName fetches a department by its exact name.
func (r *DepartmentRepository) FindByName(ctx context.Context, name string) (*models.Department, error) {
	query := "SELECT " + departmentColumns + " FROM departments WHERE name = $1"
	var dept models.Department
	if err := r.db.GetContext(ctx, &dept, query, name); err != nil {
		return nil, err
	}
	return &dept, nil
}

// List returns every department ordered by name.
func (r *DepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	query := "SELECT " + departmentColumns + " FROM departments ORDER BY name ASC"
	depts := []models.Department{}
	if err := r.db.SelectContext(ctx, &depts, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return depts, nil
}

// ExistsByNameFold checks for a department whose name matches ignoring case.
func (r *DepartmentRepository) ExistsByNameFold(ctx context.Context, name string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM departments WHERE LOWER(name) = LOWER($1) LIMIT 1", name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check department name: %w", err)
	}
	return true, nil
}

// CreateIfMissing inserts the department unless one with the same name exists.
// It reports whether a row was written.
func (r *DepartmentRepository) CreateIfMissing(ctx context.Context, dept *models.Department) (bool, error) {
	prepareDepartment(dept)
	const query = `INSERT INTO departments (id, name, classes, divisions, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, dept.ID, dept.Name, dept.Classes, dept.Divisions, dept.CreatedBy, dept.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("create department: %w", err)
	}
	return rowsChanged(res, "create department")
}

// AddClass appends the class to the department, creating the department when
// it does not exist. It reports false when the class is already listed.
func (r *DepartmentRepository) AddClass(ctx context.Context, department, class string) (bool, error) {
	return r.addEntry(ctx, "classes", department, class)
}

// AddDivision appends the division to the department, creating the
// department when it does not exist. It reports false when the division is
// already listed.
func (r *DepartmentRepository) AddDivision(ctx context.Context, department, division string) (bool, error) {
	return r.addEntry(ctx, "divisions", department, division)
}

// addEntry performs the membership check and the append in one statement so
// concurrent additions never overwrite each other.
func (r *DepartmentRepository) addEntry(ctx context.Context, column, department, value string) (bool, error) {
	classes, divisions := pq.StringArray{}, pq.StringArray{}
	if column == "classes" {
		classes = append(classes, value)
	} else {
		divisions = append(divisions, value)
	}

	query := fmt.Sprintf(`INSERT INTO departments (id, name, classes, divisions, created_by, created_at)
		VALUES ($1, $2, $3, $4, '', $5)
		ON CONFLICT (name) DO UPDATE SET %[1]s = array_append(departments.%[1]s, $6::text)
		WHERE NOT ($6::text = ANY(departments.%[1]s))`, column)

	res, err := r.db.ExecContext(ctx, query, uuid.NewString(), department, classes, divisions, time.Now().UTC(), value)
	if err != nil {
		return false, fmt.Errorf("add department %s: %w", column, err)
	}
	return rowsChanged(res, "add department "+column)
}

func prepareDepartment(dept *models.Department) {
	if dept.ID == "" {
		dept.ID = uuid.NewString()
	}
	if dept.CreatedAt.IsZero() {
		dept.CreatedAt = time.Now().UTC()
	}
	if dept.Classes == nil {
		dept.Classes = pq.StringArray{}
	}
	if dept.Divisions == nil {
		dept.Divisions = pq.StringArray{}
	}
}
