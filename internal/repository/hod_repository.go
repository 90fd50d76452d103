package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dept-attendance-api/internal/models"
)

const hodColumns = "id, name, phone, email, department, employee_id, created_at"

// HODRepository manages persistence for heads of department.
type HODRepository struct {
	db *sqlx.DB
}

// NewHODRepository constructs an HODRepository.
func NewHODRepository(db *sqlx.DB) *HODRepository {
	return &HODRepository{db: db}
}

// FindByCredentials returns the first HOD whose name and phone match exactly.
func (r *HODRepository) FindByCredentials(ctx context.Context, name, phone string) (*models.HOD, error) {
	query := "SELECT " + hodColumns + " FROM hods WHERE name = $1 AND phone = $2 LIMIT 1"
	var hod models.HOD
	if err := r.db.GetContext(ctx, &hod, query, name, phone); err != nil {
		return nil, err
	}
	return &hod, nil
}

// ExistsByPhone checks whether an HOD already uses the phone number.
func (r *HODRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "phone", phone)
}

// ExistsByEmployeeID checks whether an HOD already holds the employee id.
func (r *HODRepository) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	return r.exists(ctx, "employee_id", employeeID)
}

// ExistsByDepartment checks whether the department already has an HOD.
func (r *HODRepository) ExistsByDepartment(ctx context.Context, department string) (bool, error) {
	return r.exists(ctx, "department", department)
}

func (r *HODRepository) exists(ctx context.Context, column, value string) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM hods WHERE %s = $1 LIMIT 1", column)
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check hod %s: %w", column, err)
	}
	return true, nil
}

// Create inserts a new HOD record.
func (r *HODRepository) Create(ctx context.Context, hod *models.HOD) error {
	if hod.ID == "" {
		hod.ID = uuid.NewString()
	}
	if hod.CreatedAt.IsZero() {
		hod.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO hods (id, name, phone, email, department, employee_id, created_at)
		VALUES (:id, :name, :phone, :email, :department, :employee_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, hod); err != nil {
		return fmt.Errorf("create hod: %w", err)
	}
	return nil
}
