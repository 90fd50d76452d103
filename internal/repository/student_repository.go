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

const studentColumns = "id, name, phone, email, prn, department, class, division, created_at"

// StudentRepository manages persistence for students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByCredentials returns the first student whose name and phone match exactly.
func (r *StudentRepository) FindByCredentials(ctx context.Context, name, phone string) (*models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE name = $1 AND phone = $2 LIMIT 1"
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, name, phone); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByPRN checks whether a student already holds the PRN.
func (r *StudentRepository) ExistsByPRN(ctx context.Context, prn string) (bool, error) {
	return r.exists(ctx, "SELECT 1 FROM students WHERE prn = $1 LIMIT 1", prn, "check student prn")
}

// ExistsByPhone checks whether a student already uses the phone number.
func (r *StudentRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "SELECT 1 FROM students WHERE phone = $1 LIMIT 1", phone, "check student phone")
}

func (r *StudentRepository) exists(ctx context.Context, query, arg, op string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO students (id, name, phone, email, prn, department, class, division, created_at)
		VALUES (:id, :name, :phone, :email, :prn, :department, :class, :division, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// ListByDepartment returns the department's students ordered by name.
func (r *StudentRepository) ListByDepartment(ctx context.Context, department string) ([]models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE department = $1 ORDER BY name ASC"
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, department); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// CountByDepartment counts the department's students.
func (r *StudentRepository) CountByDepartment(ctx context.Context, department string) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM students WHERE department = $1", department); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return total, nil
}

// DeleteInDepartment removes a student belonging to the department. It
// reports false when no such student exists.
func (r *StudentRepository) DeleteInDepartment(ctx context.Context, id, department string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1 AND department = $2", id, department)
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}
	return rowsChanged(res, "delete student")
}
