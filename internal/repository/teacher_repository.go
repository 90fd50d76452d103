package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dept-attendance-api/internal/models"
)

const teacherColumns = "id, name, phone, email, department, subject, assigned_classes, assigned_divisions, attendance_enabled, current_lecture, added_by, added_at"

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindByCredentials returns the first teacher whose name and phone match exactly.
func (r *TeacherRepository) FindByCredentials(ctx context.Context, name, phone string) (*models.Teacher, error) {
	query := "SELECT " + teacherColumns + " FROM teachers WHERE name = $1 AND phone = $2 LIMIT 1"
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, name, phone); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindByID fetches a teacher by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	query := "SELECT " + teacherColumns + " FROM teachers WHERE id = $1"
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create inserts a new teacher record.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}
	if teacher.AddedAt.IsZero() {
		teacher.AddedAt = time.Now().UTC()
	}

	const query = `INSERT INTO teachers (id, name, phone, email, department, subject, assigned_classes, assigned_divisions, attendance_enabled, current_lecture, added_by, added_at)
		VALUES (:id, :name, :phone, :email, :department, :subject, :assigned_classes, :assigned_divisions, :attendance_enabled, :current_lecture, :added_by, :added_at)`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// ListByDepartment returns the department's teachers in the order they were added.
func (r *TeacherRepository) ListByDepartment(ctx context.Context, department string) ([]models.Teacher, error) {
	query := "SELECT " + teacherColumns + " FROM teachers WHERE department = $1 ORDER BY added_at ASC"
	teachers := []models.Teacher{}
	if err := r.db.SelectContext(ctx, &teachers, query, department); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// CountByDepartment counts the department's teachers.
func (r *TeacherRepository) CountByDepartment(ctx context.Context, department string) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM teachers WHERE department = $1", department); err != nil {
		return 0, fmt.Errorf("count teachers: %w", err)
	}
	return total, nil
}

// DeleteInDepartment removes a teacher belonging to the department.
func (r *TeacherRepository) DeleteInDepartment(ctx context.Context, id, department string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM teachers WHERE id = $1 AND department = $2", id, department)
	if err != nil {
		return false, fmt.Errorf("delete teacher: %w", err)
	}
	return rowsChanged(res, "delete teacher")
}

// EnableAttendance opens the lecture for marking in a single write.
func (r *TeacherRepository) EnableAttendance(ctx context.Context, id string, lecture models.Lecture) (bool, error) {
	const query = `UPDATE teachers SET attendance_enabled = TRUE, current_lecture = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, lecture)
	if err != nil {
		return false, fmt.Errorf("enable attendance: %w", err)
	}
	return rowsChanged(res, "enable attendance")
}

// DisableAttendance closes marking and clears the lecture.
func (r *TeacherRepository) DisableAttendance(ctx context.Context, id string) (bool, error) {
	const query = `UPDATE teachers SET attendance_enabled = FALSE, current_lecture = NULL WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("disable attendance: %w", err)
	}
	return rowsChanged(res, "disable attendance")
}
