package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dept-attendance-api/internal/models"
)

const attendanceColumns = "id, student_id, student_name, student_prn, department, division, class, timestamp, location, teacher_id, teacher_name, subject, lecture_number, lecture_date"

// AttendanceRepository stores attendance records. Records are append-only
// apart from teacher-initiated deletes.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create inserts a record.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	const query = `INSERT INTO attendance (id, student_id, student_name, student_prn, department, division, class, timestamp, location, teacher_id, teacher_name, subject, lecture_number, lecture_date)
		VALUES (:id, :student_id, :student_name, :student_prn, :department, :division, :class, :timestamp, :location, :teacher_id, :teacher_name, :subject, :lecture_number, :lecture_date)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// ListByTeacher returns every record captured for the teacher, newest first.
func (r *AttendanceRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.AttendanceRecord, error) {
	query := "SELECT " + attendanceColumns + " FROM attendance WHERE teacher_id = $1 ORDER BY timestamp DESC"
	records := []models.AttendanceRecord{}
	if err := r.db.SelectContext(ctx, &records, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher attendance: %w", err)
	}
	return records, nil
}

// ListByPRN returns every record of a student in storage order.
func (r *AttendanceRepository) ListByPRN(ctx context.Context, prn string) ([]models.AttendanceRecord, error) {
	query := "SELECT " + attendanceColumns + " FROM attendance WHERE student_prn = $1"
	records := []models.AttendanceRecord{}
	if err := r.db.SelectContext(ctx, &records, query, prn); err != nil {
		return nil, fmt.Errorf("list student attendance: %w", err)
	}
	return records, nil
}

// ExistsForLecture checks whether the student already has a record for the
// teacher's lecture.
func (r *AttendanceRepository) ExistsForLecture(ctx context.Context, teacherID, prn, lectureNumber, lectureDate string) (bool, error) {
	const query = `SELECT 1 FROM attendance WHERE teacher_id = $1 AND student_prn = $2 AND lecture_number = $3 AND lecture_date = $4 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, teacherID, prn, lectureNumber, lectureDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check attendance: %w", err)
	}
	return true, nil
}

// DeleteForTeacher hard-deletes a record owned by the teacher.
func (r *AttendanceRepository) DeleteForTeacher(ctx context.Context, id, teacherID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM attendance WHERE id = $1 AND teacher_id = $2", id, teacherID)
	if err != nil {
		return false, fmt.Errorf("delete attendance: %w", err)
	}
	return rowsChanged(res, "delete attendance")
}
