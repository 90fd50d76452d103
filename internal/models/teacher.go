package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Lecture is the session a teacher has opened for attendance.
type Lecture struct {
	Number string `json:"number"`
	Date   string `json:"date"`
}

// Value stores the lecture as jsonb.
func (l Lecture) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan reads a jsonb lecture.
func (l *Lecture) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// Teacher is an HOD-provisioned instructor.
type Teacher struct {
	ID                string         `db:"id" json:"id"`
	Name              string         `db:"name" json:"name"`
	Phone             string         `db:"phone" json:"phone"`
	Email             string         `db:"email" json:"email"`
	Department        string         `db:"department" json:"department"`
	Subject           string         `db:"subject" json:"subject"`
	AssignedClasses   pq.StringArray `db:"assigned_classes" json:"assignedClasses"`
	AssignedDivisions pq.StringArray `db:"assigned_divisions" json:"assignedDivisions"`
	AttendanceEnabled bool           `db:"attendance_enabled" json:"attendanceEnabled"`
	CurrentLecture    *Lecture       `db:"current_lecture" json:"currentLecture"`
	AddedBy           string         `db:"added_by" json:"addedBy"`
	AddedAt           time.Time      `db:"added_at" json:"addedAt"`
}

// CreateTeacherRequest is submitted by an HOD to provision a teacher.
type CreateTeacherRequest struct {
	Name              string   `json:"name" validate:"required"`
	Phone             string   `json:"phone" validate:"required"`
	Email             string   `json:"email"`
	Subject           string   `json:"subject" validate:"required"`
	AssignedClasses   []string `json:"assignedClasses"`
	AssignedDivisions []string `json:"assignedDivisions"`
}

// EnableAttendanceRequest opens a lecture for marking.
type EnableAttendanceRequest struct {
	LectureNumber string `json:"lectureNumber"`
	LectureDate   string `json:"lectureDate"`
}

// AttendanceLink is a shareable capture URL for one division.
type AttendanceLink struct {
	Division string `json:"division"`
	URL      string `json:"url"`
}

func scanJSON(src interface{}, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source %T", src)
	}
}
