package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// GeoPoint is the advisory position reported by the student's device.
type GeoPoint struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// Value stores the point as jsonb.
func (g GeoPoint) Value() (driver.Value, error) {
	return json.Marshal(g)
}

// Scan reads a jsonb point.
func (g *GeoPoint) Scan(src interface{}) error {
	return scanJSON(src, g)
}

// AttendanceRecord is one student's presence at one lecture. Student and
// teacher fields are copied at marking time and never reconciled.
type AttendanceRecord struct {
	ID            string    `db:"id" json:"id"`
	StudentID     string    `db:"student_id" json:"studentId"`
	StudentName   string    `db:"student_name" json:"studentName"`
	StudentPRN    string    `db:"student_prn" json:"studentPRN"`
	Department    string    `db:"department" json:"department"`
	Division      string    `db:"division" json:"division"`
	Class         string    `db:"class" json:"class"`
	Timestamp     time.Time `db:"timestamp" json:"timestamp"`
	Location      *GeoPoint `db:"location" json:"location"`
	TeacherID     string    `db:"teacher_id" json:"teacherId"`
	TeacherName   string    `db:"teacher_name" json:"teacherName"`
	Subject       string    `db:"subject" json:"subject"`
	LectureNumber string    `db:"lecture_number" json:"lectureNumber"`
	LectureDate   string    `db:"lecture_date" json:"lectureDate"`
}

// MarkAttendanceRequest is the optional body of a mark call.
type MarkAttendanceRequest struct {
	Location *GeoPoint `json:"location"`
}

// AttendanceFilter narrows a teacher's records. Empty fields match everything.
type AttendanceFilter struct {
	Search   string `form:"search"`
	Division string `form:"division"`
	Class    string `form:"class"`
	Date     string `form:"date"`
	Lecture  string `form:"lecture"`
}

// DailyAttendance is the number of records on one calendar date.
type DailyAttendance struct {
	Date     string `json:"date"`
	Students int    `json:"students"`
}

// StudentProgress is a student's attendance against the expected lecture count.
type StudentProgress struct {
	PRN              string             `json:"prn"`
	StudentName      string             `json:"studentName"`
	Attended         int                `json:"attended"`
	ExpectedLectures int                `json:"expectedLectures"`
	Percentage       int                `json:"percentage"`
	Records          []AttendanceRecord `json:"records"`
}

// CaptureStatus is the state of an attendance link.
type CaptureStatus string

const (
	CaptureNotFound  CaptureStatus = "not_found"
	CaptureDisabled  CaptureStatus = "disabled"
	CaptureNoLecture CaptureStatus = "no_lecture"
	CaptureReady     CaptureStatus = "ready"
)

// CaptureState describes what a student sees when opening a link.
type CaptureState struct {
	Status      CaptureStatus `json:"status"`
	Message     string        `json:"message,omitempty"`
	TeacherID   string        `json:"teacherId"`
	Division    string        `json:"division"`
	TeacherName string        `json:"teacherName,omitempty"`
	Subject     string        `json:"subject,omitempty"`
	Department  string        `json:"department,omitempty"`
	Lecture     *Lecture      `json:"lecture,omitempty"`
}
