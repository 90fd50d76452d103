package models

import "github.com/golang-jwt/jwt/v5"

// Session is the logged-in account: every stored field of the account row
// plus its id and role.
type Session struct {
	ID         string `json:"id"`
	Role       Role   `json:"role"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Department string `json:"department"`

	PRN      string `json:"prn,omitempty"`
	Class    string `json:"class,omitempty"`
	Division string `json:"division,omitempty"`

	Subject           string   `json:"subject,omitempty"`
	AssignedClasses   []string `json:"assignedClasses,omitempty"`
	AssignedDivisions []string `json:"assignedDivisions,omitempty"`
	AttendanceEnabled bool     `json:"attendanceEnabled,omitempty"`
	CurrentLecture    *Lecture `json:"currentLecture,omitempty"`

	EmployeeID string `json:"employeeId,omitempty"`

	// Key addresses the stored copy. It travels in the token, not the payload.
	Key string `json:"-"`
}

// StudentSession builds the session of a student.
func StudentSession(s Student) Session {
	return Session{
		ID:         s.ID,
		Role:       RoleStudent,
		Name:       s.Name,
		Phone:      s.Phone,
		Email:      s.Email,
		Department: s.Department,
		PRN:        s.PRN,
		Class:      s.Class,
		Division:   s.Division,
	}
}

// TeacherSession builds the session of a teacher.
func TeacherSession(t Teacher) Session {
	return Session{
		ID:                t.ID,
		Role:              RoleTeacher,
		Name:              t.Name,
		Phone:             t.Phone,
		Email:             t.Email,
		Department:        t.Department,
		Subject:           t.Subject,
		AssignedClasses:   append([]string(nil), t.AssignedClasses...),
		AssignedDivisions: append([]string(nil), t.AssignedDivisions...),
		AttendanceEnabled: t.AttendanceEnabled,
		CurrentLecture:    t.CurrentLecture,
	}
}

// HODSession builds the session of an HOD.
func HODSession(h HOD) Session {
	return Session{
		ID:         h.ID,
		Role:       RoleHOD,
		Name:       h.Name,
		Phone:      h.Phone,
		Email:      h.Email,
		Department: h.Department,
		EmployeeID: h.EmployeeID,
	}
}

// LoginRequest holds the credentials of any role.
type LoginRequest struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// LoginResponse returns the bearer token and the session it names.
type LoginResponse struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}

// RegisterRequest is the union of the role-specific sign-up payloads.
type RegisterRequest struct {
	Role       string `json:"role"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	PRN        string `json:"prn"`
	Department string `json:"department"`
	Class      string `json:"class"`
	Division   string `json:"division"`
	EmployeeID string `json:"employeeId"`
}

// SessionClaims is the signed token payload.
type SessionClaims struct {
	SessionID string `json:"sid"`
	Role      Role   `json:"role"`
	jwt.RegisteredClaims
}
