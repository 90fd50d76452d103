package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/dept-attendance-api/internal/models"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
)

type hodTeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	ListByDepartment(ctx context.Context, department string) ([]models.Teacher, error)
	CountByDepartment(ctx context.Context, department string) (int, error)
	DeleteInDepartment(ctx context.Context, id, department string) (bool, error)
}

type hodStudentRepository interface {
	ListByDepartment(ctx context.Context, department string) ([]models.Student, error)
	CountByDepartment(ctx context.Context, department string) (int, error)
	DeleteInDepartment(ctx context.Context, id, department string) (bool, error)
}

type departmentReader interface {
	FindByName(ctx context.Context, name string) (*models.Department, error)
}

// HODService covers the administration an HOD performs over their department.
type HODService struct {
	teachers    hodTeacherRepository
	students    hodStudentRepository
	departments departmentReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewHODService constructs an HODService.
func NewHODService(teachers hodTeacherRepository, students hodStudentRepository, departments departmentReader, validate *validator.Validate, logger *zap.Logger) *HODService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HODService{teachers: teachers, students: students, departments: departments, validator: validate, logger: logger}
}

// CreateTeacher provisions a teacher in the HOD's department with attendance closed.
func (s *HODService) CreateTeacher(ctx context.Context, hod models.Session, req models.CreateTeacherRequest) (*models.Teacher, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, msgRequiredFields)
	}

	classes := compactValues(req.AssignedClasses)
	divisions := compactValues(req.AssignedDivisions)
	if len(classes) == 0 || len(divisions) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, msgAssignClassDivision)
	}

	teacher := &models.Teacher{
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		Department:        hod.Department,
		Subject:           req.Subject,
		AssignedClasses:   classes,
		AssignedDivisions: divisions,
		AttendanceEnabled: false,
		AddedBy:           hod.ID,
	}
	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, appErrors.Storage(err, "Failed to add teacher")
	}

	s.logger.Info("teacher added", zap.String("teacher_id", teacher.ID), zap.String("department", teacher.Department), zap.String("hod_id", hod.ID))
	return teacher, nil
}

// ListTeachers returns the department's teachers.
func (s *HODService) ListTeachers(ctx context.Context, department string) ([]models.Teacher, error) {
	teachers, err := s.teachers.ListByDepartment(ctx, department)
	if err != nil {
		return nil, appErrors.Storage(err, "Failed to load teachers")
	}
	return teachers, nil
}

// DeleteTeacher removes a teacher of the department. Their attendance
// records are kept.
func (s *HODService) DeleteTeacher(ctx context.Context, department, id string) error {
	deleted, err := s.teachers.DeleteInDepartment(ctx, id, department)
	if err != nil {
		return appErrors.Storage(err, "Failed to delete teacher")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	s.logger.Info("teacher deleted", zap.String("teacher_id", id), zap.String("department", department))
	return nil
}

// ListStudents returns the department's students, optionally narrowed by a
// case-insensitive search over name, PRN and email.
func (s *HODService) ListStudents(ctx context.Context, department, search string) ([]models.Student, error) {
	students, err := s.students.ListByDepartment(ctx, department)
	if err != nil {
		return nil, appErrors.Storage(err, "Failed to load students")
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return students, nil
	}
	filtered := make([]models.Student, 0, len(students))
	for _, student := range students {
		if containsFold(student.Name, needle) || containsFold(student.PRN, needle) || containsFold(student.Email, needle) {
			filtered = append(filtered, student)
		}
	}
	return filtered, nil
}

// DeleteStudent removes a student of the department.
func (s *HODService) DeleteStudent(ctx context.Context, department, id string) error {
	deleted, err := s.students.DeleteInDepartment(ctx, id, department)
	if err != nil {
		return appErrors.Storage(err, "Failed to remove student")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	s.logger.Info("student removed", zap.String("student_id", id), zap.String("department", department))
	return nil
}

// Overview counts the department's teachers, students, classes and divisions.
func (s *HODService) Overview(ctx context.Context, department string) (*models.DepartmentOverview, error) {
	overview := &models.DepartmentOverview{Department: department}

	var err error
	if overview.Teachers, err = s.teachers.CountByDepartment(ctx, department); err != nil {
		return nil, appErrors.Storage(err, "Failed to load overview")
	}
	if overview.Students, err = s.students.CountByDepartment(ctx, department); err != nil {
		return nil, appErrors.Storage(err, "Failed to load overview")
	}

	dept, err := s.departments.FindByName(ctx, department)
	switch {
	case err == nil:
		overview.Classes = len(dept.Classes)
		overview.Divisions = len(dept.Divisions)
	case isNotFound(err):
	default:
		return nil, appErrors.Storage(err, "Failed to load overview")
	}
	return overview, nil
}

// containsFold reports whether needle, already lowercased, occurs in s ignoring case.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

// compactValues trims entries and drops blanks and repeats, keeping order.
func compactValues(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
