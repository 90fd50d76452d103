package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/dept-attendance-api/internal/models"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
)

type studentRegistry interface {
	ExistsByPRN(ctx context.Context, prn string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
}

type hodRegistry interface {
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)
	ExistsByDepartment(ctx context.Context, department string) (bool, error)
	Create(ctx context.Context, hod *models.HOD) error
}

type departmentSeeder interface {
	CreateIfMissing(ctx context.Context, dept *models.Department) (bool, error)
}

type registrationRecorder interface {
	RecordRegistration(role, outcome string)
}

// Registration is the outcome of a sign-up. Exactly one of Student or HOD is set.
type Registration struct {
	Role              models.Role        `json:"role"`
	Student           *models.Student    `json:"student,omitempty"`
	HOD               *models.HOD        `json:"hod,omitempty"`
	DepartmentCreated bool               `json:"departmentCreated,omitempty"`
	Department        *models.Department `json:"department,omitempty"`
}

// RegistrationService creates student and HOD accounts.
type RegistrationService struct {
	students    studentRegistry
	hods        hodRegistry
	departments departmentSeeder
	validator   *validator.Validate
	metrics     registrationRecorder
	logger      *zap.Logger
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(students studentRegistry, hods hodRegistry, departments departmentSeeder, validate *validator.Validate, metrics registrationRecorder, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = NewValidator()
	}
	if metrics == nil {
		metrics = (*MetricsService)(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{students: students, hods: hods, departments: departments, validator: validate, metrics: metrics, logger: logger}
}

// Register dispatches on the requested role. Teachers are provisioned by
// their HOD and can never sign up themselves.
func (s *RegistrationService) Register(ctx context.Context, req models.RegisterRequest) (*Registration, error) {
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, appErrors.Invalid("role", msgInvalidRole)
	}

	var (
		result *Registration
		err    error
	)
	switch role {
	case models.RoleTeacher:
		err = appErrors.ErrRegistrationClosed
	case models.RoleStudent:
		var student *models.Student
		student, err = s.RegisterStudent(ctx, models.StudentRegistration{
			Name:       req.Name,
			Phone:      req.Phone,
			Email:      req.Email,
			PRN:        req.PRN,
			Department: req.Department,
			Class:      req.Class,
			Division:   req.Division,
		})
		if err == nil {
			result = &Registration{Role: role, Student: student}
		}
	case models.RoleHOD:
		result, err = s.RegisterHOD(ctx, models.HODRegistration{
			Name:       req.Name,
			Phone:      req.Phone,
			Email:      req.Email,
			Department: req.Department,
			EmployeeID: req.EmployeeID,
		})
	}

	s.metrics.RecordRegistration(string(role), outcomeOf(err))
	return result, err
}

// RegisterStudent validates and inserts a student. PRN is stored uppercased
// and email lowercased.
func (s *RegistrationService) RegisterStudent(ctx context.Context, req models.StudentRegistration) (*models.Student, error) {
	req = models.StudentRegistration{
		Name:       strings.TrimSpace(req.Name),
		Phone:      strings.TrimSpace(req.Phone),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		PRN:        strings.ToUpper(strings.TrimSpace(req.PRN)),
		Department: strings.TrimSpace(req.Department),
		Class:      strings.TrimSpace(req.Class),
		Division:   strings.TrimSpace(req.Division),
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	exists, err := s.students.ExistsByPRN(ctx, req.PRN)
	if err != nil {
		return nil, appErrors.Storage(err, "Registration failed")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, msgDuplicatePRN)
	}

	exists, err = s.students.ExistsByPhone(ctx, req.Phone)
	if err != nil {
		return nil, appErrors.Storage(err, "Registration failed")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, msgDuplicatePhone)
	}

	student := &models.Student{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		PRN:        req.PRN,
		Department: req.Department,
		Class:      req.Class,
		Division:   req.Division,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, storageError(err, "Registration failed")
	}

	s.logger.Info("student registered", zap.String("student_id", student.ID), zap.String("department", student.Department))
	return student, nil
}

// RegisterHOD validates and inserts an HOD, then seeds the department with
// default classes and divisions when it does not exist yet. A failure while
// seeding is reported but the HOD row is kept.
func (s *RegistrationService) RegisterHOD(ctx context.Context, req models.HODRegistration) (*Registration, error) {
	req = models.HODRegistration{
		Name:       strings.TrimSpace(req.Name),
		Phone:      strings.TrimSpace(req.Phone),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Department: strings.TrimSpace(req.Department),
		EmployeeID: strings.TrimSpace(req.EmployeeID),
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	checks := []struct {
		exists  func(context.Context, string) (bool, error)
		value   string
		message string
	}{
		{s.hods.ExistsByPhone, req.Phone, msgDuplicatePhone},
		{s.hods.ExistsByEmployeeID, req.EmployeeID, msgDuplicateEmployeeID},
		{s.hods.ExistsByDepartment, req.Department, msgDuplicateHOD},
	}
	for _, check := range checks {
		exists, err := check.exists(ctx, check.value)
		if err != nil {
			return nil, appErrors.Storage(err, "Registration failed")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, check.message)
		}
	}

	hod := &models.HOD{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Department: req.Department,
		EmployeeID: req.EmployeeID,
	}
	if err := s.hods.Create(ctx, hod); err != nil {
		return nil, storageError(err, "Registration failed")
	}

	dept := &models.Department{
		Name:      hod.Department,
		Classes:   append([]string(nil), models.DefaultClasses...),
		Divisions: append([]string(nil), models.DefaultDivisions...),
		CreatedBy: hod.ID,
	}
	created, err := s.departments.CreateIfMissing(ctx, dept)
	if err != nil {
		s.logger.Warn("hod registered but department setup failed",
			zap.String("hod_id", hod.ID),
			zap.String("department", hod.Department),
			zap.Error(err),
		)
		return nil, appErrors.Storage(err, "Registration failed")
	}

	s.logger.Info("hod registered", zap.String("hod_id", hod.ID), zap.String("department", hod.Department), zap.Bool("department_created", created))
	result := &Registration{Role: models.RoleHOD, HOD: hod, DepartmentCreated: created}
	if created {
		result.Department = dept
	}
	return result, nil
}
