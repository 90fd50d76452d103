package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/dept-attendance-api/internal/models"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
)

type departmentRepository interface {
	FindByName(ctx context.Context, name string) (*models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
	ExistsByNameFold(ctx context.Context, name string) (bool, error)
	CreateIfMissing(ctx context.Context, dept *models.Department) (bool, error)
	AddClass(ctx context.Context, department, class string) (bool, error)
	AddDivision(ctx context.Context, department, division string) (bool, error)
}

// DepartmentService manages department class and division lists.
type DepartmentService struct {
	repo   departmentRepository
	logger *zap.Logger
}

// NewDepartmentService constructs a DepartmentService.
func NewDepartmentService(repo departmentRepository, logger *zap.Logger) *DepartmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{repo: repo, logger: logger}
}

// Get returns a department by name.
func (s *DepartmentService) Get(ctx context.Context, name string) (*models.Department, error) {
	dept, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return nil, appErrors.Storage(err, "Failed to load department")
	}
	return dept, nil
}

// List returns all departments.
func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	depts, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Storage(err, "Failed to load departments")
	}
	return depts, nil
}

// Create adds a department with the default classes and divisions. Names
// are compared case-insensitively.
func (s *DepartmentService) Create(ctx context.Context, name, createdBy string) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Invalid("name", "Please enter a department name.")
	}

	exists, err := s.repo.ExistsByNameFold(ctx, name)
	if err != nil {
		return nil, appErrors.Storage(err, "Failed to add department")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, msgDuplicateDepartment)
	}

	dept := &models.Department{
		Name:      name,
		Classes:   append([]string(nil), models.DefaultClasses...),
		Divisions: append([]string(nil), models.DefaultDivisions...),
		CreatedBy: createdBy,
	}
	created, err := s.repo.CreateIfMissing(ctx, dept)
	if err != nil {
		return nil, storageError(err, "Failed to add department")
	}
	if !created {
		return nil, appErrors.Clone(appErrors.ErrConflict, msgDuplicateDepartment)
	}

	s.logger.Info("department created", zap.String("department", dept.Name), zap.String("created_by", createdBy))
	return dept, nil
}

// AddClass appends a class to the department's list.
func (s *DepartmentService) AddClass(ctx context.Context, department, class string) (*models.Department, error) {
	return s.addEntry(ctx, department, class, "class", s.repo.AddClass, msgDuplicateClass)
}

// AddDivision appends a division to the department's list.
func (s *DepartmentService) AddDivision(ctx context.Context, department, division string) (*models.Department, error) {
	return s.addEntry(ctx, department, division, "division", s.repo.AddDivision, msgDuplicateDivision)
}

func (s *DepartmentService) addEntry(
	ctx context.Context,
	department, value, kind string,
	add func(context.Context, string, string) (bool, error),
	duplicate string,
) (*models.Department, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, appErrors.Invalid("value", "Please enter a "+kind+".")
	}
	if strings.TrimSpace(department) == "" {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "no department assigned")
	}

	added, err := add(ctx, department, value)
	if err != nil {
		return nil, appErrors.Storage(err, "Failed to add "+kind)
	}
	if !added {
		return nil, appErrors.Clone(appErrors.ErrConflict, duplicate)
	}

	s.logger.Info("department entry added", zap.String("department", department), zap.String("kind", kind), zap.String("value", value))
	return s.Get(ctx, department)
}
