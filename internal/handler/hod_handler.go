package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dept-attendance-api/internal/models"
	"github.com/noah-isme/dept-attendance-api/pkg/response"
)

type departmentAdmin interface {
	CreateTeacher(ctx context.Context, hod models.Session, req models.CreateTeacherRequest) (*models.Teacher, error)
	ListTeachers(ctx context.Context, department string) ([]models.Teacher, error)
	DeleteTeacher(ctx context.Context, department, id string) error
	ListStudents(ctx context.Context, department, search string) ([]models.Student, error)
	DeleteStudent(ctx context.Context, department, id string) error
	Overview(ctx context.Context, department string) (*models.DepartmentOverview, error)
}

type departmentCatalog interface {
	Get(ctx context.Context, name string) (*models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
	Create(ctx context.Context, name, createdBy string) (*models.Department, error)
	AddClass(ctx context.Context, department, class string) (*models.Department, error)
	AddDivision(ctx context.Context, department, division string) (*models.Department, error)
}

// HODHandler exposes department administration. Every operation is scoped
// to the department of the logged-in HOD.
type HODHandler struct {
	admin       departmentAdmin
	departments departmentCatalog
}

// NewHODHandler constructs the handler.
func NewHODHandler(admin departmentAdmin, departments departmentCatalog) *HODHandler {
	return &HODHandler{admin: admin, departments: departments}
}

// Overview godoc
// @Summary Department overview
// @Tags HOD
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /hod/overview [get]
func (h *HODHandler) Overview(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	overview, err := h.admin.Overview(c.Request.Context(), session.Department)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, overview)
}

// ListTeachers godoc
// @Summary List teachers
// @Tags HOD
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /hod/teachers [get]
func (h *HODHandler) ListTeachers(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	teachers, err := h.admin.ListTeachers(c.Request.Context(), session.Department)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teachers, map[string]interface{}{"count": len(teachers)})
}

// CreateTeacher godoc
// @Summary Add a teacher
// @Tags HOD
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.CreateTeacherRequest true "Teacher"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /hod/teachers [post]
func (h *HODHandler) CreateTeacher(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var req models.CreateTeacherRequest
	if !bindJSON(c, &req, false) {
		return
	}

	teacher, err := h.admin.CreateTeacher(c.Request.Context(), *session, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// DeleteTeacher godoc
// @Summary Remove a teacher
// @Tags HOD
// @Security BearerAuth
// @Param id path string true "Teacher ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /hod/teachers/{id} [delete]
func (h *HODHandler) DeleteTeacher(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	if err := h.admin.DeleteTeacher(c.Request.Context(), session.Department, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListStudents godoc
// @Summary List students
// @Tags HOD
// @Security BearerAuth
// @Produce json
// @Param search query string false "Name, PRN or email"
// @Success 200 {object} response.Envelope
// @Router /hod/students [get]
func (h *HODHandler) ListStudents(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	students, err := h.admin.ListStudents(c.Request.Context(), session.Department, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, students, map[string]interface{}{"count": len(students)})
}

// DeleteStudent godoc
// @Summary Remove a student
// @Tags HOD
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /hod/students/{id} [delete]
func (h *HODHandler) DeleteStudent(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	if err := h.admin.DeleteStudent(c.Request.Context(), session.Department, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Department godoc
// @Summary The HOD's department
// @Tags HOD
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /hod/department [get]
func (h *HODHandler) Department(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	dept, err := h.departments.Get(c.Request.Context(), session.Department)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dept)
}

// ListDepartments godoc
// @Summary List departments
// @Tags HOD
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /hod/departments [get]
func (h *HODHandler) ListDepartments(c *gin.Context) {
	depts, err := h.departments.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, depts)
}

// CreateDepartment godoc
// @Summary Add a department
// @Tags HOD
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.DepartmentRequest true "Department"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /hod/departments [post]
func (h *HODHandler) CreateDepartment(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var req models.DepartmentRequest
	if !bindJSON(c, &req, false) {
		return
	}

	dept, err := h.departments.Create(c.Request.Context(), req.Name, session.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dept)
}

// AddClass godoc
// @Summary Add a class to the HOD's department
// @Tags HOD
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.DepartmentEntryRequest true "Class"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /hod/departments/classes [post]
func (h *HODHandler) AddClass(c *gin.Context) {
	h.addEntry(c, h.departments.AddClass)
}

// AddDivision godoc
// @Summary Add a division to the HOD's department
// @Tags HOD
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.DepartmentEntryRequest true "Division"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /hod/departments/divisions [post]
func (h *HODHandler) AddDivision(c *gin.Context) {
	h.addEntry(c, h.departments.AddDivision)
}

func (h *HODHandler) addEntry(c *gin.Context, add func(context.Context, string, string) (*models.Department, error)) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var req models.DepartmentEntryRequest
	if !bindJSON(c, &req, false) {
		return
	}

	dept, err := add(c.Request.Context(), session.Department, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dept)
}
