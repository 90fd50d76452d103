package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/dept-attendance-api/internal/models"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
)

var computerHOD = models.Session{ID: "h1", Role: models.RoleHOD, Department: "Computer"}

func newHODFixture() (*HODService, *mockTeacherRepo, *mockStudentRepo, *mockDepartmentRepo) {
	teachers := &mockTeacherRepo{items: map[string]*models.Teacher{
		"T1": {ID: "T1", Name: "Prof. Rao", Department: "Computer"},
		"T2": {ID: "T2", Name: "Prof. Iyer", Department: "Civil"},
	}}
	students := &mockStudentRepo{items: map[string]*models.Student{
		"s1": {ID: "s1", Name: "Asha Patil", PRN: "2021COMP001", Email: "asha@example.edu", Department: "Computer"},
		"s2": {ID: "s2", Name: "Ravi Kumar", PRN: "2021COMP002", Email: "ravi@example.edu", Department: "Computer"},
		"s3": {ID: "s3", Name: "Meera", PRN: "2021CIV001", Email: "meera@example.edu", Department: "Civil"},
	}}
	depts := &mockDepartmentRepo{items: map[string]*models.Department{
		"Computer": {Name: "Computer", Classes: []string{"SE", "TE", "BE"}, Divisions: []string{"A", "B"}},
	}}
	return NewHODService(teachers, students, depts, nil, nil), teachers, students, depts
}

func TestHODServiceCreateTeacher(t *testing.T) {
	svc, teachers, _, _ := newHODFixture()

	teacher, err := svc.CreateTeacher(context.Background(), computerHOD, models.CreateTeacherRequest{
		Name:              " Prof. Shah ",
		Phone:             "9000000003",
		Subject:           "Networks",
		AssignedClasses:   []string{"TE", "TE", ""},
		AssignedDivisions: []string{"A"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Prof. Shah", teacher.Name)
	assert.Equal(t, "Computer", teacher.Department)
	assert.Equal(t, "h1", teacher.AddedBy)
	assert.False(t, teacher.AttendanceEnabled)
	assert.Nil(t, teacher.CurrentLecture)
	assert.Equal(t, []string{"TE"}, []string(teacher.AssignedClasses))
	assert.Len(t, teachers.created, 1)
}

func TestHODServiceCreateTeacherValidation(t *testing.T) {
	svc, teachers, _, _ := newHODFixture()

	_, err := svc.CreateTeacher(context.Background(), computerHOD, models.CreateTeacherRequest{Name: "Prof. Shah", Phone: "9000000003"})
	require.Error(t, err)
	assert.Equal(t, "Please fill in all required fields.", appErrors.FromError(err).Message)

	_, err = svc.CreateTeacher(context.Background(), computerHOD, models.CreateTeacherRequest{
		Name: "Prof. Shah", Phone: "9000000003", Subject: "Networks", AssignedClasses: []string{"TE"},
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Please assign at least one class and one division.", appErr.Message)
	assert.Empty(t, teachers.created)
}

func TestHODServiceListStudentsSearch(t *testing.T) {
	svc, _, _, _ := newHODFixture()

	all, err := svc.ListStudents(context.Background(), "Computer", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byPRN, err := svc.ListStudents(context.Background(), "Computer", "comp002")
	require.NoError(t, err)
	require.Len(t, byPRN, 1)
	assert.Equal(t, "s2", byPRN[0].ID)

	byEmail, err := svc.ListStudents(context.Background(), "Computer", "ASHA@")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "s1", byEmail[0].ID)

	none, err := svc.ListStudents(context.Background(), "Computer", "meera")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestHODServiceDeletesAreDepartmentScoped(t *testing.T) {
	svc, teachers, students, _ := newHODFixture()

	err := svc.DeleteTeacher(context.Background(), "Computer", "T2")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Contains(t, teachers.items, "T2")

	require.NoError(t, svc.DeleteTeacher(context.Background(), "Computer", "T1"))
	assert.NotContains(t, teachers.items, "T1")

	assert.ErrorIs(t, svc.DeleteStudent(context.Background(), "Computer", "s3"), appErrors.ErrNotFound)
	require.NoError(t, svc.DeleteStudent(context.Background(), "Computer", "s1"))
	assert.NotContains(t, students.items, "s1")
}

func TestHODServiceOverview(t *testing.T) {
	svc, _, _, _ := newHODFixture()

	overview, err := svc.Overview(context.Background(), "Computer")
	require.NoError(t, err)
	assert.Equal(t, &models.DepartmentOverview{Department: "Computer", Teachers: 1, Students: 2, Classes: 3, Divisions: 2}, overview)

	empty, err := svc.Overview(context.Background(), "Mechanical")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Classes)
}
