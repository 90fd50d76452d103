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

func TestDepartmentServiceAddClassKeepsOrder(t *testing.T) {
	repo := &mockDepartmentRepo{items: map[string]*models.Department{"Computer": {Name: "Computer"}}}
	svc := NewDepartmentService(repo, nil)

	for _, class := range []string{"FE", "SE", " TE "} {
		_, err := svc.AddClass(context.Background(), "Computer", class)
		require.NoError(t, err)
	}
	dept, err := svc.Get(context.Background(), "Computer")
	require.NoError(t, err)
	assert.Equal(t, []string{"FE", "SE", "TE"}, []string(dept.Classes))

	_, err = svc.AddClass(context.Background(), "Computer", "SE")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, "This class already exists!", appErr.Message)
}

func TestDepartmentServiceAddDivisionCreatesDepartment(t *testing.T) {
	repo := &mockDepartmentRepo{}
	svc := NewDepartmentService(repo, nil)

	dept, err := svc.AddDivision(context.Background(), "Civil", "D")
	require.NoError(t, err)
	assert.Equal(t, []string{"D"}, []string(dept.Divisions))

	_, err = svc.AddDivision(context.Background(), "Civil", "D")
	assert.Equal(t, "This division already exists!", appErrors.FromError(err).Message)

	_, err = svc.AddDivision(context.Background(), "Civil", "  ")
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestDepartmentServiceCreate(t *testing.T) {
	repo := &mockDepartmentRepo{items: map[string]*models.Department{"Computer": {Name: "Computer"}}}
	svc := NewDepartmentService(repo, nil)

	dept, err := svc.Create(context.Background(), " Robotics ", "h1")
	require.NoError(t, err)
	assert.Equal(t, "Robotics", dept.Name)
	assert.Equal(t, []string{"SE", "TE", "BE"}, []string(dept.Classes))
	assert.Equal(t, "h1", dept.CreatedBy)

	_, err = svc.Create(context.Background(), "computer", "h1")
	require.Error(t, err)
	assert.Equal(t, "This department already exists!", appErrors.FromError(err).Message)
}

func TestDepartmentServiceGetMissing(t *testing.T) {
	svc := NewDepartmentService(&mockDepartmentRepo{}, nil)
	_, err := svc.Get(context.Background(), "Nowhere")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
