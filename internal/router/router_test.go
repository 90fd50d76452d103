package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/dept-attendance-api/internal/handler"
	"github.com/noah-isme/dept-attendance-api/internal/models"
	"github.com/noah-isme/dept-attendance-api/internal/service"
	"github.com/noah-isme/dept-attendance-api/pkg/config"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
)

type tokenResolver map[string]*models.Session

func (r tokenResolver) Resolve(_ context.Context, token string) (*models.Session, error) {
	if s, ok := r[token]; ok {
		return s, nil
	}
	return nil, appErrors.ErrSessionNotFound
}

type teacherTable map[string]*models.Teacher

func (t teacherTable) FindByID(_ context.Context, id string) (*models.Teacher, error) {
	if teacher, ok := t[id]; ok {
		cp := *teacher
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type recordLog struct {
	records []models.AttendanceRecord
}

func (l *recordLog) Create(_ context.Context, record *models.AttendanceRecord) error {
	record.ID = "rec-1"
	l.records = append(l.records, *record)
	return nil
}

func (l *recordLog) ListByPRN(_ context.Context, prn string) ([]models.AttendanceRecord, error) {
	out := []models.AttendanceRecord{}
	for _, r := range l.records {
		if r.StudentPRN == prn {
			out = append(out, r)
		}
	}
	return out, nil
}

func (l *recordLog) ExistsForLecture(context.Context, string, string, string, string) (bool, error) {
	return false, nil
}

func newTestEngine(t *testing.T) (http.Handler, *recordLog) {
	t.Helper()
	teachers := teacherTable{
		"T123": {
			ID:                "T123",
			Name:              "Prof. Rao",
			Subject:           "DBMS",
			Department:        "Computer",
			AttendanceEnabled: true,
			CurrentLecture:    &models.Lecture{Number: "5", Date: "2024-01-10"},
		},
	}
	records := &recordLog{}
	attendance := service.NewAttendanceService(teachers, records, config.AttendanceConfig{HistoryLimit: 10}, nil, zap.NewNop())

	sessions := tokenResolver{
		"student-token": {ID: "s1", Role: models.RoleStudent, Name: "Asha Patil", PRN: "2021COMP001", Department: "Computer", Class: "TE", Division: "B"},
		"teacher-token": {ID: "T123", Role: models.RoleTeacher, Name: "Prof. Rao", Department: "Computer"},
	}

	cfg := &config.Config{Env: "test", APIPrefix: "/api/v1"}
	engine := Setup(cfg, Handlers{
		Auth:       handler.NewAuthHandler(nil, nil),
		Attendance: handler.NewAttendanceHandler(attendance),
		Teacher:    handler.NewTeacherHandler(nil, nil, ""),
		HOD:        handler.NewHODHandler(nil, nil),
		Health:     handler.NewHealthHandler(nil, nil),
	}, sessions, service.NewMetricsService(), zap.NewNop())
	return engine, records
}

func serve(engine http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(""))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestStudentMarksThroughLink(t *testing.T) {
	engine, records := newTestEngine(t)

	rec := serve(engine, http.MethodPost, "/api/v1/attendance/T123/A", "student-token")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	require.Len(t, records.records, 1)
	record := records.records[0]
	assert.Equal(t, "2021COMP001", record.StudentPRN)
	assert.Equal(t, "5", record.LectureNumber)
	assert.Equal(t, "2024-01-10", record.LectureDate)
	assert.Equal(t, "A", record.Division)
	assert.Equal(t, "T123", record.TeacherID)

	rec = serve(engine, http.MethodGet, "/api/v1/student/attendance", "student-token")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []models.AttendanceRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
}

func TestCaptureLinkAccess(t *testing.T) {
	engine, records := newTestEngine(t)

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/attendance/T123/A", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodPost, "/api/v1/attendance/T123/A", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodPost, "/api/v1/attendance/T123/A", "teacher-token").Code)
	assert.Empty(t, records.records)
}

func TestRoleGroupsAreGuarded(t *testing.T) {
	engine, _ := newTestEngine(t)

	assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodGet, "/api/v1/hod/overview", "student-token").Code)
	assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodGet, "/api/v1/teacher/profile", "student-token").Code)
	assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodGet, "/api/v1/student/attendance", "teacher-token").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/auth/me", "stale").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/roles", "").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health", "").Code)
}
