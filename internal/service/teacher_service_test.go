package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/dept-attendance-api/internal/models"
	"github.com/noah-isme/dept-attendance-api/pkg/config"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
)

func newTeacherFixture() (*TeacherService, *mockTeacherRepo, *mockAttendanceRepo, *countingRecorder) {
	teachers := &mockTeacherRepo{items: map[string]*models.Teacher{
		"T123": {
			ID:                "T123",
			Name:              "Prof. Rao",
			Subject:           "DBMS",
			Department:        "Computer",
			AssignedClasses:   []string{"TE"},
			AssignedDivisions: []string{"A", "B"},
		},
	}}
	records := &mockAttendanceRepo{}
	metrics := newCountingRecorder()
	svc := NewTeacherService(teachers, records, config.AttendanceConfig{ExpectedLectures: 60, AnalyticsDays: 7}, metrics, nil)
	return svc, teachers, records, metrics
}

func TestTeacherServiceEnableRequiresLecture(t *testing.T) {
	svc, teachers, _, metrics := newTeacherFixture()

	for _, req := range []models.EnableAttendanceRequest{
		{},
		{LectureNumber: "3"},
		{LectureDate: "2024-03-01"},
		{LectureNumber: " ", LectureDate: "2024-03-01"},
	} {
		_, err := svc.Enable(context.Background(), "T123", req)
		require.Error(t, err)
		appErr := appErrors.FromError(err)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
		assert.Equal(t, "Please enter lecture number and date.", appErr.Message)
	}
	assert.Zero(t, teachers.enables)
	assert.False(t, teachers.items["T123"].AttendanceEnabled)
	assert.Empty(t, metrics.toggles)
}

func TestTeacherServiceEnableThenDisable(t *testing.T) {
	svc, teachers, _, metrics := newTeacherFixture()

	teacher, err := svc.Enable(context.Background(), "T123", models.EnableAttendanceRequest{LectureNumber: "3", LectureDate: "2024-03-01"})
	require.NoError(t, err)
	assert.True(t, teacher.AttendanceEnabled)
	assert.Equal(t, &models.Lecture{Number: "3", Date: "2024-03-01"}, teacher.CurrentLecture)

	teacher, err = svc.Disable(context.Background(), "T123")
	require.NoError(t, err)
	assert.False(t, teacher.AttendanceEnabled)
	assert.Nil(t, teacher.CurrentLecture)

	// disabling twice leaves the same state
	_, err = svc.Disable(context.Background(), "T123")
	require.NoError(t, err)
	assert.Equal(t, 2, teachers.disables)
	assert.Equal(t, []bool{true, false, false}, metrics.toggles)

	_, err = svc.Disable(context.Background(), "ghost")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestTeacherServiceEnableStorageFailure(t *testing.T) {
	svc, teachers, _, _ := newTeacherFixture()
	teachers.enableErr = errors.New("deadlock detected")

	_, err := svc.Enable(context.Background(), "T123", models.EnableAttendanceRequest{LectureNumber: "3", LectureDate: "2024-03-01"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Contains(t, appErr.Message, "deadlock detected")
}

func TestTeacherServiceLinks(t *testing.T) {
	svc, _, _, _ := newTeacherFixture()

	links, err := svc.Links(context.Background(), "T123", "https://attendance.example.edu/")
	require.NoError(t, err)
	assert.Equal(t, []models.AttendanceLink{
		{Division: "A", URL: "https://attendance.example.edu/attendance/T123/A"},
		{Division: "B", URL: "https://attendance.example.edu/attendance/T123/B"},
	}, links)

	png, err := svc.LinkQR(context.Background(), "T123", "https://attendance.example.edu", "B")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = svc.LinkQR(context.Background(), "T123", "https://attendance.example.edu", "C")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestTeacherServiceStudentProgress(t *testing.T) {
	svc, _, records, _ := newTeacherFixture()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		records.records = append(records.records, models.AttendanceRecord{
			ID:          fmt.Sprintf("r%d", i),
			TeacherID:   "T123",
			StudentName: "Asha Patil",
			StudentPRN:  "2021COMP001",
			Timestamp:   base.AddDate(0, 0, i),
		})
	}
	records.records = append(records.records, models.AttendanceRecord{ID: "x", TeacherID: "T999", StudentPRN: "2021COMP001", Timestamp: base})

	progress, err := svc.StudentProgress(context.Background(), "T123", " 2021COMP001 ")
	require.NoError(t, err)
	assert.Equal(t, 3, progress.Attended)
	assert.Equal(t, 60, progress.ExpectedLectures)
	assert.Equal(t, 5, progress.Percentage)
	assert.Equal(t, "Asha Patil", progress.StudentName)
	assert.Equal(t, "r2", progress.Records[0].ID)

	_, err = svc.StudentProgress(context.Background(), "T123", "2021COMP404")
	require.Error(t, err)
	assert.Equal(t, "No attendance records found for this student.", appErrors.FromError(err).Message)
}

func TestTeacherServiceAnalytics(t *testing.T) {
	svc, _, records, _ := newTeacherFixture()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for day := 0; day < 9; day++ {
		records.records = append(records.records, models.AttendanceRecord{TeacherID: "T123", Timestamp: base.AddDate(0, 0, day)})
	}

	series, err := svc.Analytics(context.Background(), "T123")
	require.NoError(t, err)
	require.Len(t, series, 7)
	assert.Equal(t, "2024-03-03", series[0].Date)
	assert.Equal(t, "2024-03-09", series[6].Date)
}

func TestTeacherServiceReviewAndDelete(t *testing.T) {
	svc, _, records, _ := newTeacherFixture()
	records.records = []models.AttendanceRecord{
		{ID: "r1", TeacherID: "T123", Division: "A"},
		{ID: "r2", TeacherID: "T123", Division: "B"},
		{ID: "r3", TeacherID: "T999", Division: "A"},
	}

	reviewed, err := svc.Review(context.Background(), "T123", models.AttendanceFilter{Division: "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, ids(reviewed))

	assert.ErrorIs(t, svc.DeleteRecord(context.Background(), "T123", "r3"), appErrors.ErrNotFound)
	require.NoError(t, svc.DeleteRecord(context.Background(), "T123", "r2"))
	assert.Len(t, records.records, 2)
}
