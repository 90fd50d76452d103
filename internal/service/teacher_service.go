package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/dept-attendance-api/internal/models"
	"github.com/noah-isme/dept-attendance-api/pkg/config"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
	"github.com/noah-isme/dept-attendance-api/pkg/qr"
)

type teacherRepository interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	EnableAttendance(ctx context.Context, id string, lecture models.Lecture) (bool, error)
	DisableAttendance(ctx context.Context, id string) (bool, error)
}

type teacherRecordRepository interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.AttendanceRecord, error)
	DeleteForTeacher(ctx context.Context, id, teacherID string) (bool, error)
}

type lectureRecorder interface {
	RecordLectureToggle(enabled bool)
}

// TeacherService covers the teacher console: the attendance toggle, links
// and the review of captured records.
type TeacherService struct {
	teachers teacherRepository
	records  teacherRecordRepository
	cfg      config.AttendanceConfig
	loc      *time.Location
	metrics  lectureRecorder
	logger   *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(teachers teacherRepository, records teacherRecordRepository, cfg config.AttendanceConfig, metrics lectureRecorder, logger *zap.Logger) *TeacherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = (*MetricsService)(nil)
	}
	loc, err := loadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown attendance timezone, using UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.UTC
	}
	return &TeacherService{teachers: teachers, records: records, cfg: cfg, loc: loc, metrics: metrics, logger: logger}
}

// Profile returns the teacher's current row.
func (s *TeacherService) Profile(ctx context.Context, teacherID string) (*models.Teacher, error) {
	teacher, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Storage(err, "Failed to load teacher")
	}
	return teacher, nil
}

// Enable opens a lecture for marking. Number and date are both required.
func (s *TeacherService) Enable(ctx context.Context, teacherID string, req models.EnableAttendanceRequest) (*models.Teacher, error) {
	lecture := models.Lecture{
		Number: strings.TrimSpace(req.LectureNumber),
		Date:   strings.TrimSpace(req.LectureDate),
	}
	if lecture.Number == "" || lecture.Date == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, msgLectureRequired)
	}

	updated, err := s.teachers.EnableAttendance(ctx, teacherID, lecture)
	if err != nil {
		return nil, appErrors.Storage(err, "Failed to enable attendance")
	}
	if !updated {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	s.metrics.RecordLectureToggle(true)
	s.logger.Info("attendance enabled", zap.String("teacher_id", teacherID), zap.String("lecture", lecture.Number), zap.String("date", lecture.Date))
	return s.Profile(ctx, teacherID)
}

// Disable closes marking and clears the lecture regardless of prior state.
func (s *TeacherService) Disable(ctx context.Context, teacherID string) (*models.Teacher, error) {
	updated, err := s.teachers.DisableAttendance(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Storage(err, "Failed to disable attendance")
	}
	if !updated {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	s.metrics.RecordLectureToggle(false)
	s.logger.Info("attendance disabled", zap.String("teacher_id", teacherID))
	return s.Profile(ctx, teacherID)
}

// Links builds one capture URL per assigned division.
func (s *TeacherService) Links(ctx context.Context, teacherID, origin string) ([]models.AttendanceLink, error) {
	teacher, err := s.Profile(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	links := make([]models.AttendanceLink, 0, len(teacher.AssignedDivisions))
	for _, division := range teacher.AssignedDivisions {
		links = append(links, models.AttendanceLink{Division: division, URL: AttendanceURL(origin, teacher.ID, division)})
	}
	return links, nil
}

// LinkQR renders the capture URL of an assigned division as a PNG QR code.
func (s *TeacherService) LinkQR(ctx context.Context, teacherID, origin, division string) ([]byte, error) {
	teacher, err := s.Profile(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	assigned := false
	for _, d := range teacher.AssignedDivisions {
		if d == division {
			assigned = true
			break
		}
	}
	if !assigned {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "division is not assigned to this teacher")
	}

	png, err := qr.PNG(AttendanceURL(origin, teacher.ID, division), qr.DefaultSize)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to generate QR code")
	}
	return png, nil
}

// AttendanceURL is the capture link students open. Segments are not escaped.
func AttendanceURL(origin, teacherID, division string) string {
	return strings.TrimRight(origin, "/") + "/attendance/" + teacherID + "/" + division
}

// Review returns the teacher's records narrowed by the filter, newest first.
func (s *TeacherService) Review(ctx context.Context, teacherID string, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	records, err := s.records.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Storage(err, "Failed to load attendance")
	}
	return FilterRecords(records, filter), nil
}

// Analytics returns the per-day record counts of the most recent days.
func (s *TeacherService) Analytics(ctx context.Context, teacherID string) ([]models.DailyAttendance, error) {
	records, err := s.records.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Storage(err, "Failed to load attendance")
	}
	return DailyCounts(records, s.loc, s.cfg.AnalyticsDays), nil
}

// StudentProgress reports one student's attendance among the teacher's records.
func (s *TeacherService) StudentProgress(ctx context.Context, teacherID, prn string) (*models.StudentProgress, error) {
	prn = strings.TrimSpace(prn)
	records, err := s.records.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Storage(err, "Failed to load attendance")
	}

	matched := make([]models.AttendanceRecord, 0)
	for _, r := range records {
		if r.StudentPRN == prn {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, msgNoStudentRecords)
	}
	newestFirst(matched)

	return &models.StudentProgress{
		PRN:              prn,
		StudentName:      matched[0].StudentName,
		Attended:         len(matched),
		ExpectedLectures: s.cfg.ExpectedLectures,
		Percentage:       AttendancePercentage(len(matched), s.cfg.ExpectedLectures),
		Records:          matched,
	}, nil
}

// DeleteRecord removes one of the teacher's records.
func (s *TeacherService) DeleteRecord(ctx context.Context, teacherID, id string) error {
	deleted, err := s.records.DeleteForTeacher(ctx, id, teacherID)
	if err != nil {
		return appErrors.Storage(err, "Failed to delete attendance")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
	}
	s.logger.Info("attendance deleted", zap.String("record_id", id), zap.String("teacher_id", teacherID))
	return nil
}
