package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/dept-attendance-api/internal/models"
	"github.com/noah-isme/dept-attendance-api/pkg/config"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
)

const fallbackLectureNumber = "N/A"

type teacherFinder interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

type attendanceStore interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	ListByPRN(ctx context.Context, prn string) ([]models.AttendanceRecord, error)
	ExistsForLecture(ctx context.Context, teacherID, prn, lectureNumber, lectureDate string) (bool, error)
}

type markRecorder interface {
	RecordMark(outcome string)
}

// AttendanceService handles the student side: opening a link, marking and history.
type AttendanceService struct {
	teachers teacherFinder
	records  attendanceStore
	cfg      config.AttendanceConfig
	loc      *time.Location
	now      func() time.Time
	metrics  markRecorder
	logger   *zap.Logger
}

// NewAttendanceService constructs an AttendanceService. An unknown timezone
// falls back to UTC.
func NewAttendanceService(teachers teacherFinder, records attendanceStore, cfg config.AttendanceConfig, metrics markRecorder, logger *zap.Logger) *AttendanceService {
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
	return &AttendanceService{teachers: teachers, records: records, cfg: cfg, loc: loc, now: time.Now, metrics: metrics, logger: logger}
}

// Resolve reports what a student sees when opening an attendance link.
func (s *AttendanceService) Resolve(ctx context.Context, teacherID, division string) (*models.CaptureState, error) {
	teacherID = strings.TrimSpace(teacherID)
	if teacherID == "" {
		return nil, appErrors.Invalid("teacherId", msgMissingLink)
	}
	state := &models.CaptureState{TeacherID: teacherID, Division: division}

	teacher, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		if isNotFound(err) {
			state.Status = models.CaptureNotFound
			state.Message = msgTeacherNotFound
			return state, nil
		}
		return nil, appErrors.Storage(err, "Failed to load teacher details")
	}

	state.TeacherName = teacher.Name
	state.Subject = teacher.Subject
	state.Department = teacher.Department
	switch {
	case !teacher.AttendanceEnabled:
		state.Status = models.CaptureDisabled
		state.Message = appErrors.ErrAttendanceDisabled.Message
	case teacher.CurrentLecture == nil:
		state.Status = models.CaptureNoLecture
		state.Message = appErrors.ErrNoActiveLecture.Message
	default:
		state.Status = models.CaptureReady
		state.Lecture = teacher.CurrentLecture
	}
	return state, nil
}

// Mark records the student's presence at the teacher's open lecture. Nothing
// is written unless the teacher exists and has attendance enabled.
func (s *AttendanceService) Mark(ctx context.Context, student models.Session, teacherID, division string, req models.MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	record, err := s.mark(ctx, student, teacherID, division, req)
	s.metrics.RecordMark(outcomeOf(err))
	return record, err
}

func (s *AttendanceService) mark(ctx context.Context, student models.Session, teacherID, division string, req models.MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	if student.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can mark attendance")
	}
	teacherID = strings.TrimSpace(teacherID)
	if teacherID == "" {
		return nil, appErrors.Invalid("teacherId", msgMissingLink)
	}

	teacher, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, msgTeacherNotFound)
		}
		return nil, appErrors.Storage(err, "Failed to mark attendance")
	}
	if !teacher.AttendanceEnabled {
		return nil, appErrors.ErrAttendanceDisabled
	}

	now := s.now()
	record := &models.AttendanceRecord{
		StudentID:     firstNonEmpty(student.ID, student.PRN),
		StudentName:   student.Name,
		StudentPRN:    student.PRN,
		Department:    firstNonEmpty(student.Department, teacher.Department),
		Division:      firstNonEmpty(strings.TrimSpace(division), student.Division),
		Class:         student.Class,
		Timestamp:     now.UTC(),
		Location:      req.Location,
		TeacherID:     teacherID,
		TeacherName:   teacher.Name,
		Subject:       teacher.Subject,
		LectureNumber: fallbackLectureNumber,
		LectureDate:   now.In(s.loc).Format(analyticsDateLayout),
	}
	if lecture := teacher.CurrentLecture; lecture != nil {
		record.LectureNumber = firstNonEmpty(lecture.Number, fallbackLectureNumber)
		record.LectureDate = firstNonEmpty(lecture.Date, record.LectureDate)
	}

	if s.cfg.RejectDuplicates {
		exists, err := s.records.ExistsForLecture(ctx, teacherID, record.StudentPRN, record.LectureNumber, record.LectureDate)
		if err != nil {
			return nil, appErrors.Storage(err, "Failed to mark attendance")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, msgAlreadyMarked)
		}
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, appErrors.Storage(err, "Failed to mark attendance")
	}

	s.logger.Info("attendance marked",
		zap.String("record_id", record.ID),
		zap.String("teacher_id", teacherID),
		zap.String("student_prn", record.StudentPRN),
		zap.String("lecture", record.LectureNumber),
	)
	return record, nil
}

// History returns the student's most recent records, newest first.
func (s *AttendanceService) History(ctx context.Context, prn string) ([]models.AttendanceRecord, error) {
	if strings.TrimSpace(prn) == "" {
		return []models.AttendanceRecord{}, nil
	}
	records, err := s.records.ListByPRN(ctx, prn)
	if err != nil {
		return nil, appErrors.Storage(err, "Failed to load attendance history")
	}
	newestFirst(records)
	if limit := s.cfg.HistoryLimit; limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
