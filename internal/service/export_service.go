package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/dept-attendance-api/internal/models"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
	"github.com/noah-isme/dept-attendance-api/pkg/export"
)

type attendanceReviewer interface {
	Profile(ctx context.Context, teacherID string) (*models.Teacher, error)
	Review(ctx context.Context, teacherID string, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
}

// ExportFile is a rendered document ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

var attendanceExportHeaders = []string{"Student", "PRN", "Department", "Class", "Division", "Subject", "Lecture", "Lecture Date", "Marked At"}

// ExportService renders a teacher's filtered records as a downloadable file.
type ExportService struct {
	reviewer attendanceReviewer
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewExportService constructs an ExportService. Timestamps are printed in
// the named timezone.
func NewExportService(reviewer attendanceReviewer, timezone string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc, err := loadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &ExportService{reviewer: reviewer, loc: loc, now: time.Now, logger: logger}
}

// Export renders the records matching filter in the requested format.
func (s *ExportService) Export(ctx context.Context, teacherID string, filter models.AttendanceFilter, rawFormat string) (*ExportFile, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.Invalid("format", "Unsupported export format. Use csv, pdf or xlsx.")
	}
	renderer, err := export.RendererFor(format)
	if err != nil {
		return nil, appErrors.Invalid("format", "Unsupported export format. Use csv, pdf or xlsx.")
	}

	teacher, err := s.reviewer.Profile(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	records, err := s.reviewer.Review(ctx, teacherID, filter)
	if err != nil {
		return nil, err
	}

	data := s.dataset(teacher, records)
	payload, err := renderer.Render(data)
	if err != nil {
		s.logger.Error("failed to render attendance export", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to export attendance")
	}

	filename := fmt.Sprintf("attendance_%s_%s.%s", teacher.Subject, s.now().In(s.loc).Format("20060102"), renderer.Extension())
	s.logger.Info("attendance exported", zap.String("teacher_id", teacherID), zap.String("format", string(format)), zap.Int("rows", len(records)))
	return &ExportFile{Filename: sanitizeFilename(filename), ContentType: renderer.ContentType(), Data: payload}, nil
}

func (s *ExportService) dataset(teacher *models.Teacher, records []models.AttendanceRecord) export.Dataset {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.StudentName,
			r.StudentPRN,
			r.Department,
			r.Class,
			r.Division,
			r.Subject,
			r.LectureNumber,
			r.LectureDate,
			r.Timestamp.In(s.loc).Format("2006-01-02 15:04"),
		})
	}
	return export.Dataset{
		Title:   fmt.Sprintf("Attendance - %s (%s)", teacher.Name, teacher.Subject),
		Headers: attendanceExportHeaders,
		Rows:    rows,
	}
}

func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
