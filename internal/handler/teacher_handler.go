package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dept-attendance-api/internal/models"
	"github.com/noah-isme/dept-attendance-api/internal/service"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
	"github.com/noah-isme/dept-attendance-api/pkg/response"
)

type teacherConsole interface {
	Profile(ctx context.Context, teacherID string) (*models.Teacher, error)
	Enable(ctx context.Context, teacherID string, req models.EnableAttendanceRequest) (*models.Teacher, error)
	Disable(ctx context.Context, teacherID string) (*models.Teacher, error)
	Links(ctx context.Context, teacherID, origin string) ([]models.AttendanceLink, error)
	LinkQR(ctx context.Context, teacherID, origin, division string) ([]byte, error)
	Review(ctx context.Context, teacherID string, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	Analytics(ctx context.Context, teacherID string) ([]models.DailyAttendance, error)
	StudentProgress(ctx context.Context, teacherID, prn string) (*models.StudentProgress, error)
	DeleteRecord(ctx context.Context, teacherID, id string) error
}

type attendanceExporter interface {
	Export(ctx context.Context, teacherID string, filter models.AttendanceFilter, rawFormat string) (*service.ExportFile, error)
}

// TeacherHandler exposes the teacher console.
type TeacherHandler struct {
	teachers     teacherConsole
	exports      attendanceExporter
	publicOrigin string
}

// NewTeacherHandler constructs the handler. publicOrigin prefixes attendance
// links; when empty the request's own origin is used.
func NewTeacherHandler(teachers teacherConsole, exports attendanceExporter, publicOrigin string) *TeacherHandler {
	return &TeacherHandler{teachers: teachers, exports: exports, publicOrigin: publicOrigin}
}

// Profile godoc
// @Summary Teacher profile
// @Description Current assignments and attendance state, read fresh from storage
// @Tags Teacher
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher/profile [get]
func (h *TeacherHandler) Profile(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	teacher, err := h.teachers.Profile(c.Request.Context(), session.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teacher)
}

// EnableAttendance godoc
// @Summary Open a lecture
// @Tags Teacher
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.EnableAttendanceRequest true "Lecture"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teacher/session/enable [post]
func (h *TeacherHandler) EnableAttendance(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var req models.EnableAttendanceRequest
	if !bindJSON(c, &req, true) {
		return
	}

	teacher, err := h.teachers.Enable(c.Request.Context(), session.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teacher)
}

// DisableAttendance godoc
// @Summary Close the lecture
// @Tags Teacher
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher/session/disable [post]
func (h *TeacherHandler) DisableAttendance(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	teacher, err := h.teachers.Disable(c.Request.Context(), session.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teacher)
}

// Links godoc
// @Summary Attendance links
// @Description One capture URL per assigned division
// @Tags Teacher
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher/links [get]
func (h *TeacherHandler) Links(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	links, err := h.teachers.Links(c.Request.Context(), session.ID, requestOrigin(c, h.publicOrigin))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, links)
}

// LinkQR godoc
// @Summary Attendance link QR code
// @Tags Teacher
// @Security BearerAuth
// @Produce png
// @Param division path string true "Division"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /teacher/links/{division}/qr [get]
func (h *TeacherHandler) LinkQR(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	png, err := h.teachers.LinkQR(c.Request.Context(), session.ID, requestOrigin(c, h.publicOrigin), c.Param("division"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// Review godoc
// @Summary Review attendance
// @Tags Teacher
// @Security BearerAuth
// @Produce json
// @Param search query string false "Student name or PRN"
// @Param division query string false "Division"
// @Param class query string false "Class"
// @Param date query string false "Lecture date"
// @Param lecture query string false "Lecture number"
// @Success 200 {object} response.Envelope
// @Router /teacher/attendance [get]
func (h *TeacherHandler) Review(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	records, err := h.teachers.Review(c.Request.Context(), session.ID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records, map[string]interface{}{"count": len(records)})
}

// Analytics godoc
// @Summary Daily attendance counts
// @Tags Teacher
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher/attendance/analytics [get]
func (h *TeacherHandler) Analytics(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	series, err := h.teachers.Analytics(c.Request.Context(), session.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, series)
}

// Export godoc
// @Summary Export attendance
// @Tags Teacher
// @Security BearerAuth
// @Produce octet-stream
// @Param format query string false "csv, pdf or xlsx"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /teacher/attendance/export [get]
func (h *TeacherHandler) Export(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	file, err := h.exports.Export(c.Request.Context(), session.ID, filter, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// StudentProgress godoc
// @Summary Student progress
// @Tags Teacher
// @Security BearerAuth
// @Produce json
// @Param prn path string true "Student PRN"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teacher/students/{prn}/progress [get]
func (h *TeacherHandler) StudentProgress(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	progress, err := h.teachers.StudentProgress(c.Request.Context(), session.ID, c.Param("prn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, progress)
}

// DeleteRecord godoc
// @Summary Delete an attendance record
// @Tags Teacher
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /teacher/attendance/{id} [delete]
func (h *TeacherHandler) DeleteRecord(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	if err := h.teachers.DeleteRecord(c.Request.Context(), session.ID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func bindFilter(c *gin.Context) (models.AttendanceFilter, bool) {
	var filter models.AttendanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid filter"))
		return filter, false
	}
	return filter, true
}
