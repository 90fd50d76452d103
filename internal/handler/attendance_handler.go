package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dept-attendance-api/internal/middleware"
	"github.com/noah-isme/dept-attendance-api/internal/models"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
	"github.com/noah-isme/dept-attendance-api/pkg/response"
)

type attendanceCapture interface {
	Resolve(ctx context.Context, teacherID, division string) (*models.CaptureState, error)
	Mark(ctx context.Context, student models.Session, teacherID, division string, req models.MarkAttendanceRequest) (*models.AttendanceRecord, error)
	History(ctx context.Context, prn string) ([]models.AttendanceRecord, error)
}

// AttendanceHandler serves the student side of attendance links.
type AttendanceHandler struct {
	attendance attendanceCapture
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(attendance attendanceCapture) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Resolve godoc
// @Summary Open an attendance link
// @Description Reports whether the link's teacher exists and is accepting attendance.
// @Tags Attendance
// @Produce json
// @Param teacherId path string true "Teacher ID"
// @Param division path string true "Division"
// @Success 200 {object} response.Envelope
// @Router /attendance/{teacherId}/{division} [get]
func (h *AttendanceHandler) Resolve(c *gin.Context) {
	state, err := h.attendance.Resolve(c.Request.Context(), c.Param("teacherId"), c.Param("division"))
	if err != nil {
		response.Error(c, err)
		return
	}

	session := middleware.CurrentSession(c)
	response.OK(c, state, map[string]interface{}{
		"loggedInAsStudent": session != nil && session.Role == models.RoleStudent,
	})
}

// Mark godoc
// @Summary Mark attendance
// @Description Records the logged-in student at the teacher's open lecture.
// @Tags Attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param teacherId path string true "Teacher ID"
// @Param division path string true "Division"
// @Param payload body models.MarkAttendanceRequest false "Device location"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /attendance/{teacherId}/{division} [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var req models.MarkAttendanceRequest
	if !bindJSON(c, &req, true) {
		return
	}

	record, err := h.attendance.Mark(c.Request.Context(), *session, c.Param("teacherId"), c.Param("division"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, record)
}

// History godoc
// @Summary Attendance history
// @Description The logged-in student's most recent records, newest first.
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/attendance [get]
func (h *AttendanceHandler) History(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	if session.PRN == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "only students have attendance history"))
		return
	}

	records, err := h.attendance.History(c.Request.Context(), session.PRN)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, records, map[string]interface{}{"count": len(records)})
}
