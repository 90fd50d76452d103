package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/dept-attendance-api/internal/handler"
	"github.com/noah-isme/dept-attendance-api/internal/middleware"
	"github.com/noah-isme/dept-attendance-api/internal/models"
	"github.com/noah-isme/dept-attendance-api/pkg/config"
	"github.com/noah-isme/dept-attendance-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/dept-attendance-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/dept-attendance-api/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler mounted by Setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Attendance *handler.AttendanceHandler
	Teacher    *handler.TeacherHandler
	HOD        *handler.HODHandler
	Health     *handler.HealthHandler
}

// Setup builds the gin engine with the global middleware and all routes.
func Setup(cfg *config.Config, h Handlers, sessions middleware.SessionResolver, metrics middleware.HTTPObserver, log *zap.Logger) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics, "/metrics", "/health", "/ready"))

	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	r.GET("/metrics", h.Health.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/roles", h.Auth.Roles)

	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/logout", middleware.Session(sessions), h.Auth.Logout)
		auth.GET("/me", middleware.Session(sessions), h.Auth.Me)
	}

	capture := api.Group("/attendance/:teacherId/:division")
	{
		capture.GET("", middleware.OptionalSession(sessions), h.Attendance.Resolve)
		capture.POST("", middleware.Session(sessions), middleware.RequireRoles(models.RoleStudent), h.Attendance.Mark)
	}

	student := api.Group("/student", middleware.Session(sessions), middleware.RequireRoles(models.RoleStudent))
	{
		student.GET("/attendance", h.Attendance.History)
	}

	teacher := api.Group("/teacher", middleware.Session(sessions), middleware.RequireRoles(models.RoleTeacher))
	{
		teacher.GET("/profile", h.Teacher.Profile)
		teacher.POST("/session/enable", h.Teacher.EnableAttendance)
		teacher.POST("/session/disable", h.Teacher.DisableAttendance)
		teacher.GET("/links", h.Teacher.Links)
		teacher.GET("/links/:division/qr", h.Teacher.LinkQR)
		teacher.GET("/attendance", h.Teacher.Review)
		teacher.GET("/attendance/analytics", h.Teacher.Analytics)
		teacher.GET("/attendance/export", h.Teacher.Export)
		teacher.DELETE("/attendance/:id", h.Teacher.DeleteRecord)
		teacher.GET("/students/:prn/progress", h.Teacher.StudentProgress)
	}

	hod := api.Group("/hod", middleware.Session(sessions), middleware.RequireRoles(models.RoleHOD))
	{
		hod.GET("/overview", h.HOD.Overview)
		hod.GET("/teachers", h.HOD.ListTeachers)
		hod.POST("/teachers", h.HOD.CreateTeacher)
		hod.DELETE("/teachers/:id", h.HOD.DeleteTeacher)
		hod.GET("/students", h.HOD.ListStudents)
		hod.DELETE("/students/:id", h.HOD.DeleteStudent)
		hod.GET("/department", h.HOD.Department)
		hod.GET("/departments", h.HOD.ListDepartments)
		hod.POST("/departments", h.HOD.CreateDepartment)
		hod.POST("/departments/classes", h.HOD.AddClass)
		hod.POST("/departments/divisions", h.HOD.AddDivision)
	}

	return r
}
