package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	_ "github.com/noah-isme/dept-attendance-api/api/swagger"
	"github.com/noah-isme/dept-attendance-api/internal/handler"
	"github.com/noah-isme/dept-attendance-api/internal/repository"
	"github.com/noah-isme/dept-attendance-api/internal/router"
	"github.com/noah-isme/dept-attendance-api/internal/service"
	"github.com/noah-isme/dept-attendance-api/pkg/cache"
	"github.com/noah-isme/dept-attendance-api/pkg/config"
	"github.com/noah-isme/dept-attendance-api/pkg/database"
	"github.com/noah-isme/dept-attendance-api/pkg/logger"
)

// @title Department Attendance API
// @version 1.0.0
// @description Role-based attendance capture for students, teachers and HODs.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db.DB, logr); err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	rdb, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	students := repository.NewStudentRepository(db)
	teachers := repository.NewTeacherRepository(db)
	hods := repository.NewHODRepository(db)
	departments := repository.NewDepartmentRepository(db)
	records := repository.NewAttendanceRepository(db)
	sessionStore := repository.NewSessionRepository(rdb, cfg.Session.KeyPrefix, cfg.Session.TTL)

	metrics := service.NewMetricsService()
	validate := service.NewValidator()
	sessions := service.NewSessionManager(sessionStore, cfg.Session)

	authSvc := service.NewAuthService(students, teachers, hods, sessions, metrics, logr)
	registrationSvc := service.NewRegistrationService(students, hods, departments, validate, metrics, logr)
	departmentSvc := service.NewDepartmentService(departments, logr)
	hodSvc := service.NewHODService(teachers, students, departments, validate, logr)
	attendanceSvc := service.NewAttendanceService(teachers, records, cfg.Attendance, metrics, logr)
	teacherSvc := service.NewTeacherService(teachers, records, cfg.Attendance, metrics, logr)
	exportSvc := service.NewExportService(teacherSvc, cfg.Attendance.Timezone, logr)

	engine := router.Setup(cfg, router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc, registrationSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc),
		Teacher:    handler.NewTeacherHandler(teacherSvc, exportSvc, cfg.PublicOrigin),
		HOD:        handler.NewHODHandler(hodSvc, departmentSvc),
		Health: handler.NewHealthHandler(metrics.Handler(), map[string]handler.ReadinessCheck{
			"postgres": db.PingContext,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
	}, sessions, metrics, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
