package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/dept-attendance-api/internal/models"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
)

type studentLookup interface {
	FindByCredentials(ctx context.Context, name, phone string) (*models.Student, error)
}

type teacherLookup interface {
	FindByCredentials(ctx context.Context, name, phone string) (*models.Teacher, error)
}

type hodLookup interface {
	FindByCredentials(ctx context.Context, name, phone string) (*models.HOD, error)
}

type sessionIssuer interface {
	Start(ctx context.Context, session models.Session) (string, *models.Session, error)
	End(ctx context.Context, key string) error
}

type loginRecorder interface {
	RecordLogin(role, outcome string)
}

// AuthService resolves (role, name, phone) into a session.
type AuthService struct {
	students studentLookup
	teachers teacherLookup
	hods     hodLookup
	sessions sessionIssuer
	metrics  loginRecorder
	logger   *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(students studentLookup, teachers teacherLookup, hods hodLookup, sessions sessionIssuer, metrics loginRecorder, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = (*MetricsService)(nil)
	}
	return &AuthService{students: students, teachers: teachers, hods: hods, sessions: sessions, metrics: metrics, logger: logger}
}

// Login authenticates against the collection of the chosen role. The error
// never reveals which of name or phone was wrong.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if anyBlank(req.Role, name, phone) {
		return nil, appErrors.Clone(appErrors.ErrValidation, msgFillAllFields)
	}
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, appErrors.Invalid("role", msgInvalidRole)
	}

	session, err := s.lookup(ctx, role, name, phone)
	if err != nil {
		s.metrics.RecordLogin(string(role), outcomeOf(err))
		return nil, err
	}

	token, stored, err := s.sessions.Start(ctx, *session)
	if err != nil {
		s.logger.Error("failed to persist session", zap.String("role", string(role)), zap.Error(err))
		s.metrics.RecordLogin(string(role), OutcomeFailed)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, msgLoginUnavailable)
	}

	s.metrics.RecordLogin(string(role), OutcomeSuccess)
	s.logger.Info("user logged in", zap.String("role", string(role)), zap.String("user_id", stored.ID))
	return &models.LoginResponse{Token: token, Session: *stored}, nil
}

func (s *AuthService) lookup(ctx context.Context, role models.Role, name, phone string) (*models.Session, error) {
	var (
		session models.Session
		err     error
	)
	switch role {
	case models.RoleStudent:
		var student *models.Student
		if student, err = s.students.FindByCredentials(ctx, name, phone); err == nil {
			session = models.StudentSession(*student)
		}
	case models.RoleTeacher:
		var teacher *models.Teacher
		if teacher, err = s.teachers.FindByCredentials(ctx, name, phone); err == nil {
			session = models.TeacherSession(*teacher)
		}
	case models.RoleHOD:
		var hod *models.HOD
		if hod, err = s.hods.FindByCredentials(ctx, name, phone); err == nil {
			session = models.HODSession(*hod)
		}
	}
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrLoginFailed
		}
		s.logger.Error("login lookup failed", zap.String("role", string(role)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, msgLoginUnavailable)
	}
	return &session, nil
}

// Logout discards the stored session.
func (s *AuthService) Logout(ctx context.Context, session *models.Session) error {
	if session == nil {
		return appErrors.ErrSessionNotFound
	}
	if err := s.sessions.End(ctx, session.Key); err != nil {
		return err
	}
	s.logger.Info("user logged out", zap.String("role", string(session.Role)), zap.String("user_id", session.ID))
	return nil
}
