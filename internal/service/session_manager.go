package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/noah-isme/dept-attendance-api/internal/models"
	"github.com/noah-isme/dept-attendance-api/pkg/config"
	appErrors "github.com/noah-isme/dept-attendance-api/pkg/errors"
)

type sessionStore interface {
	Save(ctx context.Context, session models.Session) error
	Get(ctx context.Context, key string) (*models.Session, error)
	Delete(ctx context.Context, key string) error
}

// SessionManager is the only writer of sessions. It persists the session
// document and hands out a signed token naming it.
type SessionManager struct {
	store  sessionStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(store sessionStore, cfg config.SessionConfig) *SessionManager {
	return &SessionManager{store: store, secret: []byte(cfg.Secret), ttl: cfg.TTL, now: time.Now}
}

// Start persists a new session and returns its bearer token.
func (m *SessionManager) Start(ctx context.Context, session models.Session) (string, *models.Session, error) {
	session.Key = uuid.NewString()
	if err := m.store.Save(ctx, session); err != nil {
		return "", nil, err
	}

	issuedAt := m.now().UTC()
	claims := &models.SessionClaims{
		SessionID: session.Key,
		Role:      session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  session.ID,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(m.ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		_ = m.store.Delete(ctx, session.Key)
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, &session, nil
}

// Resolve verifies the token and loads the session it names. Any failure
// to do so means the caller is not logged in.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*models.Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &models.SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSessionNotFound.Code, appErrors.ErrSessionNotFound.Status, appErrors.ErrSessionNotFound.Message)
	}
	claims, ok := parsed.Claims.(*models.SessionClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return nil, appErrors.ErrSessionNotFound
	}

	session, err := m.store.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, appErrors.ErrSessionNotFound) {
			return nil, appErrors.ErrSessionNotFound
		}
		return nil, appErrors.Storage(err, "failed to load session")
	}
	if session.Role != claims.Role || session.ID != claims.Subject {
		return nil, appErrors.ErrSessionNotFound
	}
	return session, nil
}

// End removes the stored session, invalidating every token that names it.
func (m *SessionManager) End(ctx context.Context, key string) error {
	if key == "" {
		return appErrors.ErrSessionNotFound
	}
	if err := m.store.Delete(ctx, key); err != nil {
		return appErrors.Storage(err, "failed to end session")
	}
	return nil
}
