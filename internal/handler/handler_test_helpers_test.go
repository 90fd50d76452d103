package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/dept-attendance-api/internal/middleware"
	"github.com/noah-isme/dept-attendance-api/internal/models"
)

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *envelopeError         `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

// newContext builds a test context carrying an optional JSON body and session.
func newContext(method, target string, body interface{}, session *models.Session) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var reader *bytes.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewReader([]byte(b))
		default:
			payload, _ := json.Marshal(b)
			reader = bytes.NewReader(payload)
		}
		c.Request = httptest.NewRequest(method, target, reader)
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}
	if session != nil {
		c.Set(middleware.ContextSessionKey, session)
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

var (
	studentSession = &models.Session{ID: "s1", Role: models.RoleStudent, Name: "Asha Patil", PRN: "2021COMP001", Class: "TE", Division: "A", Department: "Computer", Key: "k1"}
	teacherSession = &models.Session{ID: "T123", Role: models.RoleTeacher, Name: "Prof. Rao", Department: "Computer", Key: "k2"}
	hodSession     = &models.Session{ID: "h1", Role: models.RoleHOD, Name: "Dr. Mehta", Department: "Computer", Key: "k3"}
)

