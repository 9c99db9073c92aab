package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appauth "github.com/yigit/enlistment/internal/app/auth"
	"github.com/yigit/enlistment/internal/app/models/dto"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
	"github.com/yigit/enlistment/internal/pkg/auth"
	"github.com/yigit/enlistment/internal/pkg/tokenstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticRoles map[int64]string

func (r staticRoles) GetRoleCode(_ context.Context, userID int64) (*string, error) {
	code, ok := r[userID]
	if !ok {
		return nil, nil
	}
	return &code, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService, *tokenstore.MemoryStore) {
	t.Helper()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	store := tokenstore.NewMemoryStore()
	authz := appauth.NewAuthorizationService(staticRoles{1: "ADMIN", 2: "STUDENT"},
		map[string][]string{"ADMIN": {"*"}, "STUDENT": {appauth.CapEnrollmentsWrite}}, true)
	m := NewAuthMiddleware(jwtService, store, authz)

	r := gin.New()
	r.Use(RequestID())
	protected := r.Group("/", m.JWTAuth())
	protected.GET("/me", func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	protected.POST("/courses", m.RequireCapability(appauth.CapCoursesWrite), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	r.GET("/whoami", m.OptionalAuth(), func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "authenticated": ok})
	})
	return r, jwtService, store
}

func doRequest(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestJWTAuth(t *testing.T) {
	r, jwtService, _ := newTestRouter(t)

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Authentication required", decodeError(t, w).Error)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/me", "not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeInvalidToken, decodeError(t, w).Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, _, err := jwtService.Issue(7)
		require.NoError(t, err)

		w := doRequest(r, http.MethodGet, "/me", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":7}`, w.Body.String())
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})
}

func TestJWTAuthRejectsRevokedToken(t *testing.T) {
	r, jwtService, store := newTestRouter(t)

	token, _, err := jwtService.Issue(7)
	require.NoError(t, err)
	claims, err := jwtService.Verify(token)
	require.NoError(t, err)

	require.NoError(t, store.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))

	w := doRequest(r, http.MethodGet, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireCapability(t *testing.T) {
	r, jwtService, _ := newTestRouter(t)

	admin, _, err := jwtService.Issue(1)
	require.NoError(t, err)
	student, _, err := jwtService.Issue(2)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, doRequest(r, http.MethodPost, "/courses", admin).Code)

	w := doRequest(r, http.MethodPost, "/courses", student)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, decodeError(t, w).Code)
}

func TestOptionalAuthFallsBackToAnonymous(t *testing.T) {
	r, jwtService, store := newTestRouter(t)

	valid, _, err := jwtService.Issue(2)
	require.NoError(t, err)
	revoked, _, err := jwtService.Issue(2)
	require.NoError(t, err)
	claims, err := jwtService.Verify(revoked)
	require.NoError(t, err)
	require.NoError(t, store.Revoke(context.Background(), claims.ID, time.Now().Add(time.Hour)))
	foreign, _, err := auth.NewJWTService(auth.JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "test"}).Issue(1)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"no token", "", `{"id":0,"authenticated":false}`},
		{"valid token", valid, `{"id":2,"authenticated":true}`},
		{"garbage token", "garbage", `{"id":0,"authenticated":false}`},
		{"foreign signature", foreign, `{"id":0,"authenticated":false}`},
		{"revoked token", revoked, `{"id":0,"authenticated":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/whoami", tt.token)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", apperrors.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"wrapped not found", fmt.Errorf("get course: %w", apperrors.NewResourceNotFoundError("Course not found")), http.StatusNotFound, "Course not found"},
		{"validation", apperrors.NewValidationError("course_name is required"), http.StatusBadRequest, "course_name is required"},
		{"bad request", fmt.Errorf("%w: id must be a positive integer", apperrors.ErrBadRequest), http.StatusBadRequest, "bad request: id must be a positive integer"},
		{"login", apperrors.ErrInvalidLogin, http.StatusBadRequest, "Invalid username or password"},
		{"current password", apperrors.ErrInvalidCurrentPassword, http.StatusBadRequest, "Invalid current password"},
		{"conflict", apperrors.ErrSectionFull, http.StatusConflict, "Section is full"},
		{"forbidden", apperrors.NewForbiddenError("nope"), http.StatusForbidden, "nope"},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "Authentication required"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.message, body.Error)
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestHandleAPIErrorRendersDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	err := apperrors.NewCustomError(apperrors.ErrConflict, "Course already exists").
		WithDetail("constraint", "course_course_code_key")
	HandleAPIError(c, fmt.Errorf("create course: %w", err))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Course already exists","code":"RES_004","details":{"constraint":"course_course_code_key"}}`, w.Body.String())
}

type bindTarget struct {
	CourseCode string `json:"course_code" binding:"required"`
}

func TestBindJSONReportsJSONFieldNames(t *testing.T) {
	RegisterValidation()

	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var body bindTarget
		if !BindJSON(c, &body) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "course_code is required")

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeBadRequest, decodeError(t, w).Code)
}

func TestMetricsMiddleware(t *testing.T) {
	metrics := NewMetrics()

	r := gin.New()
	r.Use(metrics.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", metrics.Handler())

	doRequest(r, http.MethodGet, "/ping", "")
	w := doRequest(r, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `enlistment_http_requests_total{method="GET",route="/ping",status="200"} 1`)
}
