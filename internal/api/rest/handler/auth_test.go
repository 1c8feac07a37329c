package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/okonst/portfolio-server/internal/mocks"
	"github.com/okonst/portfolio-server/internal/model"
	"github.com/okonst/portfolio-server/internal/testutil"
)

// stubAccountService covers the AccountService interface with canned results.
type stubAccountService struct {
	registerMsg string
	registerErr error

	confirmErr error

	loginPair  model.TokenPair
	loginRoles []string
	loginErr   error

	forgotMsg string
	forgotErr error

	resetErr          error
	changePasswordErr error
	deleteErr         error

	deleted bool
}

func (s *stubAccountService) Register(context.Context, string, string, string, string) (string, error) {
	return s.registerMsg, s.registerErr
}

func (s *stubAccountService) ConfirmEmail(context.Context, uuid.UUID, string) error {
	return s.confirmErr
}

func (s *stubAccountService) Login(context.Context, string, string) (model.TokenPair, []string, error) {
	return s.loginPair, s.loginRoles, s.loginErr
}

func (s *stubAccountService) ForgotPassword(context.Context, string) (string, error) {
	return s.forgotMsg, s.forgotErr
}

func (s *stubAccountService) ResetPassword(context.Context, string, string, string) error {
	return s.resetErr
}

func (s *stubAccountService) ChangePassword(context.Context, string, string) error {
	return s.changePasswordErr
}

func (s *stubAccountService) DeleteAccount(context.Context) error {
	s.deleted = true
	return s.deleteErr
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func doJSON(t *testing.T, e *echo.Echo, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h(c))
	return rec
}

func TestAuth_Register(t *testing.T) {
	e := newEcho()

	t.Run("success returns the instructional message", func(t *testing.T) {
		accounts := &stubAccountService{registerMsg: "check your inbox"}
		h := NewAuth(accounts, mocks.NewSessionManager(t), testutil.MakeNoopLogger())

		rec := doJSON(t, e, h.register, http.MethodPost, "/api/v1/auth/register",
			`{"email":"ada@example.com","password":"long enough","first_name":"Ada"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "check your inbox")
	})

	t.Run("duplicate email maps to 409", func(t *testing.T) {
		accounts := &stubAccountService{registerErr: model.Conflict("email already registered")}
		h := NewAuth(accounts, mocks.NewSessionManager(t), testutil.MakeNoopLogger())

		rec := doJSON(t, e, h.register, http.MethodPost, "/api/v1/auth/register",
			`{"email":"ada@example.com","password":"long enough"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid body maps to 400 with field details", func(t *testing.T) {
		h := NewAuth(&stubAccountService{}, mocks.NewSessionManager(t), testutil.MakeNoopLogger())

		rec := doJSON(t, e, h.register, http.MethodPost, "/api/v1/auth/register",
			`{"email":"not-an-email","password":""}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp APIError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	})
}

func TestAuth_Login(t *testing.T) {
	e := newEcho()

	t.Run("success returns tokens and roles", func(t *testing.T) {
		accounts := &stubAccountService{
			loginPair:  model.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
			loginRoles: []string{model.RoleUser},
		}
		h := NewAuth(accounts, mocks.NewSessionManager(t), testutil.MakeNoopLogger())

		rec := doJSON(t, e, h.login, http.MethodPost, "/api/v1/auth/login",
			`{"email":"ada@example.com","password":"pw"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"access_token":"access"`)
		assert.Contains(t, rec.Body.String(), `"refresh_token":"refresh"`)
	})

	t.Run("bad credentials map to 401", func(t *testing.T) {
		accounts := &stubAccountService{loginErr: model.Unauthorized("invalid email or password")}
		h := NewAuth(accounts, mocks.NewSessionManager(t), testutil.MakeNoopLogger())

		rec := doJSON(t, e, h.login, http.MethodPost, "/api/v1/auth/login",
			`{"email":"ada@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid email or password")
	})
}

func TestAuth_ConfirmEmail(t *testing.T) {
	e := newEcho()

	t.Run("invalid user id is a 400", func(t *testing.T) {
		h := NewAuth(&stubAccountService{}, mocks.NewSessionManager(t), testutil.MakeNoopLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/confirm-email?userId=nope&token=t", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.confirmEmail(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("unknown user maps to 404", func(t *testing.T) {
		accounts := &stubAccountService{confirmErr: model.NotFoundError("user not found")}
		h := NewAuth(accounts, mocks.NewSessionManager(t), testutil.MakeNoopLogger())

		target := "/api/v1/auth/confirm-email?userId=" + uuid.NewString() + "&token=sometoken"
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h.confirmEmail(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAuth_ForgotPassword_AlwaysGeneric(t *testing.T) {
	e := newEcho()
	accounts := &stubAccountService{forgotMsg: "if the email exists, a reset link has been sent"}
	h := NewAuth(accounts, mocks.NewSessionManager(t), testutil.MakeNoopLogger())

	rec := doJSON(t, e, h.forgotPassword, http.MethodPost, "/api/v1/auth/forgot-password",
		`{"email":"anyone@example.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "if the email exists")
}

func TestAuth_Refresh(t *testing.T) {
	e := newEcho()

	t.Run("success returns a new pair", func(t *testing.T) {
		sessions := mocks.NewSessionManager(t)
		sessions.On("Rotate", mock.Anything, "old-refresh").
			Return(model.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)
		h := NewAuth(&stubAccountService{}, sessions, testutil.MakeNoopLogger())

		rec := doJSON(t, e, h.refresh, http.MethodPost, "/api/v1/auth/refresh",
			`{"refresh_token":"old-refresh"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"refresh_token":"new-refresh"`)
	})

	t.Run("consumed token maps to 401", func(t *testing.T) {
		sessions := mocks.NewSessionManager(t)
		sessions.On("Rotate", mock.Anything, "consumed").
			Return(model.TokenPair{}, model.Unauthorized("invalid refresh token"))
		h := NewAuth(&stubAccountService{}, sessions, testutil.MakeNoopLogger())

		rec := doJSON(t, e, h.refresh, http.MethodPost, "/api/v1/auth/refresh",
			`{"refresh_token":"consumed"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
