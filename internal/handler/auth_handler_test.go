package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"blogtab/internal/auth"
	apperrors "blogtab/internal/errors"
	"blogtab/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, firstName, lastName, password string) (*model.User, error) {
	args := m.Called(ctx, email, firstName, lastName, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) IssueTokens(ctx context.Context, user *model.User) (string, string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns a token response", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		user := &model.User{ID: 1, Email: "a@x.com"}
		mockSvc.On("Register", mock.Anything, "a@x.com", "A", "A", "password1").Return(user, nil)
		mockSvc.On("IssueTokens", mock.Anything, user).Return("access", "refresh", nil)

		e := newTestEcho()
		body := `{"email":"a@x.com","first_name":"A","last_name":"A","password":"password1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		h := NewAuthHandler(mockSvc)
		err := h.Register(e.NewContext(req, rec))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp TokenResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "access", resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, "refresh", resp.RefreshToken)
	})

	t.Run("duplicate email maps to 400", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Register", mock.Anything, "a@x.com", "B", "B", "password2").
			Return(nil, apperrors.ErrDuplicateEmail)

		e := newTestEcho()
		body := `{"email":"a@x.com","first_name":"B","last_name":"B","password":"password2"}`
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		h := NewAuthHandler(mockSvc)
		err := h.Register(e.NewContext(req, rec))

		var httpErr *echo.HTTPError
		assert.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("invalid payload rejected before the service", func(t *testing.T) {
		mockSvc := new(MockAuthService)

		e := newTestEcho()
		body := `{"email":"not-an-email","first_name":"A","last_name":"A","password":"pw"}`
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		h := NewAuthHandler(mockSvc)
		err := h.Register(e.NewContext(req, rec))

		var httpErr *echo.HTTPError
		assert.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		mockSvc.AssertNotCalled(t, "Register")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("form-encoded credentials accepted", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		user := &model.User{ID: 1, Email: "a@x.com"}
		mockSvc.On("Login", mock.Anything, "a@x.com", "password1").Return(user, nil)
		mockSvc.On("IssueTokens", mock.Anything, user).Return("access", "refresh", nil)

		e := newTestEcho()
		form := url.Values{"username": {"a@x.com"}, "password": {"password1"}}
		req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()

		h := NewAuthHandler(mockSvc)
		err := h.Login(e.NewContext(req, rec))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad credentials map to 401", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Login", mock.Anything, "a@x.com", "wrong").
			Return(nil, apperrors.ErrInvalidCredentials)

		e := newTestEcho()
		form := url.Values{"username": {"a@x.com"}, "password": {"wrong"}}
		req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()

		h := NewAuthHandler(mockSvc)
		err := h.Login(e.NewContext(req, rec))

		var httpErr *echo.HTTPError
		assert.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}
