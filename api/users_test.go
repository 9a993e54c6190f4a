package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blenbot/flight-booking/internal/domain"
	"github.com/blenbot/flight-booking/internal/repository"
	"github.com/blenbot/flight-booking/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *MockUserUseCase) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateProfile(ctx context.Context, userID int64, name, email string) (*domain.User, error) {
	args := m.Called(ctx, userID, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) ForgotPassword(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockUserUseCase) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	args := m.Called(ctx, email, code, newPassword)
	return args.Error(0)
}

func (m *MockUserUseCase) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func newUserRouter(service users.UserUseCase, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewUserHandler(service)
	handler.Register(router.Group("/users"))
	handler.RegisterProfile(router.Group("/users", asUser(userID, domain.UserRoleCustomer)))
	return router
}

func TestUserHandler_Register(t *testing.T) {
	mockService := &MockUserUseCase{}
	router := newUserRouter(mockService, 0)

	created := &domain.User{ID: 7, Name: "Ada", Email: "ada@example.com", Role: domain.UserRoleCustomer}
	mockService.On("Register", mock.Anything, "Ada", "ada@example.com", "s3cret").Return(created, nil).Once()

	body := bytes.NewBufferString(`{"name": "Ada", "email": "ada@example.com", "password": "s3cret"}`)
	req := httptest.NewRequest(http.MethodPost, "/users/register", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp userResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "customer", resp.Role)
	// The password hash must never appear in the response.
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUserHandler_Register_EmailTaken(t *testing.T) {
	mockService := &MockUserUseCase{}
	router := newUserRouter(mockService, 0)

	mockService.On("Register", mock.Anything, "Ada", "ada@example.com", "s3cret").
		Return(nil, repository.ErrEmailTaken).Once()

	body := bytes.NewBufferString(`{"name": "Ada", "email": "ada@example.com", "password": "s3cret"}`)
	req := httptest.NewRequest(http.MethodPost, "/users/register", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_Login(t *testing.T) {
	mockService := &MockUserUseCase{}
	router := newUserRouter(mockService, 0)

	user := &domain.User{ID: 7, Name: "Ada", Email: "ada@example.com", Role: domain.UserRoleCustomer}
	mockService.On("Login", mock.Anything, "ada@example.com", "s3cret").Return("a.b.c", user, nil).Once()

	body := bytes.NewBufferString(`{"email": "ada@example.com", "password": "s3cret"}`)
	req := httptest.NewRequest(http.MethodPost, "/users/login", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string       `json:"token"`
		User  userResponse `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "a.b.c", resp.Token)
	assert.Equal(t, int64(7), resp.User.ID)
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	mockService := &MockUserUseCase{}
	router := newUserRouter(mockService, 0)

	mockService.On("Login", mock.Anything, "ada@example.com", "wrong").
		Return("", nil, users.ErrInvalidCredentials).Once()

	body := bytes.NewBufferString(`{"email": "ada@example.com", "password": "wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/users/login", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_Profile(t *testing.T) {
	mockService := &MockUserUseCase{}
	router := newUserRouter(mockService, 7)

	user := &domain.User{ID: 7, Name: "Ada", Email: "ada@example.com", Role: domain.UserRoleCustomer}
	mockService.On("Profile", mock.Anything, int64(7)).Return(user, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestUserHandler_ForgotPassword(t *testing.T) {
	mockService := &MockUserUseCase{}
	router := newUserRouter(mockService, 0)

	mockService.On("ForgotPassword", mock.Anything, "ada@example.com").Return("123456", nil).Once()

	body := bytes.NewBufferString(`{"email": "ada@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/users/forgot-password", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "123456")
}

func TestUserHandler_ResetPassword_InvalidCode(t *testing.T) {
	mockService := &MockUserUseCase{}
	router := newUserRouter(mockService, 0)

	mockService.On("ResetPassword", mock.Anything, "ada@example.com", "000000", "newpass").
		Return(repository.ErrInvalidResetCode).Once()

	body := bytes.NewBufferString(`{"email": "ada@example.com", "reset_code": "000000", "new_password": "newpass"}`)
	req := httptest.NewRequest(http.MethodPost, "/users/reset-password", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
