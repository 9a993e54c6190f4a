package api

import (
	"net/http"

	"github.com/blenbot/flight-booking/internal/domain"
	"github.com/blenbot/flight-booking/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/forgot-password", h.forgotPassword)
	router.POST("/reset-password", h.resetPassword)
}

func (h *UserHandler) RegisterProfile(router *gin.RouterGroup) {
	router.GET("/me", h.profile)
	router.PUT("/me", h.updateProfile)
}

func (h *UserHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("/users", h.listUsers)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

// @Summary  Register a new customer account
// @Param    req  body  registerRequest  true  "payload"
// @Success  201  {object}  userResponse
// @Failure  409  {object}  map[string]string  "email taken"
// @Router   /users/register [post]
func (h *UserHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

// @Summary  Log in, returns a bearer token
// @Param    req  body  loginRequest  true  "payload"
// @Success  200  {object}  map[string]interface{}
// @Failure  401  {object}  map[string]string
// @Router   /users/login [post]
func (h *UserHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": toUserResponse(user)})
}

// @Summary  Own profile
// @Success  200  {object}  userResponse
// @Router   /users/me [get]
func (h *UserHandler) profile(c *gin.Context) {
	user, err := h.service.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// @Summary  Update own profile
// @Param    req  body  updateProfileRequest  true  "payload"
// @Success  200  {object}  userResponse
// @Router   /users/me [put]
func (h *UserHandler) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), currentUserID(c), req.Name, req.Email)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// @Summary  Generate a password reset code
// @Param    req  body  forgotPasswordRequest  true  "payload"
// @Success  200  {object}  map[string]string
// @Router   /users/forgot-password [post]
func (h *UserHandler) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.service.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		respondErr(c, err)
		return
	}
	// No outbound mail integration, the code is returned directly.
	c.JSON(http.StatusOK, gin.H{"message": "reset code generated", "reset_code": code})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	ResetCode   string `json:"reset_code"`
	NewPassword string `json:"new_password"`
}

// @Summary  Reset password with a previously issued code
// @Param    req  body  resetPasswordRequest  true  "payload"
// @Success  200  {object}  map[string]string
// @Failure  400  {object}  map[string]string  "invalid or expired code"
// @Router   /users/reset-password [post]
func (h *UserHandler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Email, req.ResetCode, req.NewPassword); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password reset successfully"})
}

// @Summary  List users (admin)
// @Success  200  {array}  userResponse
// @Router   /admin/users [get]
func (h *UserHandler) listUsers(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]userResponse, 0, len(result))
	for _, u := range result {
		out = append(out, toUserResponse(&u))
	}
	c.JSON(http.StatusOK, out)
}
