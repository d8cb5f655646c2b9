package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/service"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerResponse struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body model.RegisterRequest true "Registration details"
// @Success 201 {object} registerResponse
// @Failure 400 {object} model.ErrorBody "Invalid input"
// @Failure 409 {object} model.ErrorBody "Username or email taken"
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Username, email, and password are required.")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		abortWithServiceError(c, "register", err)
		return
	}

	c.JSON(http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		User:    service.ToAccount(user),
	})
}

// Login godoc
// @Summary Log in a user
// @Description Authenticates a user and returns a JWT token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body model.LoginRequest true "Login credentials"
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} model.ErrorBody "Invalid credentials"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Username and password are required.")
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		abortWithServiceError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{
		Token: token,
		User:  service.ToAccount(user),
	})
}
