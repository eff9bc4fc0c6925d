package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/taskboard/api/http/presenter"
	"github.com/artem13815/taskboard/pkg/auth"
	"github.com/artem13815/taskboard/pkg/security/jwt"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type authResponse struct {
	User  auth.PublicUser `json:"user"`
	Token string          `json:"token"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} presenter.SuccessResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, "invalid JSON payload")
	}
	if msg, ok := validateRegistration(req); !ok {
		return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, msg)
	}
	role, ok := auth.ParseRole(req.Role)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, "role must be either USER or ADMIN")
	}

	result, err := h.useCase.Register(c.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return presenter.Error(c, http.StatusBadRequest, presenter.CodeDuplicateEmail, "user with this email already exists")
		}
		return presenter.Error(c, http.StatusInternalServerError, presenter.CodeServerError, "failed to register user")
	}

	return presenter.Success(c, http.StatusCreated, "user registered successfully", authResponse{
		User:  result.User.Public(),
		Token: result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} presenter.SuccessResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, "email and password are required")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusUnauthorized, presenter.CodeInvalidCredentials, "invalid email or password")
		}
		return presenter.Error(c, http.StatusInternalServerError, presenter.CodeServerError, "failed to login")
	}

	return presenter.Success(c, http.StatusOK, "login successful", authResponse{
		User:  result.User.Public(),
		Token: result.Token,
	})
}

// Me returns the authenticated caller's profile.
// @Summary Current user profile
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.SuccessResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := jwt.IdentityFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, presenter.CodeUnauthorized, "authentication required")
	}
	user, err := h.useCase.Profile(c.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, presenter.CodeUserNotFound, "user not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, presenter.CodeServerError, "failed to load profile")
	}
	return presenter.Success(c, http.StatusOK, "profile retrieved successfully", fiber.Map{"user": user.Public()})
}

func validateRegistration(req registerRequest) (string, bool) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 || len(name) > 50 {
		return "name must be between 2 and 50 characters", false
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return "email is required", false
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "please provide a valid email", false
	}
	if len(req.Password) < 6 {
		return "password must be at least 6 characters", false
	}
	if !strings.ContainsFunc(req.Password, unicode.IsDigit) {
		return "password must contain at least one number", false
	}
	return "", true
}
