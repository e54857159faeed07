package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginResponse mirrors the original controller contract: the token plus
// the profile fields the UI renders. Downstream credentials never appear
// here.
type loginResponse struct {
	Token     string      `json:"token"`
	Username  string      `json:"username"`
	FirstName string      `json:"firstName,omitempty"`
	LastName  string      `json:"lastName,omitempty"`
	Email     string      `json:"email,omitempty"`
	Role      domain.Role `json:"role"`
}

// Login authenticates a local user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return &domain.BadRequestError{Detail: "invalid payload"}
	}
	if err := c.Validate(&req); err != nil {
		return &domain.BadRequestError{Detail: err.Error()}
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
	})
}
