package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/ports"
)

// AuthHandler exposes the visitor's session store: the browser never sees the
// bearer token, only the session state.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type registerRequest struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Phone                string `json:"phone" validate:"required"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	Role                 string `json:"role" validate:"omitempty,oneof=user owner agent"`
	Language             string `json:"language" validate:"omitempty,oneof=id en"`
}

type profileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Language *string `json:"language" validate:"omitempty,oneof=id en"`
}

type passwordRequest struct {
	CurrentPassword      string `json:"current_password" validate:"required"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type sessionResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Data    ports.SessionState `json:"data"`
}

func respondState(c echo.Context, status int, sess ports.Session, msg string) error {
	return c.JSON(status, sessionResponse{Success: true, Message: msg, Data: sess.State()})
}

// Session returns the current session state.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	return respondState(c, http.StatusOK, sess, "")
}

// Login signs the visitor in.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	if err := sess.Login(c.Request().Context(), domain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
	}); err != nil {
		return err
	}
	return respondState(c, http.StatusOK, sess, "Login successful")
}

// Register creates an account and signs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	if err := sess.Register(c.Request().Context(), domain.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Role:                 req.Role,
		Language:             req.Language,
	}); err != nil {
		return err
	}
	return respondState(c, http.StatusCreated, sess, "Registration successful")
}

// Logout ends the session. It succeeds even when the marketplace API is
// unreachable.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := sess.Logout(c.Request().Context()); err != nil {
		return err
	}
	return respondState(c, http.StatusOK, sess, "Logged out")
}

// Profile refreshes the signed-in user from the marketplace API.
//
// @Summary      Fetch profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/user [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := sess.FetchProfile(c.Request().Context()); err != nil {
		return err
	}
	return respondState(c, http.StatusOK, sess, "")
}

// UpdateProfile changes the fields present in the body.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Fields to change"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	if err := sess.UpdateProfile(c.Request().Context(), domain.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Language: req.Language,
	}); err != nil {
		return err
	}
	return respondState(c, http.StatusOK, sess, "Profile updated")
}

// ChangePassword handles PUT /auth/password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      passwordRequest  true  "Current and new password"
// @Success      200   {object}  sessionResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req passwordRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	if err := sess.ChangePassword(c.Request().Context(), domain.PasswordChange{
		CurrentPassword:      req.CurrentPassword,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	}); err != nil {
		return err
	}
	return respondState(c, http.StatusOK, sess, "Password changed")
}

// ClearError dismisses the last recorded session error.
//
// @Summary      Clear session error
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/error [delete]
func (h *AuthHandler) ClearError(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	sess.ClearError()
	return respondState(c, http.StatusOK, sess, "")
}
