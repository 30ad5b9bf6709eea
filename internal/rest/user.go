package rest

import (
	"context"
	"net/http"
	"smartMarket/domain"
	"smartMarket/pkg/logger"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, user *domain.User) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	Logout(ctx context.Context, userID uint, token string) error
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type UserRegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req UserRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.Register(ctx, &domain.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch err.Error() {
		case "invalid email format", "password must be at least 6 characters":
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		case "email already exists":
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to register user", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to register"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User successfully registered",
		"user":    user,
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	var req UserLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, user, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if err.Error() == "invalid email or password" || err.Error() == "account is disabled" {
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to login", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to login"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *UserHandler) Logout(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	token, _ := c.Get("token").(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.Logout(ctx, userID, token); err != nil {
		logger.Error("Failed to logout", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to logout"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Successfully logged out",
	})
}
