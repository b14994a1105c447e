package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-admin/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type AuthHandler struct {
	loginUseCase *auth.LoginUseCase
	logger       logger.Logger
}

func NewAuthHandler(loginUC *auth.LoginUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		loginUseCase: loginUC,
		logger:       log,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("Email and password are required", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(LoginError(err))
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: output.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   output.ExpiresAt,
	})
}

// LoginError maps login failures to their client-facing 401 messages.
func LoginError(err error) error {
	switch {
	case errors.Is(err, auth.ErrAccountNotFound):
		return apperror.NewUnauthorized("User not found", err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return apperror.NewUnauthorized("Invalid credentials", err)
	}
	return err
}

func (h *AuthHandler) Session(c *gin.Context) {
	claims, ok := GetClaimsFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("Authorization header is required", nil))
		return
	}
	resp := SessionResponse{
		UserID: claims.UserID.String(),
		Email:  claims.Email,
		Role:   claims.Role,
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	c.JSON(http.StatusOK, resp)
}
