package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-admin/pkg/apperror"
	"github.com/khoahotran/portfolio-admin/pkg/auth"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

const (
	GinContextKeyClaims    = "claims"
	GinContextKeyRequestID = "RequestID"
	HeaderRequestID        = "X-Request-ID"
)

// AuthMiddleware accepts the token from an "Authorization: Bearer" header or, failing that, the session cookie.
func AuthMiddleware(jwtSvc *auth.JWTService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractToken(c, cookieName)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.Error(apperror.NewUnauthorized("Invalid or expired token", err))
			c.Abort()
			return
		}

		c.Set(GinContextKeyClaims, claims)
		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return "", apperror.NewUnauthorized("Invalid token format", nil)
		}
		return tokenString, nil
	}
	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil && v != "" {
			return v, nil
		}
	}
	return "", apperror.NewUnauthorized("Authorization header is required", nil)
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaimsFromGinContext(c)
		if !ok {
			c.Error(apperror.NewUnauthorized("Authorization header is required", nil))
			c.Abort()
			return
		}
		if claims.Role != role {
			c.Error(apperror.NewPermissionDenied("role " + claims.Role + " cannot access " + c.FullPath()))
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetClaimsFromGinContext(c *gin.Context) (*auth.CustomClaims, bool) {
	v, ok := c.Get(GinContextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.CustomClaims)
	return claims, ok
}

// ErrorMiddleware renders the last error attached with c.Error as {"error": message}.
// Server errors are logged and answered with a generic message.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unhandled error", err)
		}

		status := apperror.ToHTTPStatus(appErr)
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err,
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(GinContextKeyRequestID)),
				zap.String("details", appErr.Details),
			)
		}
		c.JSON(status, appErr.ToJSON())
	}
}

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(GinContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(GinContextKeyRequestID)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("Request completed with server error", fields...)
			return
		}
		log.Info("Request completed", fields...)
	}
}

func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Panic recovered", nil,
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(GinContextKeyRequestID)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
	})
}
