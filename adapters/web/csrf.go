package web

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// CSRFCookieName holds the token the browser must echo back in forms.
	CSRFCookieName = "csrf_token"
	// CSRFFormField is the hidden input every admin form carries.
	CSRFFormField = "csrf_token"
	// CSRFHeaderName lets scripted clients send the token without a form body.
	CSRFHeaderName = "X-CSRF-Token"

	csrfTokenLength = 32
	csrfTokenExpiry = 24 * time.Hour
	csrfContextKey  = "csrf_token"
)

func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// CSRF implements the double-submit cookie pattern for the admin pages.
// Every request gets a csrf_token cookie. POSTs must repeat its value in the
// csrf_token form field or the X-CSRF-Token header, otherwise they get 403.
func (h *Handler) CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFCookieName)
		if err != nil || token == "" {
			token, err = generateCSRFToken()
			if err != nil {
				h.Logger.Error("Failed to generate CSRF token", err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			// Not HttpOnly: the value is also rendered into forms and may be read by scripts.
			c.SetCookie(CSRFCookieName, token, int(csrfTokenExpiry.Seconds()), "/", "", h.cookieSecure, false)
		}
		c.Set(csrfContextKey, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		sent := c.PostForm(CSRFFormField)
		if sent == "" {
			sent = c.GetHeader(CSRFHeaderName)
		}
		if sent == "" || subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
			h.Logger.Warn("CSRF check failed", zap.String("path", c.Request.URL.Path), zap.Bool("missing", sent == ""))
			c.String(http.StatusForbidden, "Invalid or missing CSRF token. Reload the page and try again.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func csrfToken(c *gin.Context) string {
	return c.GetString(csrfContextKey)
}
