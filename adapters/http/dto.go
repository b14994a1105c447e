package http

import (
	"strings"
	"time"

	"github.com/khoahotran/portfolio-admin/internal/domain/about"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

// Responses reuse the domain structs, which already carry the camelCase wire tags.

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type SessionResponse struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ReplaceAboutRequest struct {
	Bio        string            `json:"bio"`
	Skills     []string          `json:"skills"`
	Education  []about.Education `json:"education"`
	ResumeLink string            `json:"resumeLink"`
}

type ExperienceRequest struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
	IsCurrent   bool    `json:"isCurrent"`
	Description string  `json:"description"`
}

type SubmitFeedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ReviewFeedbackRequest distinguishes an absent field (nil) from an empty one.
type ReviewFeedbackRequest struct {
	Status *string `json:"status"`
	Reply  *string `json:"reply"`
}

type ProjectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	LiveURL      string   `json:"liveUrl"`
	GithubURL    string   `json:"githubUrl"`
	ImageURL     string   `json:"imageUrl"`
}

type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

const dateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD (UTC midnight) or RFC 3339. Blank input yields the zero time.
func ParseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperror.NewInvalidInput(field+" must be a date (YYYY-MM-DD) or RFC 3339 timestamp", err)
	}
	return t.UTC(), nil
}

// ParseOptionalDate maps nil and blank to nil.
func ParseOptionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := ParseDate(field, *raw)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}
