package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio-admin/adapters/cache"
	"github.com/khoahotran/portfolio-admin/adapters/event"
	"github.com/khoahotran/portfolio-admin/adapters/memstore"
	aboutUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/about"
	authUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/auth"
	dashboardUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/dashboard"
	experienceUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/experience"
	feedbackUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/feedback"
	projectUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/project"
	"github.com/khoahotran/portfolio-admin/internal/config"
	"github.com/khoahotran/portfolio-admin/internal/domain/dashboard"
	"github.com/khoahotran/portfolio-admin/internal/domain/feedback"
	"github.com/khoahotran/portfolio-admin/internal/domain/user"
	"github.com/khoahotran/portfolio-admin/pkg/auth"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

const (
	adminEmail    = "user@gmail.com"
	adminPassword = "12345"
	cookieName    = "portfolio_session"
	testCSRF      = "test-csrf-token"
)

type WebTestSuite struct {
	suite.Suite
	router *gin.Engine
	store  *memstore.Store
	jwtSvc *auth.JWTService
	cookie *http.Cookie
}

func TestWebTestSuite(t *testing.T) {
	suite.Run(t, new(WebTestSuite))
}

func testConfig() config.Config {
	var cfg config.Config
	cfg.Auth.JWTSecret = "web-test-secret-0123456789abcdef"
	cfg.Auth.TokenLifespan = time.Hour
	cfg.Auth.CookieName = cookieName
	return cfg
}

// newTestRouter wires the admin pages over an in-memory store seeded with one admin.
func newTestRouter(t *testing.T, cfg config.Config) (*gin.Engine, *memstore.Store, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNopLogger()
	store := memstore.New()

	hash, err := auth.HashPassword(adminPassword)
	require.NoError(t, err)
	now := time.Now().UTC()
	require.NoError(t, store.Users().Create(context.Background(), &user.User{
		ID: uuid.New(), Email: adminEmail, PasswordHash: hash, Role: user.RoleAdmin, CreatedAt: now, UpdatedAt: now,
	}))

	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	summaryUC := dashboardUC.NewSummaryUseCase(store.Projects(), store.Experiences(), store.Feedback(),
		cache.NewMemorySummaryCache(time.Hour), dashboard.DefaultMonths, log)
	pub := event.NewLocalPublisher(nil)

	router := gin.New()
	require.NoError(t, Register(router, Deps{
		Config:        cfg,
		Logger:        log,
		JWTService:    jwtSvc,
		Auth:          authUC.NewLoginUseCase(store.Users(), jwtSvc, log),
		About:         aboutUC.NewAboutUseCase(store.About(), pub, log),
		Experience:    experienceUC.NewExperienceUseCase(store.Experiences(), pub, log),
		Feedback:      feedbackUC.NewFeedbackUseCase(store.Feedback(), pub, log),
		Summary:       summaryUC,
		CreateProject: projectUC.NewCreateProjectUseCase(store.Projects(), pub, log),
		ListProjects:  projectUC.NewListProjectsUseCase(store.Projects()),
		GetProject:    projectUC.NewGetProjectUseCase(store.Projects()),
		UpdateProject: projectUC.NewUpdateProjectUseCase(store.Projects(), pub, log),
		DeleteProject: projectUC.NewDeleteProjectUseCase(store.Projects(), pub, log),
	}))
	return router, store, jwtSvc
}

// formRequest builds a request that passes the CSRF check when it carries a form.
func formRequest(method, path string, form url.Values, cookie *http.Cookie) *http.Request {
	body := ""
	if form != nil {
		withToken := url.Values{CSRFFormField: {testCSRF}}
		for k, v := range form {
			withToken[k] = v
		}
		body = withToken.Encode()
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: testCSRF})
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func (s *WebTestSuite) SetupTest() {
	s.router, s.store, s.jwtSvc = newTestRouter(s.T(), testConfig())
	s.cookie = s.signIn()
}

func (s *WebTestSuite) request(method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, formRequest(method, path, form, cookie))
	return rr
}

func (s *WebTestSuite) get(path string) *httptest.ResponseRecorder {
	return s.request(http.MethodGet, path, nil, s.cookie)
}

func (s *WebTestSuite) post(path string, form url.Values) *httptest.ResponseRecorder {
	return s.request(http.MethodPost, path, form, s.cookie)
}

func (s *WebTestSuite) signIn() *http.Cookie {
	rr := s.request(http.MethodPost, LoginPath, url.Values{"email": {adminEmail}, "password": {adminPassword}}, nil)
	s.Require().Equal(http.StatusFound, rr.Code, rr.Body.String())
	s.Equal(DashboardPath, rr.Header().Get("Location"))
	for _, c := range rr.Result().Cookies() {
		if c.Name == cookieName {
			s.True(c.HttpOnly)
			s.Equal(http.SameSiteLaxMode, c.SameSite)
			return c
		}
	}
	s.FailNow("session cookie not set")
	return nil
}

func (s *WebTestSuite) TestAdminRequiresSession() {
	rr := s.request(http.MethodGet, "/admin/projects", nil, nil)
	s.Equal(http.StatusFound, rr.Code)
	s.Equal(LoginPath, rr.Header().Get("Location"))

	rr = s.request(http.MethodGet, "/admin/projects", nil, &http.Cookie{Name: cookieName, Value: "garbage"})
	s.Equal(http.StatusFound, rr.Code)
	s.Equal(LoginPath, rr.Header().Get("Location"))
}

func (s *WebTestSuite) TestNonAdminTokenIsRejected() {
	token, _, err := s.jwtSvc.GenerateToken(uuid.New(), "viewer@gmail.com", "viewer")
	s.Require().NoError(err)
	rr := s.request(http.MethodGet, DashboardPath, nil, &http.Cookie{Name: cookieName, Value: token})
	s.Equal(http.StatusFound, rr.Code)
	s.Equal(LoginPath, rr.Header().Get("Location"))
}

func (s *WebTestSuite) TestLoginFailureShowsBanner() {
	rr := s.request(http.MethodPost, LoginPath, url.Values{"email": {adminEmail}, "password": {"nope"}}, nil)
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Contains(rr.Body.String(), "Invalid credentials")
	s.Contains(rr.Body.String(), `value="user@gmail.com"`)

	rr = s.request(http.MethodPost, LoginPath, url.Values{"email": {"ghost@gmail.com"}, "password": {"x"}}, nil)
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Contains(rr.Body.String(), "User not found")
}

func (s *WebTestSuite) TestLoginPageRedirectsWhenSignedIn() {
	rr := s.get(LoginPath)
	s.Equal(http.StatusFound, rr.Code)
	s.Equal(DashboardPath, rr.Header().Get("Location"))

	rr = s.request(http.MethodGet, LoginPath, nil, nil)
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), `name="password"`)
}

func (s *WebTestSuite) TestLogoutClearsCookie() {
	rr := s.post("/logout", url.Values{})
	s.Equal(http.StatusFound, rr.Code)
	s.Equal(LoginPath, rr.Header().Get("Location"))
	found := false
	for _, c := range rr.Result().Cookies() {
		if c.Name == cookieName {
			found = true
			s.Empty(c.Value)
			s.Less(c.MaxAge, 0)
		}
	}
	s.True(found)
}

func (s *WebTestSuite) TestDashboardRendersCharts() {
	rr := s.post("/admin/projects", url.Values{"title": {"Site"}, "description": {"Portfolio"}})
	s.Require().Equal(http.StatusSeeOther, rr.Code)

	rr = s.get(DashboardPath)
	s.Require().Equal(http.StatusOK, rr.Code)
	body := rr.Body.String()
	s.Contains(body, "Projects per month")
	s.Contains(body, dashboard.MonthLabel(time.Now().UTC().Year(), time.Now().UTC().Month()))
	s.Contains(body, `class="bar" style="width:100%"`)
	s.Contains(body, "Feedback status")
	s.Contains(body, adminEmail)
}

func (s *WebTestSuite) TestAboutForm() {
	rr := s.get("/admin/about")
	s.Require().Equal(http.StatusOK, rr.Code)

	rr = s.post("/admin/about", url.Values{
		"bio":         {"Backend developer"},
		"skills":      {"Go, MongoDB,  , Redis"},
		"education":   {"BSc | HCMUS | 2020\n\nMSc | HCMUT"},
		"resume_link": {"https://example.com/cv.pdf"},
	})
	s.Require().Equal(http.StatusSeeOther, rr.Code, rr.Body.String())
	s.True(strings.HasPrefix(rr.Header().Get("Location"), "/admin/about?notice="))

	out, err := aboutUC.NewAboutUseCase(s.store.About(), nil, logger.NewNopLogger()).ExecuteGetAbout(context.Background())
	s.Require().NoError(err)
	s.Equal("Backend developer", out.About.Bio)
	s.Equal([]string{"Go", "MongoDB", "Redis"}, out.About.Skills)
	s.Require().Len(out.About.Education, 2)
	s.Equal("HCMUS", out.About.Education[0].Institution)
	s.Equal("", out.About.Education[1].Year)

	rr = s.get("/admin/about")
	s.Contains(rr.Body.String(), "BSc | HCMUS | 2020")
}

func (s *WebTestSuite) TestExperienceLifecycle() {
	rr := s.post("/admin/experience", url.Values{"title": {"Engineer"}})
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Contains(rr.Body.String(), "Title, company, and start date are required")
	s.Contains(rr.Body.String(), `value="Engineer"`)

	rr = s.post("/admin/experience", url.Values{
		"title": {"Engineer"}, "company": {"Acme"}, "start_date": {"2022-03-01"}, "is_current": {"1"},
	})
	s.Require().Equal(http.StatusSeeOther, rr.Code, rr.Body.String())

	items, err := s.store.Experiences().List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	id := items[0].ID.String()
	s.True(items[0].IsCurrent)

	rr = s.get("/admin/experience")
	s.Contains(rr.Body.String(), "Acme")
	s.Contains(rr.Body.String(), "present")

	rr = s.get("/admin/experience/" + id + "/edit")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), `value="2022-03-01"`)

	rr = s.post("/admin/experience/"+id, url.Values{
		"title": {"Senior Engineer"}, "company": {"Acme"}, "start_date": {"2022-03-01"}, "end_date": {"2024-01-31"},
	})
	s.Require().Equal(http.StatusSeeOther, rr.Code, rr.Body.String())
	e, err := s.store.Experiences().FindByID(context.Background(), items[0].ID)
	s.Require().NoError(err)
	s.Equal("Senior Engineer", e.Title)
	s.False(e.IsCurrent)
	s.Require().NotNil(e.EndDate)

	rr = s.get("/admin/experience/" + id + "/delete")
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), "Senior Engineer at Acme")

	rr = s.post("/admin/experience/"+id+"/delete", url.Values{})
	s.Equal(http.StatusSeeOther, rr.Code)
	items, _ = s.store.Experiences().List(context.Background())
	s.Empty(items)

	rr = s.get("/admin/experience/" + id + "/edit")
	s.Equal(http.StatusNotFound, rr.Code)
	rr = s.get("/admin/experience/not-a-uuid/edit")
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *WebTestSuite) TestFeedbackReview() {
	now := time.Now().UTC()
	f := &feedback.Feedback{ID: uuid.New(), Name: "Ann", Message: "Great work", Status: feedback.StatusPending, CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.store.Feedback().Save(context.Background(), f))

	rr := s.get("/admin/feedback")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), "Great work")

	rr = s.post("/admin/feedback/"+f.ID.String(), url.Values{"status": {"maybe"}})
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Contains(rr.Body.String(), "status must be one of")

	rr = s.post("/admin/feedback/"+f.ID.String(), url.Values{"status": {"rejected"}, "reply": {""}})
	s.Require().Equal(http.StatusSeeOther, rr.Code, rr.Body.String())
	got, err := s.store.Feedback().FindByID(context.Background(), f.ID)
	s.Require().NoError(err)
	s.Equal(feedback.StatusRejected, got.Status)
	s.Nil(got.RepliedAt)
	s.NotContains(s.get("/admin/feedback").Body.String(), "Replied")

	rr = s.post("/admin/feedback/"+f.ID.String(), url.Values{"status": {"approved"}, "reply": {"Thanks"}})
	s.Require().Equal(http.StatusSeeOther, rr.Code, rr.Body.String())
	got, err = s.store.Feedback().FindByID(context.Background(), f.ID)
	s.Require().NoError(err)
	s.Equal(feedback.StatusApproved, got.Status)
	s.Equal("Thanks", got.Reply)
	s.NotNil(got.RepliedAt)

	rr = s.post("/admin/feedback/"+f.ID.String()+"/delete", url.Values{})
	s.Equal(http.StatusSeeOther, rr.Code)
	_, err = s.store.Feedback().FindByID(context.Background(), f.ID)
	s.Error(err)
}

func (s *WebTestSuite) TestProjectLifecycle() {
	rr := s.get("/admin/projects/new")
	s.Require().Equal(http.StatusOK, rr.Code)

	rr = s.post("/admin/projects", url.Values{"title": {"Only title"}})
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Contains(rr.Body.String(), "Title and description are required")

	rr = s.post("/admin/projects", url.Values{
		"title": {"Portfolio"}, "description": {"My site"}, "technologies": {"Go, React"}, "github_url": {"https://github.com/x/y"},
	})
	s.Require().Equal(http.StatusSeeOther, rr.Code, rr.Body.String())

	items, err := s.store.Projects().List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal([]string{"Go", "React"}, items[0].Technologies)
	id := items[0].ID.String()

	rr = s.get("/admin/projects")
	s.Contains(rr.Body.String(), "Go, React")

	rr = s.post("/admin/projects/"+id, url.Values{"title": {"Portfolio v2"}, "description": {"My site"}})
	s.Require().Equal(http.StatusSeeOther, rr.Code, rr.Body.String())
	p, err := s.store.Projects().FindByID(context.Background(), items[0].ID)
	s.Require().NoError(err)
	s.Equal("Portfolio v2", p.Title)
	s.Empty(p.GithubURL)

	rr = s.get("/admin/projects/" + id + "/delete")
	s.Contains(rr.Body.String(), "Portfolio v2")
	rr = s.post("/admin/projects/"+id+"/delete", url.Values{})
	s.Equal(http.StatusSeeOther, rr.Code)

	rr = s.post("/admin/projects/"+id+"/delete", url.Values{})
	s.Equal(http.StatusNotFound, rr.Code)
}

func TestFeedbackShares(t *testing.T) {
	got := feedbackShares(dashboard.FeedbackBreakdown{Total: 4, Approved: 2, Pending: 1, Rejected: 1})
	if got[0].Percent != 50 || got[1].Percent != 25 || got[2].Percent != 25 {
		t.Fatalf("unexpected shares: %+v", got)
	}
	for _, sh := range feedbackShares(dashboard.FeedbackBreakdown{}) {
		if sh.Percent != 0 {
			t.Fatalf("empty breakdown should yield zero shares: %+v", sh)
		}
	}
}

func (s *WebTestSuite) TestCSRFTokenIsIssuedAndRendered() {
	rr := s.request(http.MethodGet, LoginPath, nil, nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	var token string
	for _, c := range rr.Result().Cookies() {
		if c.Name == CSRFCookieName {
			token = c.Value
			s.False(c.HttpOnly)
			s.Equal(http.SameSiteLaxMode, c.SameSite)
		}
	}
	s.Require().Len(token, 64)
	s.Contains(rr.Body.String(), `name="csrf_token" value="`+token+`"`)

	rr = s.get("/admin/about")
	s.Contains(rr.Body.String(), `name="csrf_token" value="`)
}

func (s *WebTestSuite) TestPostWithoutMatchingCSRFTokenIsForbidden() {
	now := time.Now().UTC()
	f := &feedback.Feedback{ID: uuid.New(), Name: "Ann", Message: "Hi", Status: feedback.StatusPending, CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.store.Feedback().Save(context.Background(), f))

	send := func(path, body, cookieToken string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(s.cookie)
		if cookieToken != "" {
			req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: cookieToken})
		}
		rr := httptest.NewRecorder()
		s.router.ServeHTTP(rr, req)
		return rr
	}

	rr := send("/admin/feedback/"+f.ID.String(), "status=approved", testCSRF)
	s.Equal(http.StatusForbidden, rr.Code)
	rr = send("/admin/feedback/"+f.ID.String(), "status=approved&csrf_token=other", testCSRF)
	s.Equal(http.StatusForbidden, rr.Code)
	rr = send("/admin/feedback/"+f.ID.String(), "status=approved&csrf_token="+testCSRF, "")
	s.Equal(http.StatusForbidden, rr.Code)
	rr = send("/logout", "", testCSRF)
	s.Equal(http.StatusForbidden, rr.Code)

	got, err := s.store.Feedback().FindByID(context.Background(), f.ID)
	s.Require().NoError(err)
	s.Equal(feedback.StatusPending, got.Status)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(s.cookie)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: testCSRF})
	req.Header.Set(CSRFHeaderName, testCSRF)
	rr = httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	s.Equal(http.StatusFound, rr.Code)
}

func (s *WebTestSuite) TestDashboardReflectsWritesImmediately() {
	rr := s.get(DashboardPath)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), "<strong>0</strong>Projects")

	rr = s.post("/admin/projects", url.Values{"title": {"Site"}, "description": {"Portfolio"}})
	s.Require().Equal(http.StatusSeeOther, rr.Code)

	rr = s.get(DashboardPath)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), "<strong>1</strong>Projects")
}

func TestLoginIsRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.LoginRateLimit = 2
	router, _, _ := newTestRouter(t, cfg)

	attempt := func(password string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, formRequest(http.MethodPost, LoginPath, url.Values{"email": {adminEmail}, "password": {password}}, nil))
		return rr
	}

	assert.Equal(t, http.StatusUnauthorized, attempt("wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, attempt("wrong").Code)

	rr := attempt("wrong")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), "Too many attempts")
	assert.Contains(t, rr.Body.String(), `value="user@gmail.com"`)

	assert.Equal(t, http.StatusTooManyRequests, attempt(adminPassword).Code)
}
