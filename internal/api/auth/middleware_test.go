package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/taskboard/taskboard/internal/database"
)

type MiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *MiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	s.router.Use(sessions.Sessions("test_session", store))

	// Test login endpoint that binds the identity named by the role query.
	s.router.GET("/test-login", func(c *gin.Context) {
		identity := &Identity{
			ID:   "000000000000000000000001",
			Name: "alice",
			Role: c.Query("role"),
		}
		require.NoError(s.T(), SaveIdentity(sessions.Default(c), identity))
		c.Status(http.StatusNoContent)
	})
	s.router.GET("/test-logout", func(c *gin.Context) {
		require.NoError(s.T(), ClearIdentity(sessions.Default(c)))
		c.Status(http.StatusNoContent)
	})

	protected := s.router.Group("/")
	protected.Use(RequireAuth())
	protected.GET("/", func(c *gin.Context) {
		identity := IdentityFromContext(c)
		c.String(http.StatusOK, "hello %s", identity.Name)
	})

	admin := s.router.Group("/")
	admin.Use(RequireAuth(), RequireAdmin())
	admin.GET("/admin", func(c *gin.Context) {
		c.String(http.StatusOK, "admin area")
	})
}

// login performs a request against the test login route and returns the
// session cookies.
func (s *MiddlewareTestSuite) login(role string) []*http.Cookie {
	req := httptest.NewRequest("GET", "/test-login?role="+role, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(s.T(), http.StatusNoContent, w.Code)
	return w.Result().Cookies()
}

func (s *MiddlewareTestSuite) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *MiddlewareTestSuite) TestAnonymousRedirectedToLogin() {
	w := s.get("/", nil)
	assert.Equal(s.T(), http.StatusFound, w.Code)
	assert.Equal(s.T(), "/login", w.Header().Get("Location"))
}

func (s *MiddlewareTestSuite) TestAuthenticatedUserAllowed() {
	cookies := s.login(database.RoleUser)
	w := s.get("/", cookies)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "alice")
}

func (s *MiddlewareTestSuite) TestNonAdminRedirectedHome() {
	cookies := s.login(database.RoleUser)
	w := s.get("/admin", cookies)
	assert.Equal(s.T(), http.StatusFound, w.Code)
	assert.Equal(s.T(), "/", w.Header().Get("Location"))
}

func (s *MiddlewareTestSuite) TestAdminAllowed() {
	cookies := s.login(database.RoleAdmin)
	w := s.get("/admin", cookies)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "admin area")
}

func (s *MiddlewareTestSuite) TestLogoutEndsSession() {
	cookies := s.login(database.RoleUser)

	req := httptest.NewRequest("GET", "/test-logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(s.T(), http.StatusNoContent, w.Code)

	// The cleared session cookie no longer authenticates.
	w2 := s.get("/", w.Result().Cookies())
	assert.Equal(s.T(), http.StatusFound, w2.Code)
	assert.Equal(s.T(), "/login", w2.Header().Get("Location"))
}

func (s *MiddlewareTestSuite) TestIdentityRoundTrip() {
	s.router.GET("/test-roundtrip", func(c *gin.Context) {
		session := sessions.Default(c)

		_, ok := IdentityFromSession(session)
		assert.False(s.T(), ok)

		identity := &Identity{ID: "abc", Name: "bob", Role: database.RoleAdmin}
		require.NoError(s.T(), SaveIdentity(session, identity))

		got, ok := IdentityFromSession(session)
		require.True(s.T(), ok)
		assert.Equal(s.T(), identity, got)

		require.NoError(s.T(), ClearIdentity(session))
		_, ok = IdentityFromSession(session)
		assert.False(s.T(), ok)

		// Clearing twice is fine.
		require.NoError(s.T(), ClearIdentity(session))

		c.Status(http.StatusOK)
	})

	w := s.get("/test-roundtrip", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}
