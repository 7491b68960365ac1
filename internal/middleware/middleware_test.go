package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/SscSPs/apartment_fee_app/internal/middleware"
	"github.com/SscSPs/apartment_fee_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "middleware-test-secret"

type MiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *MiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/api", middleware.AuthMiddleware(testJWTSecret))
	protected.GET("/me", func(c *gin.Context) {
		p, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": p.UserID, "role": p.Role, "username": p.Username})
	})
	protected.GET("/managed", middleware.RequireRole(domain.RoleManager, domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	r.POST("/webhook", middleware.PaymentAPIKeyAuth("gateway-key"), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	s.router = r
}

func (s *MiddlewareTestSuite) token(user domain.User, expiry time.Duration) string {
	tok, err := utils.GenerateAccessToken(user, testJWTSecret, expiry, "afa-test", time.Now())
	s.Require().NoError(err)
	return tok
}

func (s *MiddlewareTestSuite) do(method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *MiddlewareTestSuite) TestAuth_MissingHeader() {
	w := s.do(http.MethodGet, "/api/me", "")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(w.Body.String(), "Authorization header required")
}

func (s *MiddlewareTestSuite) TestAuth_WrongScheme() {
	w := s.do(http.MethodGet, "/api/me", "Token abc")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *MiddlewareTestSuite) TestAuth_ExpiredToken() {
	tok := s.token(domain.User{ID: 3, Username: "bob", Role: domain.RoleTenant}, -time.Minute)
	w := s.do(http.MethodGet, "/api/me", "Bearer "+tok)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(w.Body.String(), "expired")
}

func (s *MiddlewareTestSuite) TestAuth_ValidTokenPopulatesPrincipal() {
	tok := s.token(domain.User{ID: 42, Username: "alice", Role: domain.RoleTenant}, time.Hour)
	w := s.do(http.MethodGet, "/api/me", "Bearer "+tok)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"id":42,"role":"tenant","username":"alice"}`, w.Body.String())
}

func (s *MiddlewareTestSuite) TestRequireRole() {
	tenant := s.token(domain.User{ID: 1, Username: "t", Role: domain.RoleTenant}, time.Hour)
	manager := s.token(domain.User{ID: 2, Username: "m", Role: domain.RoleManager}, time.Hour)

	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/api/managed", "Bearer "+tenant).Code)
	s.Equal(http.StatusNoContent, s.do(http.MethodGet, "/api/managed", "Bearer "+manager).Code)
}

func (s *MiddlewareTestSuite) TestPaymentAPIKey() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/webhook", "").Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/webhook", "Apikey wrong").Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/webhook", "Bearer gateway-key").Code)
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/webhook", "Apikey gateway-key").Code)
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/webhook", "apikey gateway-key").Code)
}

func (s *MiddlewareTestSuite) TestRateLimit() {
	lim, err := middleware.NewMemoryLimiter("2-M")
	s.Require().NoError(err)

	r := gin.New()
	r.GET("/limited", middleware.RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		codes = append(codes, w.Code)
	}
	s.Equal([]int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func (s *MiddlewareTestSuite) TestLoggingSetsRequestID() {
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(testLogger()))
	r.GET("/ping", func(c *gin.Context) {
		s.NotNil(middleware.GetLoggerFromCtx(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("req-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}
