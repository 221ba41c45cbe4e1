//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"hotel-checkout/internal/domain/user"
	"hotel-checkout/internal/handler/api"
	reqdto "hotel-checkout/internal/handler/dto/request"
	resdto "hotel-checkout/internal/handler/dto/response"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/cookie"
	"hotel-checkout/internal/pkg/jwt"
	"hotel-checkout/internal/usecase/commands"
	"hotel-checkout/internal/usecase/queries"
	"hotel-checkout/tests/common/builder"
	"hotel-checkout/tests/common/httptest"
	commandsmock "hotel-checkout/tests/mock/commands"
	queriesmock "hotel-checkout/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 168 * time.Hour
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	jwtService := jwt.NewService("test-secret-key-for-testing-only", accessTTL, refreshTTL)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, jwtService, config.NewTestConfig())

	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/refresh", s.handler.Refresh)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) {
		// RequireAuth の代わり
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			c.Set("user_id", uuid.New())
		}
		s.handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func tokenPair() *commands.TokenPair {
	return &commands.TokenPair{AccessToken: "access-jwt", RefreshToken: "refresh-jwt"}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"

	s.Run("success: customer and staff logins set both token cookies", func() {
		for _, b := range []*builder.AuthBuilder{builder.NewAuthBuilder(), builder.NewAuthBuilder().AsSupport()} {
			req := b.BuildDTO()
			view := builder.NewUserBuilder().WithEmail(b.Email).WithRole(string(b.Role)).BuildReadModel()

			s.mockCommands.EXPECT().Login(gomock.Any(), req).
				Return(&commands.LoginResult{UserID: view.ID, TokenPair: tokenPair()}, nil)
			s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), view.ID).Return(view, nil)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req, "")

			var res resdto.LoginResponse
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
			s.Equal(b.Email, res.User.Email)
			s.Equal(string(b.Role), res.User.Role)

			access := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
			s.Require().NotNil(access)
			s.Equal("access-jwt", access.Value)
			s.Equal(int(accessTTL.Seconds()), access.MaxAge)
			s.True(access.HttpOnly)

			refresh := httptest.ExtractCookie(rec, cookie.RefreshTokenCookieName)
			s.Require().NotNil(refresh)
			s.Equal(int(refreshTTL.Seconds()), refresh.MaxAge)
		}
	})

	s.Run("error: 400 on malformed credentials", func() {
		cases := []struct {
			name string
			body any
		}{
			{name: "invalid email", body: builder.NewAuthBuilder().With(func(b *builder.AuthBuilder) { b.Email = "invalid-email" }).BuildDTO()},
			{name: "7-character password", body: builder.NewAuthBuilder().With(func(b *builder.AuthBuilder) { b.Password = strings.Repeat("a", 7) }).BuildDTO()},
			{name: "empty email", body: builder.NewAuthBuilder().With(func(b *builder.AuthBuilder) { b.Email = "" }).BuildDTO()},
			{name: "missing password", body: map[string]any{"email": "customer@example.com"}},
			{name: "missing body", body: nil},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, tc.body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
				s.Nil(httptest.ExtractCookie(rec, cookie.AccessTokenCookieName))
			})
		}
	})

	s.Run("success: accepts an 8-character password", func() {
		req := builder.NewAuthBuilder().With(func(b *builder.AuthBuilder) { b.Password = "password" }).BuildDTO()
		view := builder.NewUserBuilder().BuildReadModel()
		s.mockCommands.EXPECT().Login(gomock.Any(), req).
			Return(&commands.LoginResult{UserID: view.ID, TokenPair: tokenPair()}, nil)
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "invalid credentials", commandsError: commands.ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized, expectedMsg: "Invalid email or password"},
			{name: "unknown email looks like a bad password", commandsError: commands.ErrUserNotFound, expectedStatus: http.StatusUnauthorized, expectedMsg: "Invalid email or password"},
			{name: "user inactive", commandsError: commands.ErrUserInactive, expectedStatus: http.StatusForbidden, expectedMsg: "Account is inactive"},
			{name: "internal server error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}

		req := builder.NewAuthBuilder().BuildDTO()
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Login(gomock.Any(), req).Return(nil, tc.commandsError)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestRefresh() {
	url := "/auth/refresh"

	s.Run("success: the cookie wins over the body", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "from-cookie").Return(tokenPair(), nil)

		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodPost, url,
			reqdto.RefreshRequest{RefreshToken: "from-body"},
			[]*http.Cookie{{Name: cookie.RefreshTokenCookieName, Value: "from-cookie"}}, "")

		var res resdto.RefreshResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("access-jwt", res.AccessToken)
		s.NotNil(httptest.ExtractCookie(rec, cookie.RefreshTokenCookieName))
	})

	s.Run("success: body token for API clients", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "from-body").Return(tokenPair(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.RefreshRequest{RefreshToken: "from-body"}, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: statuses", func() {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{name: "invalid token", err: commands.ErrTokenValidation, status: http.StatusUnauthorized},
			{name: "inactive account", err: commands.ErrUserInactive, status: http.StatusForbidden},
			{name: "signing failure", err: commands.ErrTokenGeneration, status: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "t").Return(nil, tc.err)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.RefreshRequest{RefreshToken: "t"}, "")
				s.Equal(tc.status, rec.Code)
			})
		}
	})

	s.Run("error: no token at all", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Refresh token required")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: clears only the token cookies", func() {
		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodPost, "/auth/logout", nil,
			[]*http.Cookie{{Name: cookie.SessionCookieName, Value: "S"}}, "bearer-token")

		s.Equal(http.StatusNoContent, rec.Code)
		access := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(access)
		s.Negative(access.MaxAge)
		// A guest quote in progress survives logout.
		s.Nil(httptest.ExtractCookie(rec, cookie.SessionCookieName))
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns the staff role", func() {
		view := builder.NewUserBuilder().WithRole(string(user.RoleSupport)).BuildReadModel()
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), gomock.Any()).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.Email, response["email"])
		s.Equal(string(user.RoleSupport), response["role"])
	})

	s.Run("error: returns 500 when user_id missing in context", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queryErr       error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "user not found", queryErr: queries.ErrUserNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "User not found"},
			{name: "user inactive", queryErr: queries.ErrUserInactive, expectedStatus: http.StatusForbidden, expectedMsg: "Account is inactive"},
			{name: "internal server error", queryErr: errors.New("database error"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), gomock.Any()).Return(nil, tc.queryErr)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
