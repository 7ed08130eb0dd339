//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"clinic-scheduler/internal/domain/user"
	"clinic-scheduler/internal/handler/api"
	resdto "clinic-scheduler/internal/handler/dto/response"
	"clinic-scheduler/internal/pkg/config"
	"clinic-scheduler/internal/pkg/errs"
	"clinic-scheduler/internal/pkg/jwt"
	"clinic-scheduler/internal/usecase/commands"
	"clinic-scheduler/tests/common/builder"
	"clinic-scheduler/tests/common/helper"
	commandsmock "clinic-scheduler/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	jwtService := jwt.NewService("test-secret", time.Hour)
	s.handler = api.NewAuthHandler(s.mockCommands, jwtService, config.NewTestConfig())

	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", uuid.New())
			c.Set("user_role", user.RolePatient)
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

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := builder.NewAuthBuilder().BuildDTO()
	returnUser := builder.NewUserBuilder().BuildReadModel()
	expectedToken := "test-jwt-token"

	s.Run("success: returns 200 OK and sets the access token cookie", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).
			Return(&commands.LoginResult{Token: expectedToken, User: returnUser}, nil).Times(1)

		rec := helper.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		helper.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(expectedToken, response.Token)
		s.Equal(returnUser.Email, response.User.Email)
		s.True(strings.Contains(rec.Header().Get("Set-Cookie"), "access_token="))
	})

	s.Run("error: 401 for bad credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).
			Return(nil, errs.ErrInvalidCredentials).Times(1)

		rec := helper.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 403 for deactivated account", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).
			Return(nil, errs.ErrUserInactive).Times(1)

		rec := helper.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("error: 400 on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing email", mutate: helper.Field("email", nil)},
			{name: "invalid email", mutate: helper.Field("email", "not-an-email")},
			{name: "missing password", mutate: helper.Field("password", nil)},
			{name: "empty password", mutate: helper.Field("password", "")},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := map[string]any{
					"email":    reqBody.Email,
					"password": reqBody.Password,
				}
				tc.mutate(body)

				rec := helper.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: clears the access token cookie", func() {
		rec := helper.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.True(strings.Contains(rec.Header().Get("Set-Cookie"), "access_token=;"))
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("success: returns the token identity", func() {
		rec := helper.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "some-token")

		var response resdto.MeResponse
		helper.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.NotEqual(uuid.Nil, response.UserID)
		s.Equal("patient", response.Role)
	})

	s.Run("error: 401 without user context", func() {
		rec := helper.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
