package api

import (
	"errors"
	"net/http"

	"clinic-scheduler/internal/handler/dto/request"
	"clinic-scheduler/internal/handler/dto/response"
	"clinic-scheduler/internal/handler/httperr"
	"clinic-scheduler/internal/handler/middleware"
	"clinic-scheduler/internal/pkg/config"
	"clinic-scheduler/internal/pkg/cookie"
	"clinic-scheduler/internal/pkg/errs"
	"clinic-scheduler/internal/pkg/jwt"
	"clinic-scheduler/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	commands   commands.AuthCommands
	jwtService *jwt.Service
	cookieCfg  config.CookieConfig
}

func NewAuthHandler(authCommands commands.AuthCommands, jwtService *jwt.Service, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		commands:   authCommands,
		jwtService: jwtService,
		cookieCfg:  cfg.Cookie,
	}
}

// Login authenticates by email and password, sets the access token cookie
// and returns the token for clients that prefer the Authorization header.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request body", nil)
		return
	}

	result, err := h.commands.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidCredentials):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		case errors.Is(err, errs.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is deactivated", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to login", nil)
		}
		return
	}

	cookie.SetAccessTokenCookie(c, h.cookieCfg, result.Token, h.jwtService.TokenDuration())
	c.JSON(http.StatusOK, response.ToLoginResponse(result.Token, result.User))
}

// Logout clears the access token cookie.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessTokenCookie(c, h.cookieCfg)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the identity bound to the current token.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing user context"), "Authentication required", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	c.JSON(http.StatusOK, response.MeResponse{
		UserID: userID,
		Role:   string(role),
	})
}
