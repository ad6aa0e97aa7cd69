package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/schoollib-identity/internal/application"
	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/internal/interface/middleware"
	"github.com/oksasatya/schoollib-identity/pkg/helpers"
	"github.com/oksasatya/schoollib-identity/pkg/response"
	"github.com/oksasatya/schoollib-identity/pkg/validation"
)

const msgResetRequested = "If an account exists for this email, a password reset link has been sent."

type AuthHandler struct {
	Auth    Authenticator
	Reset   PasswordResetter
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(auth Authenticator, reset PasswordResetter, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Auth: auth, Reset: reset, Logger: logger, Cookies: helpers.NewCookieManager(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type resetRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

func tokenPayload(t entity.AuthenticationResult) gin.H {
	return gin.H{
		"access_token":       t.AccessToken,
		"refresh_token":      t.RefreshToken,
		"expires_in":         t.ExpiresIn,
		"refresh_expires_in": t.RefreshExpiresIn,
		"token_type":         t.TokenType,
	}
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	tokens, err := h.Auth.Login(c.Request.Context(), application.LoginCommand{Email: req.Email, Password: req.Password})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.Cookies.SetTokens(c, tokens.AccessToken, tokens.ExpiresIn, tokens.RefreshToken, tokens.RefreshExpiresIn)
	response.Success(c, http.StatusOK, tokenPayload(tokens), "login successful", nil)
}

// Refresh POST /api/v1/auth/refresh; the body wins over the cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return
		}
	}
	token := strings.TrimSpace(req.RefreshToken)
	if token == "" {
		token, _ = c.Cookie(helpers.RefreshTokenCookie)
	}
	if token == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	tokens, err := h.Auth.RefreshToken(c.Request.Context(), application.RefreshTokenCommand{RefreshToken: token})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.Cookies.SetTokens(c, tokens.AccessToken, tokens.ExpiresIn, tokens.RefreshToken, tokens.RefreshExpiresIn)
	response.Success(c, http.StatusOK, tokenPayload(tokens), "token refreshed", nil)
}

// Logout only clears the cookies; the realm session ends when the refresh
// token expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *AuthHandler) AllowedDomains(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"domains": h.Auth.AllowedDomains()}, "allowed domains", nil)
}

// RequestPasswordReset answers the same way whether or not the account exists.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req resetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Reset.RequestPasswordReset(c.Request.Context(), application.RequestPasswordResetCommand{Email: req.Email}); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, msgResetRequested, nil)
}

// ResetPassword needs a realm token for the same email (the one issued after
// the reset link was followed) or an ADMIN token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if !strings.EqualFold(p.Email, strings.TrimSpace(req.Email)) && !p.HasAnyRole(entity.RoleAdmin.String()) {
		response.Error[any](c, http.StatusForbidden, "token does not belong to this email", nil)
		return
	}
	err := h.Reset.ResetPassword(c.Request.Context(), application.ResetPasswordCommand{Email: req.Email, NewPassword: req.NewPassword})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
}
