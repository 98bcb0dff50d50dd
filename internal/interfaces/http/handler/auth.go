package handler

import (
	"github.com/bayup/backend/internal/application/identity"
	"github.com/bayup/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// @ID           registerAuth
// @Summary      Create a store owner account
// @Description  Signs up a new store owner on the default plan and sends the welcome email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RegisterRequest true "Account data"
// @Success      201 {object} APIResponse[identity.UserResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req identity.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Login godoc
// @ID           loginAuth
// @Summary      User login
// @Description  Authenticate with email (or username) and password. Accepts JSON or an OAuth2 password form.
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        request body identity.LoginRequest true "Login credentials"
// @Success      200 {object} APIResponse[identity.TokenResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if err := c.ShouldBindWith(&req, loginBinding(c)); err != nil {
		if details := middleware.ValidationDetails(err); len(details) > 0 {
			h.ValidationError(c, details)
			return
		}
		h.BadRequest(c, "Invalid request body")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, token)
}

func loginBinding(c *gin.Context) binding.Binding {
	if c.ContentType() == binding.MIMEJSON {
		return binding.JSON
	}
	return binding.Form
}

// IdPLogin godoc
// @ID           idpLoginAuth
// @Summary      Exchange an identity provider token
// @Description  Verifies the external token, provisions the account on first use and returns a local token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.IdPLoginRequest true "Provider token"
// @Success      200 {object} APIResponse[identity.TokenResponse]
// @Failure      401 {object} ErrorResponse
// @Router       /auth/idp-login [post]
func (h *AuthHandler) IdPLogin(c *gin.Context) {
	var req identity.IdPLoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	token, err := h.authService.IdPLogin(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, token)
}

// Logout godoc
// @ID           logoutAuth
// @Summary      User logout
// @Description  Revokes the current bearer token
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[MessageData]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	if p == nil {
		h.currentUser(c)
		return
	}
	if err := h.authService.Logout(c.Request.Context(), p.Claims); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageData{Message: "Logged out"})
}

// Me godoc
// @ID           meAuth
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[identity.UserResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	resp, err := h.authService.Me(c.Request.Context(), user.Email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
