package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/schoollib-identity/internal/application"
	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/internal/interface/middleware"
	"github.com/oksasatya/schoollib-identity/pkg/response"
	"github.com/oksasatya/schoollib-identity/pkg/validation"
)

type UserHandler struct {
	Svc    ProfileManager
	Logger *logrus.Logger
}

func NewUserHandler(svc ProfileManager, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required,role"`
}

type updateNameRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

func (h *UserHandler) reply(c *gin.Context, p *entity.UserProfile, err error, message string) {
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toProfileResponse(p), message, nil)
}

// Me GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if uid == "" {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	p, err := h.Svc.GetByExternalUserID(c.Request.Context(), uid)
	h.reply(c, p, err, "profile")
}

// Get GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	p, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	h.reply(c, p, err, "profile")
}

// Search GET /api/v1/users/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	found, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	out := make([]profileResponse, 0, len(found))
	for _, p := range found {
		out = append(out, toProfileResponse(p))
	}
	response.Success(c, http.StatusOK, out, "profiles", gin.H{"count": len(out)})
}

// ChangeRole PUT /api/v1/users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.ChangeRole(c.Request.Context(), c.Param("id"), req.Role)
	h.reply(c, p, err, "role changed")
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	p, err := h.Svc.Deactivate(c.Request.Context(), c.Param("id"))
	h.reply(c, p, err, "profile deactivated")
}

func (h *UserHandler) Reactivate(c *gin.Context) {
	p, err := h.Svc.Reactivate(c.Request.Context(), c.Param("id"))
	h.reply(c, p, err, "profile reactivated")
}

// UpdateName PUT /api/v1/users/:id/name
func (h *UserHandler) UpdateName(c *gin.Context) {
	var req updateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdateName(c.Request.Context(), c.Param("id"), application.UpdateNameCommand{FirstName: req.FirstName, LastName: req.LastName})
	h.reply(c, p, err, "name updated")
}

// Delete DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "profile deleted", nil)
}
