package handler

import (
	"github.com/bayup/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the platform console. Routes sit behind
// RequireSuperAdmin.
type AdminHandler struct {
	BaseHandler
	adminService *identity.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *identity.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListPlans godoc
// @ID           listPlansAdmin
// @Summary      List subscription plans
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[[]identity.PlanResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/plans [get]
func (h *AdminHandler) ListPlans(c *gin.Context) {
	plans, err := h.adminService.ListPlans(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plans)
}

// CreatePlan godoc
// @ID           createPlanAdmin
// @Summary      Create a subscription plan
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body identity.CreatePlanRequest true "Plan"
// @Success      201 {object} APIResponse[identity.PlanResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/plans [post]
func (h *AdminHandler) CreatePlan(c *gin.Context) {
	var req identity.CreatePlanRequest
	if !h.bindJSON(c, &req) {
		return
	}
	plan, err := h.adminService.CreatePlan(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

// Stats godoc
// @ID           statsAdmin
// @Summary      Platform statistics
// @Description  Store count and revenue per store across the platform
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[identity.PlatformStatsResponse]
// @Security     BearerAuth
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.PlatformStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
