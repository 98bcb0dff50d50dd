package handler

import (
	"github.com/bayup/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// StaffHandler manages store staff accounts and custom roles
type StaffHandler struct {
	BaseHandler
	staffService *identity.StaffService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(staffService *identity.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// ListStaff godoc
// @ID           listStaff
// @Summary      List staff
// @Description  Lists the staff of the caller's store. Filters: role, status.
// @Tags         staff
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size"   default(20)
// @Param        role      query string false "Role"
// @Param        status    query string false "Status"
// @Success      200 {object} APIResponse[[]identity.UserResponse]
// @Security     BearerAuth
// @Router       /staff [get]
func (h *StaffHandler) ListStaff(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c, "role", "status")
	if !ok {
		return
	}
	page, err := h.staffService.ListStaff(c.Request.Context(), user, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// InviteStaff godoc
// @ID           inviteStaff
// @Summary      Invite a staff member
// @Description  Creates a staff account with a temporary password and emails the invitation
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        request body identity.InviteStaffRequest true "Invitation"
// @Success      201 {object} APIResponse[identity.InviteStaffResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /staff [post]
func (h *StaffHandler) InviteStaff(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req identity.InviteStaffRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.staffService.InviteStaff(c.Request.Context(), user, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateStaff godoc
// @ID           updateStaff
// @Summary      Update a staff member's access
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id      path string                      true "Staff ID"
// @Param        request body identity.UpdateStaffRequest true "Changes"
// @Success      200 {object} APIResponse[identity.UserResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /staff/{id} [put]
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req identity.UpdateStaffRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.staffService.UpdateStaff(c.Request.Context(), user, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteStaff godoc
// @ID           deleteStaff
// @Summary      Remove a staff member
// @Tags         staff
// @Param        id path string true "Staff ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /staff/{id} [delete]
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.staffService.DeleteStaff(c.Request.Context(), user, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListRoles godoc
// @ID           listRoles
// @Summary      List custom roles
// @Tags         roles
// @Produce      json
// @Success      200 {object} APIResponse[[]identity.CustomRoleResponse]
// @Security     BearerAuth
// @Router       /roles [get]
func (h *StaffHandler) ListRoles(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	roles, err := h.staffService.ListRoles(c.Request.Context(), user)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, roles)
}

// CreateRole godoc
// @ID           createRole
// @Summary      Create a custom role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        request body identity.CustomRoleRequest true "Role"
// @Success      201 {object} APIResponse[identity.CustomRoleResponse]
// @Security     BearerAuth
// @Router       /roles [post]
func (h *StaffHandler) CreateRole(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req identity.CustomRoleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	role, err := h.staffService.CreateRole(c.Request.Context(), user, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, role)
}

// UpdateRole godoc
// @ID           updateRole
// @Summary      Update a custom role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Role ID"
// @Param        request body identity.CustomRoleRequest true "Role"
// @Success      200 {object} APIResponse[identity.CustomRoleResponse]
// @Security     BearerAuth
// @Router       /roles/{id} [put]
func (h *StaffHandler) UpdateRole(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req identity.CustomRoleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	role, err := h.staffService.UpdateRole(c.Request.Context(), user, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// DeleteRole godoc
// @ID           deleteRole
// @Summary      Delete a custom role
// @Tags         roles
// @Param        id path string true "Role ID"
// @Success      204
// @Security     BearerAuth
// @Router       /roles/{id} [delete]
func (h *StaffHandler) DeleteRole(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.staffService.DeleteRole(c.Request.Context(), user, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
