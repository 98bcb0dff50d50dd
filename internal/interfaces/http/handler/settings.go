package handler

import (
	"github.com/bayup/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// SettingsHandler manages the store's tax rates and shipping options
type SettingsHandler struct {
	BaseHandler
	settings *finance.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settings *finance.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// ListTaxRates godoc
// @ID           listTaxRate
// @Summary      List tax rates
// @Tags         settings
// @Produce      json
// @Success      200 {object} APIResponse[[]finance.TaxRateResponse]
// @Security     BearerAuth
// @Router       /settings/tax-rates [get]
func (h *SettingsHandler) ListTaxRates(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	rates, err := h.settings.ListTaxRates(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rates)
}

// CreateTaxRate godoc
// @ID           createTaxRate
// @Summary      Create a tax rate
// @Description  A rate flagged as default clears the flag on the others
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body finance.TaxRateRequest true "Tax rate"
// @Success      201 {object} APIResponse[finance.TaxRateResponse]
// @Security     BearerAuth
// @Router       /settings/tax-rates [post]
func (h *SettingsHandler) CreateTaxRate(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req finance.TaxRateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	rate, err := h.settings.CreateTaxRate(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rate)
}

// UpdateTaxRate godoc
// @ID           updateTaxRate
// @Summary      Update a tax rate
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        id      path string                 true "Tax rate ID"
// @Param        request body finance.TaxRateRequest true "Tax rate"
// @Success      200 {object} APIResponse[finance.TaxRateResponse]
// @Security     BearerAuth
// @Router       /settings/tax-rates/{id} [put]
func (h *SettingsHandler) UpdateTaxRate(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req finance.TaxRateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	rate, err := h.settings.UpdateTaxRate(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rate)
}

// DeleteTaxRate godoc
// @ID           deleteTaxRate
// @Summary      Delete a tax rate
// @Tags         settings
// @Param        id path string true "Tax rate ID"
// @Success      204
// @Security     BearerAuth
// @Router       /settings/tax-rates/{id} [delete]
func (h *SettingsHandler) DeleteTaxRate(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.settings.DeleteTaxRate(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListShippingOptions godoc
// @ID           listShippingOption
// @Summary      List shipping options
// @Tags         settings
// @Produce      json
// @Success      200 {object} APIResponse[[]finance.ShippingOptionResponse]
// @Security     BearerAuth
// @Router       /settings/shipping-options [get]
func (h *SettingsHandler) ListShippingOptions(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	options, err := h.settings.ListShippingOptions(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, options)
}

// CreateShippingOption godoc
// @ID           createShippingOption
// @Summary      Create a shipping option
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body finance.ShippingOptionRequest true "Shipping option"
// @Success      201 {object} APIResponse[finance.ShippingOptionResponse]
// @Security     BearerAuth
// @Router       /settings/shipping-options [post]
func (h *SettingsHandler) CreateShippingOption(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req finance.ShippingOptionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	option, err := h.settings.CreateShippingOption(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, option)
}

// UpdateShippingOption godoc
// @ID           updateShippingOption
// @Summary      Update a shipping option
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        id      path string                        true "Shipping option ID"
// @Param        request body finance.ShippingOptionRequest true "Shipping option"
// @Success      200 {object} APIResponse[finance.ShippingOptionResponse]
// @Security     BearerAuth
// @Router       /settings/shipping-options/{id} [put]
func (h *SettingsHandler) UpdateShippingOption(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req finance.ShippingOptionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	option, err := h.settings.UpdateShippingOption(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, option)
}

// DeleteShippingOption godoc
// @ID           deleteShippingOption
// @Summary      Delete a shipping option
// @Tags         settings
// @Param        id path string true "Shipping option ID"
// @Success      204
// @Security     BearerAuth
// @Router       /settings/shipping-options/{id} [delete]
func (h *SettingsHandler) DeleteShippingOption(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.settings.DeleteShippingOption(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
