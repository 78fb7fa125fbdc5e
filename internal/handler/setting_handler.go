package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/plumecms/plume-backend/internal/common"
	"github.com/plumecms/plume-backend/internal/domain"
	"github.com/plumecms/plume-backend/internal/middleware"
	"github.com/plumecms/plume-backend/internal/service"
)

// SettingHandler handles HTTP requests for site settings
type SettingHandler struct {
	service *service.SettingService
}

// NewSettingHandler creates a new SettingHandler
func NewSettingHandler(service *service.SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

// ListSettings godoc
// @Summary      List settings
// @Description  Returns every known setting key with its effective value (admin only)
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse
// @Router       /settings [get]
func (h *SettingHandler) ListSettings(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	data, err := h.service.All()
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// UpdateSetting godoc
// @Summary      Update a setting
// @Description  Sets a known setting key; unknown keys are rejected (admin only)
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key      path  string  true  "setting key"
// @Param        request  body  object  true  "value payload"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /settings/{key} [put]
func (h *SettingHandler) UpdateSetting(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var req struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	key := c.Param("key")
	if err := h.service.Set(key, req.Value); err != nil {
		common.FailResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"key": key, "value": req.Value}, nil)
}

func requireAdmin(c *gin.Context) bool {
	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required")
		return false
	}
	if !actor.HasRole(domain.RoleAdmin) {
		common.ErrorResponse(c, 403, "Admin role required")
		return false
	}
	return true
}
