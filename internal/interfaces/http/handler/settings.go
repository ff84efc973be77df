package handler

import (
	"github.com/gin-gonic/gin"
	settingsapp "github.com/pos/backend/internal/application/settings"
)

// SettingsHandler handles store settings API endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.Service
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingRequest represents a request to set a setting value
type UpdateSettingRequest struct {
	Value string `json:"value" binding:"max=1000"`
}

// List returns every store setting
func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.settingsService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// Get retrieves a single setting by key
func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		h.BadRequest(c, "Setting key is required")
		return
	}

	setting, err := h.settingsService.Get(c.Request.Context(), key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, setting)
}

// Set creates or updates a setting value
func (h *SettingsHandler) Set(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		h.BadRequest(c, "Setting key is required")
		return
	}

	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	setting, err := h.settingsService.Set(c.Request.Context(), key, req.Value)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, setting)
}
