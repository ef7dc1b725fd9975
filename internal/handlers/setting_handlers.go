package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory_backend/internal/metrics"
	"inventory_backend/internal/services"
	"inventory_backend/internal/validation"
	"inventory_backend/pkg/utils"
)

const (
	settingsPath       = "/settings/app"
	logoFormField      = "business_logo"
	settingsSaveFailed = "An error occurred while saving settings."
)

// SettingHandler holds the settings service.
type SettingHandler struct {
	settingService services.SettingService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(ss services.SettingService) *SettingHandler {
	return &SettingHandler{settingService: ss}
}

// GetApplicationSettings returns the user's settings, creating the defaults on first access.
func (h *SettingHandler) GetApplicationSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	setting, err := h.settingService.GetOrCreateSetting(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Settings", "fetch settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"setting": setting, "flash": popFlash(c)})
}

// SaveApplicationSettings handles the settings form, a multipart body with an
// optional business_logo file.
func (h *SettingHandler) SaveApplicationSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req services.SettingRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var logo *services.LogoUpload
	fileHeader, err := c.FormFile(logoFormField)
	switch {
	case err == nil:
		file, openErr := fileHeader.Open()
		if openErr != nil {
			utils.LogError(openErr, "SaveApplicationSettings: failed to open uploaded logo", map[string]interface{}{"user_id": userID})
			respondBindError(c, openErr)
			return
		}
		defer file.Close()
		logo = &services.LogoUpload{Filename: fileHeader.Filename, Size: fileHeader.Size, Content: file}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// no logo sent
	default:
		respondBindError(c, err)
		return
	}

	setting, err := h.settingService.SaveSetting(c.Request.Context(), userID, req, logo)
	metrics.RecordOperation("settings", "save", err)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			utils.RespondValidationFailed(c, verrs)
			return
		}
		// the service has already logged the cause
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": settingsSaveFailed})
		return
	}
	respondMutation(c, http.StatusOK, "Settings saved successfully.", settingsPath, setting)
}
