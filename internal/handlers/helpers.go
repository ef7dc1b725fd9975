package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"inventory_backend/internal/middleware"
	"inventory_backend/internal/models"
	"inventory_backend/internal/services"
	"inventory_backend/internal/validation"
	"inventory_backend/pkg/utils"
)

const (
	flashCookie       = "flash"
	flashCookieMaxAge = 60 // seconds
)

// currentUserID returns the id set by the auth middleware.
func currentUserID(c *gin.Context) (int64, bool) {
	userID := c.GetInt64(middleware.ContextUserID)
	if userID <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", ""))
		return 0, false
	}
	return userID, true
}

func parseIDParam(c *gin.Context, entity string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil || id <= 0 {
		utils.RespondBadRequest(c, "Invalid "+entity+" ID format.", c.Param("id"))
		return 0, false
	}
	return id, true
}

// listQuery reads the rows, page and search query parameters of a list view.
func listQuery(c *gin.Context) (string, models.PageRequest) {
	page := utils.StrToPositiveInt(c.Query("page"), 1)
	rows := utils.StrToPositiveInt(c.Query("rows"), models.DefaultPerPage)
	return strings.TrimSpace(c.Query("search")), models.NewPageRequest(page, rows)
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

// redirectTarget is the Referer when it points back at this host, fallback otherwise.
func redirectTarget(c *gin.Context, fallback string) string {
	ref := c.Request.Referer()
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) {
		return fallback
	}
	return ref
}

// respondMutation answers a successful create, update or delete. JSON clients get
// {"success": true, "message": ...}; others are redirected back with a flash message.
func respondMutation(c *gin.Context, status int, message, fallback string, data interface{}) {
	if wantsJSON(c) {
		body := gin.H{"success": true, "message": message}
		if data != nil {
			body["data"] = data
		}
		c.JSON(status, body)
		return
	}
	c.SetCookie(flashCookie, message, flashCookieMaxAge, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, redirectTarget(c, fallback))
}

// popFlash returns the pending flash message and clears it.
func popFlash(c *gin.Context) string {
	message, err := c.Cookie(flashCookie)
	if err != nil || message == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return message
}

// respondServiceError maps service errors to API errors. action names the
// failed operation in 500 responses, e.g. "update category".
func respondServiceError(c *gin.Context, err error, entity, action string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		utils.RespondValidationFailed(c, verrs)
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "This action is unauthorized.", ""))
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, entity+" not found.", ""))
	case errors.Is(err, services.ErrInUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, entity+" cannot be deleted while products use it.", ""))
	default:
		utils.LogError(err, "Handler: failed to "+action, map[string]interface{}{
			"user_id":    c.GetInt64(middleware.ContextUserID),
			"request_id": c.GetString(middleware.ContextRequestID),
		})
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}

func respondBindError(c *gin.Context, err error) {
	utils.RespondBadRequest(c, "Invalid request payload.", err.Error())
}
