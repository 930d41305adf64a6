package handler

import (
	"strings"

	app_errors "transhub/internal/errors"
	"transhub/internal/i18n"
	"transhub/internal/models"
	"transhub/internal/response"
	"transhub/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetSettings handles the GET /api/settings request.
// It retrieves all system settings, groups them by category, and returns them.
func (s *Server) GetSettings(c *gin.Context) {
	currentSettings := s.SettingsManager.GetSettings()
	settingsInfo := utils.GenerateSettingsMetadata(&currentSettings)

	// Translate metadata labels carried as i18n keys
	for i := range settingsInfo {
		if strings.HasPrefix(settingsInfo[i].Name, "config.") {
			settingsInfo[i].Name = i18n.Message(c, settingsInfo[i].Name)
		}
		if strings.HasPrefix(settingsInfo[i].Description, "config.") {
			settingsInfo[i].Description = i18n.Message(c, settingsInfo[i].Description)
		}
		if strings.HasPrefix(settingsInfo[i].Category, "config.") {
			settingsInfo[i].Category = i18n.Message(c, settingsInfo[i].Category)
		}
	}

	// Group settings by category while preserving order
	categorized := make(map[string][]models.SystemSettingInfo)
	var categoryOrder []string
	for _, info := range settingsInfo {
		if _, exists := categorized[info.Category]; !exists {
			categoryOrder = append(categoryOrder, info.Category)
		}
		categorized[info.Category] = append(categorized[info.Category], info)
	}

	var responseData []models.CategorizedSettings
	for _, categoryName := range categoryOrder {
		responseData = append(responseData, models.CategorizedSettings{
			CategoryName: categoryName,
			Settings:     categorized[categoryName],
		})
	}

	response.Success(c, responseData)
}

// UpdateSettings handles the PUT /api/settings request.
func (s *Server) UpdateSettings(c *gin.Context) {
	var updates map[string]string
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	if len(updates) == 0 {
		response.Error(c, app_errors.NewValidationError("no settings in request"))
		return
	}

	if err := s.SettingsManager.UpdateSettings(updates); err != nil {
		response.Error(c, app_errors.NewValidationError(err.Error()))
		return
	}
	response.SuccessI18n(c, "settings.updated", s.SettingsManager.GetSettings())
}
