package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-backend/config"
	"wedding-backend/models"
	"wedding-backend/services"
	"wedding-backend/utils"
)

type TemplateController struct {
	Emails *services.EmailService
}

type CreateTemplateInput struct {
	Type    string `json:"type" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	HTML    string `json:"html" binding:"required"`
}

type UpdateTemplateInput struct {
	Subject  *string `json:"subject"`
	HTML     *string `json:"html"`
	IsActive *bool   `json:"isActive"`
}

type SendInvitesInput struct {
	Resend bool `json:"resend"`
}

func validTemplateType(t string) bool {
	switch t {
	case models.TemplateInvite, models.TemplateActivities, models.TemplateEventInvite:
		return true
	}
	return false
}

// CreateTemplate creates an email template (one per type)
func (tc *TemplateController) CreateTemplate(c *gin.Context) {
	var input CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !validTemplateType(input.Type) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template type")
		return
	}

	var existing models.EmailTemplate
	if err := config.DB.Where("type = ?", input.Type).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Template for this type already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	template := models.EmailTemplate{
		Type:     input.Type,
		Subject:  input.Subject,
		HTML:     input.HTML,
		IsActive: true,
	}
	if err := config.DB.Create(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create template")
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetTemplates lists all templates
func (tc *TemplateController) GetTemplates(c *gin.Context) {
	var templates []models.EmailTemplate
	if err := config.DB.Order("type").Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

// UpdateTemplate merges a partial update
func (tc *TemplateController) UpdateTemplate(c *gin.Context) {
	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var input UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var template models.EmailTemplate
	if err := config.DB.First(&template, "id = ?", templateUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Subject != nil {
		template.Subject = *input.Subject
	}
	if input.HTML != nil {
		template.HTML = *input.HTML
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, template)
}

// SendInvites bulk-sends the invite template to send-eligible guests.
// Responds with the per-recipient error list and the overall sent count.
func (tc *TemplateController) SendInvites(c *gin.Context) {
	var input SendInvitesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		input = SendInvitesInput{}
	}

	report, err := tc.Emails.SendInvites(c.Request.Context(), input.Resend)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No active invite template")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send invites")
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetEmailLogs lists recent send attempts across channels
func (tc *TemplateController) GetEmailLogs(c *gin.Context) {
	var logs []models.EmailLog
	if err := config.DB.Order("sent_at DESC").Limit(200).Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve email logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}
