package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-backend/config"
	"wedding-backend/models"
	"wedding-backend/services"
	"wedding-backend/utils"
)

type PhotoController struct {
	Photos *services.PhotoService
}

// UploadPhoto stores a multipart image in S3 and records it
func (pc *PhotoController) UploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Missing file upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Could not read file upload")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("photos/%s%s", uuid.New(), filepath.Ext(fileHeader.Filename))
	url, err := pc.Photos.Upload(c.Request.Context(), key, file, contentType)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to upload photo")
		return
	}

	photo := models.Photo{
		ObjectKey: key,
		URL:       url,
	}
	if caption := c.PostForm("caption"); caption != "" {
		photo.Caption = &caption
	}
	if raw, exists := c.Get("userId"); exists {
		if str, ok := raw.(string); ok {
			if parsed, err := uuid.Parse(str); err == nil {
				photo.UploadedByUserID = &parsed
			}
		}
	}

	if err := config.DB.Create(&photo).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save photo")
		return
	}

	c.JSON(http.StatusCreated, photo)
}

// GetPhotos lists the gallery in display order
func (pc *PhotoController) GetPhotos(c *gin.Context) {
	var photos []models.Photo
	if err := config.DB.Order("display_order, created_at").Find(&photos).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve photos")
		return
	}

	c.JSON(http.StatusOK, photos)
}

// DeletePhoto removes the object from S3 and the row
func (pc *PhotoController) DeletePhoto(c *gin.Context) {
	photoUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid photo ID format")
		return
	}

	var photo models.Photo
	if err := config.DB.First(&photo, "id = ?", photoUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Photo not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := pc.Photos.Delete(c.Request.Context(), photo.ObjectKey); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete photo from storage")
		return
	}

	if err := config.DB.Delete(&photo).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete photo")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted"})
}
