package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Photo struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Caption      *string `json:"caption"`
	ObjectKey    string  `gorm:"not null;uniqueIndex" json:"-"`
	URL          string  `gorm:"not null" json:"url"`
	DisplayOrder int     `gorm:"default:0" json:"displayOrder"`

	UploadedByUserID *uuid.UUID `gorm:"type:uuid" json:"uploadedByUserId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Photo) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
