package model

import (
	"time"

	"github.com/google/uuid"
)

// AdModel is the GORM-specific struct for the 'ads' table.
type AdModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Description string    `gorm:"type:text;not null"`
	Budget      string    `gorm:"type:decimal(12,2);not null"`
	RadiusKm    float64   `gorm:"type:decimal(8,3);not null"`
	Latitude    float64   `gorm:"type:decimal(10,8);not null"`
	Longitude   float64   `gorm:"type:decimal(11,8);not null"`
	VideoURL    string    `gorm:"type:text"`
	ImageURL    string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (AdModel) TableName() string {
	return "ads"
}
