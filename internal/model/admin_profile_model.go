package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AdminProfile struct {
	Id           uuid.UUID                   `gorm:"type:char(36);primaryKey"`
	Name         string                      `gorm:"type:varchar(200);not null"`
	Position     string                      `gorm:"type:varchar(200)"`
	Location     string                      `gorm:"type:varchar(200)"`
	Introduction string                      `gorm:"type:text"`
	Education    string                      `gorm:"type:text"`
	Skills       datatypes.JSONSlice[string]
	Email        string                      `gorm:"type:varchar(255)"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt    time.Time                   `gorm:"autoUpdateTime"`
}

func (AdminProfile) TableName() string {
	return "admin_profiles"
}
