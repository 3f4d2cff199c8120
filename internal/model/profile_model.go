package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Profile struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WhatsappNumber string         `gorm:"type:varchar(32);uniqueIndex;not null"`
	FirstName      string         `gorm:"type:varchar(128)"`
	LastName       string         `gorm:"type:varchar(128)"`
	DisplayName    string         `gorm:"type:varchar(255)"`
	Tags           datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
