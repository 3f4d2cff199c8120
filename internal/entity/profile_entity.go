package entity

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	Id             uuid.UUID
	WhatsappNumber string
	FirstName      string
	LastName       string
	DisplayName    string
	Tags           []string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
