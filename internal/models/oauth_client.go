package models

import (
	"time"

	"gorm.io/gorm"
)

// OAuthClient is a registered API client allowed to obtain tokens via the
// client_credentials grant. Secret holds a bcrypt hash, never plain text.
type OAuthClient struct {
	ID        string `gorm:"primaryKey"`
	Secret    string `gorm:"not null"`
	Name      string
	Domain    string
	UserID    string // user the client acts on behalf of (UUID)
	Scopes    string // space-separated list of allowed scopes
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}
