package models

import (
	"fmt"
	"time"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(s) {
	case MediaImage, MediaVideo:
		return MediaType(s), nil
	}
	return "", fmt.Errorf("invalid media type %q", s)
}

// Media references a binary asset held by the external asset store.
// AssetID is the store's object key, needed for remote deletion.
type Media struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	URL         string    `gorm:"not null" json:"url"`
	AssetID     string    `gorm:"not null" json:"assetId"`
	Type        MediaType `gorm:"type:varchar(8);not null" json:"type"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
