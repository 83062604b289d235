package models

import (
	"fmt"
	"regexp"
	"time"
)

var durationPattern = regexp.MustCompile(`^\d{1,3}:[0-5]\d$`)

// ValidateDuration checks the "MM:SS" form used for sermon lengths.
func ValidateDuration(s string) error {
	if !durationPattern.MatchString(s) {
		return fmt.Errorf("duration must be in MM:SS format")
	}
	return nil
}

type Sermon struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Date        time.Time `gorm:"not null" json:"date"`
	MediaID     uint      `gorm:"not null" json:"mediaId"`
	Media       *Media    `gorm:"foreignKey:MediaID" json:"media,omitempty"`
	Duration    string    `gorm:"not null" json:"duration"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
