package models

import (
	"fmt"
	"time"
)

type ContactStatus string

const (
	ContactUnread    ContactStatus = "unread"
	ContactRead      ContactStatus = "read"
	ContactResponded ContactStatus = "responded"
)

func ParseContactStatus(s string) (ContactStatus, error) {
	switch ContactStatus(s) {
	case ContactUnread, ContactRead, ContactResponded:
		return ContactStatus(s), nil
	}
	return "", fmt.Errorf("invalid contact status %q", s)
}

type Contact struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Name            string        `gorm:"not null" json:"name"`
	Email           string        `gorm:"not null" json:"email"`
	Message         string        `gorm:"not null" json:"message"`
	Status          ContactStatus `gorm:"type:varchar(16);not null;default:'unread'" json:"status"`
	ResponseMessage *string       `json:"responseMessage"`
	RespondedAt     *time.Time    `json:"respondedAt"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
