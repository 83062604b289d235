package models

import (
	"fmt"
	"time"
)

type ActionKind string

const (
	ActionUserSignup     ActionKind = "user_signup"
	ActionUserLogin      ActionKind = "user_login"
	ActionUserUpdate     ActionKind = "user_update"
	ActionUserDelete     ActionKind = "user_delete"
	ActionContactCreate  ActionKind = "contact_create"
	ActionContactUpdate  ActionKind = "contact_update"
	ActionContactRespond ActionKind = "contact_respond"
	ActionContactDelete  ActionKind = "contact_delete"
	ActionDonationCreate ActionKind = "donation_create"
	ActionDonationUpdate ActionKind = "donation_update"
	ActionDonationDelete ActionKind = "donation_delete"
	ActionMediaUpload    ActionKind = "media_upload"
	ActionMediaUpdate    ActionKind = "media_update"
	ActionMediaDelete    ActionKind = "media_delete"
	ActionEventCreate    ActionKind = "event_create"
	ActionEventUpdate    ActionKind = "event_update"
	ActionEventDelete    ActionKind = "event_delete"
	ActionSermonCreate   ActionKind = "sermon_create"
	ActionSermonUpdate   ActionKind = "sermon_update"
	ActionSermonDelete   ActionKind = "sermon_delete"
)

var actionKinds = map[ActionKind]bool{
	ActionUserSignup: true, ActionUserLogin: true, ActionUserUpdate: true, ActionUserDelete: true,
	ActionContactCreate: true, ActionContactUpdate: true, ActionContactRespond: true, ActionContactDelete: true,
	ActionDonationCreate: true, ActionDonationUpdate: true, ActionDonationDelete: true,
	ActionMediaUpload: true, ActionMediaUpdate: true, ActionMediaDelete: true,
	ActionEventCreate: true, ActionEventUpdate: true, ActionEventDelete: true,
	ActionSermonCreate: true, ActionSermonUpdate: true, ActionSermonDelete: true,
}

func ParseActionKind(s string) (ActionKind, error) {
	if actionKinds[ActionKind(s)] {
		return ActionKind(s), nil
	}
	return "", fmt.Errorf("invalid action %q", s)
}

// Activity is an append-only audit record. UserID is nil for actions
// taken by unauthenticated visitors or the system itself.
type Activity struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    *uint      `gorm:"index" json:"userId"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action    ActionKind `gorm:"type:varchar(32);not null" json:"action"`
	Details   string     `gorm:"not null" json:"details"`
	CreatedAt time.Time  `json:"createdAt"`
}
