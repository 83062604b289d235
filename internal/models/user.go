package models

import (
	"fmt"
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleOwner UserRole = "owner"
)

func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleUser, RoleOwner:
		return UserRole(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

func ParseUserStatus(s string) (UserStatus, error) {
	switch UserStatus(s) {
	case UserActive, UserInactive:
		return UserStatus(s), nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Name              string     `gorm:"not null" json:"name"`
	Email             string     `gorm:"unique;not null" json:"email"`
	Password          string     `gorm:"not null" json:"-"`
	Role              UserRole   `gorm:"type:varchar(16);not null;default:'user'" json:"role"`
	Status            UserStatus `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	NotificationOptIn bool       `gorm:"not null;default:false" json:"notificationOptIn"`
	ProfilePicture    *string    `json:"profilePicture"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}
