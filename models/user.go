package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a trainee profile. Passwords are stored as bcrypt hashes only.
// Timezone is resolved once at registration (IANA name, default UTC) and is
// never re-derived from the ambient environment afterwards.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"size:255" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Provider     string         `gorm:"size:32" json:"provider"`
	ProviderID   string         `gorm:"size:255" json:"provider_id"`
	RegisterIP   string         `gorm:"size:45" json:"-"`
	AvatarURL    string         `gorm:"size:512" json:"avatar_url"`
	DisplayName  string         `gorm:"size:64" json:"display_name"`
	Timezone     string         `gorm:"size:64;not null;default:'UTC'" json:"timezone"`
	Points       int            `gorm:"default:0" json:"points"`
	Streak       int            `gorm:"default:0" json:"streak"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	TutorialDone bool           `gorm:"default:false" json:"tutorial_done"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Logins       []LoginRecord  `json:"-"`
}

// Location resolves the stored IANA zone, falling back to UTC when the stored
// name no longer loads (e.g. a zone dropped from the host tzdata).
func (u *User) Location() *time.Location {
	if u.Timezone != "" {
		if loc, err := time.LoadLocation(u.Timezone); err == nil {
			return loc
		}
	}
	return time.UTC
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
