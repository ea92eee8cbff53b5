package models

import "time"

// Room is a shared training space. InviteCode is a UUID handed out to
// friends; ExpiresAt, when set, lets the janitor prune time-boxed rooms.
type Room struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"size:64;not null" json:"name"`
	OwnerID    uint       `gorm:"index;not null" json:"owner_id"`
	InviteCode string     `gorm:"size:36;uniqueIndex;not null" json:"invite_code"`
	ExpiresAt  *time.Time `gorm:"index" json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	Members    []RoomMember `json:"-"`
}

// RoomMember joins users to rooms.
type RoomMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	RoomID   uint      `gorm:"index:idx_room_member,unique;not null" json:"room_id"`
	UserID   uint      `gorm:"index:idx_room_member,unique;not null" json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}
