package models

import "time"

// Friendship status values.
const (
	FriendPending  = "pending"
	FriendAccepted = "accepted"
	FriendDeclined = "declined"
)

// Friendship links a requester to an addressee. A single row represents the
// relationship in both directions once accepted.
type Friendship struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequesterID uint      `gorm:"index:idx_friend_pair,unique;not null" json:"requester_id"`
	AddresseeID uint      `gorm:"index:idx_friend_pair,unique;not null" json:"addressee_id"`
	Status      string    `gorm:"size:16;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
