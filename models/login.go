package models

import "time"

// LoginRecord is one credited check-in day for a user. Rows are append-only;
// the unique (user_id, login_date) index is what makes the daily credit
// at-most-once even when two sessions race past the fast guard.
type LoginRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index:idx_login_user_date,unique;not null" json:"user_id"`
	LoginAt        time.Time `gorm:"not null" json:"login_at"`
	LoginDate      string    `gorm:"index:idx_login_user_date,unique;size:10;not null" json:"login_date"`
	PointsAwarded  int       `json:"points_awarded"`
	StreakAchieved int       `json:"streak_achieved"`
	CreatedAt      time.Time `json:"created_at"`
}
