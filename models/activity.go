package models

import "time"

// DailyActivity stores aggregated request counts per day and API path. The
// stats endpoint sums today's rows to report daily active usage.
type DailyActivity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"index:idx_activity_date_path,unique;size:10;not null" json:"date"`
	Path      string    `gorm:"index:idx_activity_date_path,unique;size:255;not null" json:"path"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
