package models

import "time"

// Question is a phishing-awareness trivia item. Difficulty runs 1..10 and is
// what the level generator buckets into easy/medium/hard tiers.
type Question struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Prompt      string    `gorm:"type:text;not null" json:"prompt"`
	ChoiceA     string    `gorm:"size:512;not null" json:"choice_a"`
	ChoiceB     string    `gorm:"size:512;not null" json:"choice_b"`
	ChoiceC     string    `gorm:"size:512" json:"choice_c"`
	ChoiceD     string    `gorm:"size:512" json:"choice_d"`
	Answer      int       `gorm:"not null" json:"-"`
	Difficulty  int       `gorm:"index;not null" json:"difficulty"`
	Category    string    `gorm:"size:64;index" json:"category"`
	Explanation string    `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// LevelResult records a user's best outcome for a level. Points are awarded
// only on the first completion; later replays may raise the score but not
// re-award points.
type LevelResult struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index:idx_result_user_level,unique;not null" json:"user_id"`
	Level         int       `gorm:"index:idx_result_user_level,unique;not null" json:"level"`
	Score         int       `gorm:"not null" json:"score"`
	Total         int       `gorm:"not null" json:"total"`
	PointsAwarded int       `json:"points_awarded"`
	CompletedAt   time.Time `json:"completed_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
