package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zerofake/zerofake/config"
	"github.com/zerofake/zerofake/middleware"
	"github.com/zerofake/zerofake/models"
	"github.com/zerofake/zerofake/streak"
	"github.com/zerofake/zerofake/utils"
)

// errAlreadyCredited aborts the check-in transaction without treating it as a
// failure: today's reward was granted by this or a concurrent request.
var errAlreadyCredited = errors.New("already credited today")

// CheckInController credits the daily login reward and maintains the streak
// counter. Calendar days are always the user's stored timezone, never the
// server's.
type CheckInController struct {
	db *gorm.DB
}

// NewCheckInController creates a CheckInController.
func NewCheckInController(db *gorm.DB) *CheckInController {
	return &CheckInController{db: db}
}

// DailyCheckIn records today's login for the authenticated user. The first
// call of a calendar day awards points and advances (or resets) the streak;
// repeat calls report the already-credited state.
//
// Concurrent calls are serialized on the user row, and the unique
// (user_id, login_date) index backstops the credit even if two transactions
// interleave. A user is never double-credited for one day.
func (cc *CheckInController) DailyCheckIn(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cfg := config.Get()
	now := time.Now()

	var (
		newCount int
		points   int
	)

	err := cc.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			return err
		}

		loc := user.Location()
		today := streak.DateOf(now, loc)

		// fast guard: LastLoginAt already on today's calendar date
		already, _ := streak.Advance(nil, user.LastLoginAt, loc, now)
		if already {
			newCount = user.Streak
			points = user.Points
			return errAlreadyCredited
		}

		var history []models.LoginRecord
		if err := tx.Where("user_id = ?", userID).
			Order("login_at DESC").Limit(400).
			Find(&history).Error; err != nil {
			return err
		}
		instants := make([]time.Time, 0, len(history))
		for _, rec := range history {
			instants = append(instants, rec.LoginAt)
		}

		_, newCount = streak.Advance(instants, user.LastLoginAt, loc, now)

		record := models.LoginRecord{
			UserID:         userID,
			LoginAt:        now,
			LoginDate:      today.String(),
			PointsAwarded:  cfg.DailyRewardPoints,
			StreakAchieved: newCount,
		}
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				newCount = user.Streak
				points = user.Points
				return errAlreadyCredited
			}
			return err
		}

		user.Points += cfg.DailyRewardPoints
		user.Streak = newCount
		user.LastLoginAt = &now
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"points":        user.Points,
			"streak":        user.Streak,
			"last_login_at": now,
		}).Error; err != nil {
			return err
		}

		points = user.Points
		return nil
	})

	switch {
	case err == nil:
		invalidateLeaderboards()
		utils.Success(ctx, gin.H{
			"credited_today": true,
			"first_today":    true,
			"points_awarded": cfg.DailyRewardPoints,
			"streak":         newCount,
			"points":         points,
		})
	case errors.Is(err, errAlreadyCredited):
		utils.Success(ctx, gin.H{
			"credited_today": true,
			"first_today":    false,
			"points_awarded": 0,
			"streak":         newCount,
			"points":         points,
		})
	default:
		utils.Sugar.Warnw("daily check-in failed", "user_id", userID, "error", err)
		utils.Error(ctx, http.StatusInternalServerError, 50040, "check-in failed, no reward granted")
	}
}

// Status reports the authenticated user's current streak standing without
// crediting anything.
func (cc *CheckInController) Status(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := cc.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	loc := user.Location()
	creditedToday, _ := streak.Advance(nil, user.LastLoginAt, loc, time.Now())

	var lastLogin *string
	if user.LastLoginAt != nil {
		s := user.LastLoginAt.UTC().Format(time.RFC3339)
		lastLogin = &s
	}

	utils.Success(ctx, gin.H{
		"points":         user.Points,
		"streak":         user.Streak,
		"credited_today": creditedToday,
		"last_login_at":  lastLogin,
		"timezone":       user.Timezone,
	})
}

// History returns the most recent credited check-in days.
func (cc *CheckInController) History(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var records []models.LoginRecord
	if err := cc.db.Where("user_id = ?", userID).
		Order("login_date DESC").Limit(60).
		Find(&records).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load history")
		return
	}

	out := make([]gin.H, 0, len(records))
	for _, r := range records {
		out = append(out, gin.H{
			"date":            r.LoginDate,
			"points_awarded":  r.PointsAwarded,
			"streak_achieved": r.StreakAchieved,
		})
	}
	utils.Success(ctx, gin.H{"days": out})
}
