package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zerofake/zerofake/models"
	"github.com/zerofake/zerofake/streak"
	"github.com/zerofake/zerofake/utils"
)

// StatsController exposes platform-wide dashboard numbers. Results are cached
// briefly since they back a public page.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a StatsController.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

const statsCacheKey = "cache:stats:overview"

// Overview reports user totals, check-in activity, and today's traffic.
// Platform-level days are bucketed in UTC.
func (sc *StatsController) Overview(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(statsCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	today := streak.DateOf(time.Now(), time.UTC).String()

	var userCount int64
	if err := sc.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to load stats")
		return
	}

	var checkinsTotal int64
	_ = sc.db.Model(&models.LoginRecord{}).Count(&checkinsTotal).Error

	var checkinsToday int64
	_ = sc.db.Model(&models.LoginRecord{}).Where("login_date = ?", today).Count(&checkinsToday).Error

	var levelsCompleted int64
	_ = sc.db.Model(&models.LevelResult{}).Count(&levelsCompleted).Error

	var requestsToday int64
	_ = sc.db.Model(&models.DailyActivity{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count), 0)").
		Scan(&requestsToday).Error

	payload := gin.H{
		"users":            userCount,
		"checkins_total":   checkinsTotal,
		"checkins_today":   checkinsToday,
		"levels_completed": levelsCompleted,
		"requests_today":   requestsToday,
		"generated_at":     time.Now().UTC().Format(time.RFC3339),
	}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(statsCacheKey, wrapper, time.Minute)
	utils.Success(ctx, payload)
}
