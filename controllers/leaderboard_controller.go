package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zerofake/zerofake/config"
	"github.com/zerofake/zerofake/models"
	"github.com/zerofake/zerofake/utils"
)

const (
	leaderboardCacheKey     = "cache:leaderboard:global"
	leaderboardRoomCacheKey = "cache:leaderboard:room:"
	leaderboardLimit        = 50
)

// LeaderboardController ranks trainees by points. Boards are cached in Redis
// for a short TTL and invalidated whenever points are written.
type LeaderboardController struct {
	db *gorm.DB
}

// NewLeaderboardController creates a LeaderboardController.
func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{db: db}
}

type leaderboardRow struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Points      int    `json:"points"`
	Streak      int    `json:"streak"`
	Rank        int    `json:"rank"`
}

// Global returns the top trainees platform-wide.
func (lb *LeaderboardController) Global(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(leaderboardCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var users []models.User
	if err := lb.db.Order("points DESC, id ASC").Limit(leaderboardLimit).Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load leaderboard")
		return
	}

	rows := rankUsers(users)
	payload := gin.H{"entries": rows}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(leaderboardCacheKey, wrapper, leaderboardTTL())
	utils.Success(ctx, payload)
}

// Room returns the ranking scoped to one training room's members. Only
// members may view it.
func (lb *LeaderboardController) Room(ctx *gin.Context) {
	roomID, ok := lb.requireMembership(ctx)
	if !ok {
		return
	}

	cacheKey := leaderboardRoomCacheKey + strconv.FormatUint(uint64(roomID), 10)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var users []models.User
	err := lb.db.
		Joins("JOIN room_members ON room_members.user_id = users.id").
		Where("room_members.room_id = ?", roomID).
		Order("users.points DESC, users.id ASC").
		Limit(leaderboardLimit).
		Find(&users).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to load room leaderboard")
		return
	}

	rows := rankUsers(users)
	payload := gin.H{"room_id": roomID, "entries": rows}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, leaderboardTTL())
	utils.Success(ctx, payload)
}

func (lb *LeaderboardController) requireMembership(ctx *gin.Context) (roomID uint, ok bool) {
	uid, authed := currentUser(ctx)
	if !authed {
		return 0, false
	}
	id64, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40012, "invalid room id")
		return 0, false
	}
	rid := uint(id64)

	var count int64
	if err := lb.db.Model(&models.RoomMember{}).
		Where("room_id = ? AND user_id = ?", rid, uid).
		Count(&count).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to check membership")
		return 0, false
	}
	if count == 0 {
		utils.Error(ctx, http.StatusForbidden, 40310, "not a member of this room")
		return 0, false
	}
	return rid, true
}

func rankUsers(users []models.User) []leaderboardRow {
	rows := make([]leaderboardRow, 0, len(users))
	for i, u := range users {
		rows = append(rows, leaderboardRow{
			UserID:      u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Points:      u.Points,
			Streak:      u.Streak,
			Rank:        i + 1,
		})
	}
	return rows
}

func leaderboardTTL() time.Duration {
	return time.Duration(config.Get().LeaderboardCacheTTLSec) * time.Second
}

// invalidateLeaderboards drops every cached board after a points write. Room
// boards share a key prefix, so one prefix sweep covers them all.
func invalidateLeaderboards() {
	utils.CacheDelete(leaderboardCacheKey)
	utils.InvalidateByPrefix(leaderboardRoomCacheKey)
}
