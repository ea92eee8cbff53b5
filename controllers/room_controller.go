package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zerofake/zerofake/models"
	"github.com/zerofake/zerofake/utils"
)

// RoomController manages shared training rooms. Joining is by invite code
// only; expired rooms are swept by the background janitor.
type RoomController struct {
	db *gorm.DB
}

// NewRoomController creates a RoomController.
func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{db: db}
}

// Create opens a room owned by the caller, who joins automatically. An
// optional TTL in hours time-boxes the room.
func (rc *RoomController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		TTLHours int    `json:"ttl_hours"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}

	name := utils.SanitizePlain(strings.TrimSpace(req.Name))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40061, "room name required")
		return
	}
	if rs := []rune(name); len(rs) > 64 {
		name = string(rs[:64])
	}

	var expiresAt *time.Time
	if req.TTLHours > 0 {
		t := time.Now().Add(time.Duration(req.TTLHours) * time.Hour)
		expiresAt = &t
	}

	room := models.Room{
		Name:       name,
		OwnerID:    userID,
		InviteCode: uuid.NewString(),
		ExpiresAt:  expiresAt,
	}

	err := rc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		return tx.Create(&models.RoomMember{RoomID: room.ID, UserID: userID, JoinedAt: time.Now()}).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to create room")
		return
	}

	utils.Success(ctx, roomView(room, 1))
}

// Join adds the caller to a room by invite code.
func (rc *RoomController) Join(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}

	var room models.Room
	if err := rc.db.Where("invite_code = ?", strings.TrimSpace(req.InviteCode)).First(&room).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40430, "room not found")
		return
	}
	if room.ExpiresAt != nil && room.ExpiresAt.Before(time.Now()) {
		utils.Error(ctx, http.StatusGone, 41001, "room has expired")
		return
	}

	member := models.RoomMember{RoomID: room.ID, UserID: userID, JoinedAt: time.Now()}
	if err := rc.db.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40930, "already a member")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to join room")
		return
	}
	utils.CacheDelete("cache:leaderboard:room:" + strconv.FormatUint(uint64(room.ID), 10))

	var count int64
	_ = rc.db.Model(&models.RoomMember{}).Where("room_id = ?", room.ID).Count(&count).Error
	utils.Success(ctx, roomView(room, count))
}

// List returns the rooms the caller belongs to.
func (rc *RoomController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var rooms []models.Room
	err := rc.db.
		Joins("JOIN room_members ON room_members.room_id = rooms.id").
		Where("room_members.user_id = ?", userID).
		Find(&rooms).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to load rooms")
		return
	}

	out := make([]gin.H, 0, len(rooms))
	for _, room := range rooms {
		var count int64
		_ = rc.db.Model(&models.RoomMember{}).Where("room_id = ?", room.ID).Count(&count).Error
		out = append(out, roomView(room, count))
	}
	utils.Success(ctx, gin.H{"rooms": out})
}

// Members lists a room's member profiles. Only members may look.
func (rc *RoomController) Members(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	id64, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40062, "invalid room id")
		return
	}
	roomID := uint(id64)

	var count int64
	if err := rc.db.Model(&models.RoomMember{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error; err != nil || count == 0 {
		utils.Error(ctx, http.StatusForbidden, 40310, "not a member of this room")
		return
	}

	var users []models.User
	err = rc.db.
		Joins("JOIN room_members ON room_members.user_id = users.id").
		Where("room_members.room_id = ?", roomID).
		Order("users.points DESC").
		Find(&users).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50083, "failed to load members")
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"user_id":      u.ID,
			"username":     u.Username,
			"display_name": u.DisplayName,
			"points":       u.Points,
			"streak":       u.Streak,
		})
	}
	utils.Success(ctx, gin.H{"room_id": roomID, "members": out})
}

func roomView(room models.Room, memberCount int64) gin.H {
	var expires *string
	if room.ExpiresAt != nil {
		s := room.ExpiresAt.UTC().Format(time.RFC3339)
		expires = &s
	}
	return gin.H{
		"id":           room.ID,
		"name":         room.Name,
		"owner_id":     room.OwnerID,
		"invite_code":  room.InviteCode,
		"expires_at":   expires,
		"member_count": memberCount,
	}
}
