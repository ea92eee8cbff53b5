package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zerofake/zerofake/models"
	"github.com/zerofake/zerofake/utils"
)

// FriendController manages friend requests and listings. Friendships are a
// single row per pair; direction only matters while the request is pending.
type FriendController struct {
	db *gorm.DB
}

// NewFriendController creates a FriendController.
func NewFriendController(db *gorm.DB) *FriendController {
	return &FriendController{db: db}
}

// Request sends a friend request by username.
func (fc *FriendController) Request(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	var target models.User
	if err := fc.db.Where("username = ?", strings.TrimSpace(req.Username)).First(&target).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40420, "user not found")
		return
	}
	if target.ID == userID {
		utils.Error(ctx, http.StatusBadRequest, 40041, "cannot befriend yourself")
		return
	}

	// either direction counts as an existing relationship
	var existing models.Friendship
	err := fc.db.Where(
		"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
		userID, target.ID, target.ID, userID,
	).First(&existing).Error
	if err == nil {
		if existing.Status == models.FriendDeclined {
			// a declined pair may try again; reopen with the new direction
			existing.RequesterID = userID
			existing.AddresseeID = target.ID
			existing.Status = models.FriendPending
			if err := fc.db.Save(&existing).Error; err != nil {
				utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to send request")
				return
			}
			utils.Success(ctx, gin.H{"status": models.FriendPending})
			return
		}
		utils.Error(ctx, http.StatusConflict, 40920, "request already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to send request")
		return
	}

	f := models.Friendship{RequesterID: userID, AddresseeID: target.ID, Status: models.FriendPending}
	if err := fc.db.Create(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40920, "request already exists")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to send request")
		return
	}
	utils.Success(ctx, gin.H{"status": models.FriendPending})
}

// Respond accepts or declines a pending request addressed to the caller.
func (fc *FriendController) Respond(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	id64, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid request id")
		return
	}

	var req struct {
		Accept bool `json:"accept"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	var f models.Friendship
	if err := fc.db.First(&f, uint(id64)).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40421, "request not found")
		return
	}
	if f.AddresseeID != userID || f.Status != models.FriendPending {
		utils.Error(ctx, http.StatusForbidden, 40320, "request is not yours to answer")
		return
	}

	f.Status = models.FriendDeclined
	if req.Accept {
		f.Status = models.FriendAccepted
	}
	if err := fc.db.Save(&f).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to update request")
		return
	}
	utils.Success(ctx, gin.H{"status": f.Status})
}

// List returns accepted friends plus requests still waiting on the caller.
func (fc *FriendController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var rows []models.Friendship
	if err := fc.db.Where(
		"(requester_id = ? OR addressee_id = ?) AND status <> ?",
		userID, userID, models.FriendDeclined,
	).Find(&rows).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to load friends")
		return
	}

	friendIDs := make([]uint, 0, len(rows))
	for _, f := range rows {
		friendIDs = append(friendIDs, otherSide(f, userID))
	}
	names := fc.usernames(friendIDs)

	friends := make([]gin.H, 0, len(rows))
	incoming := make([]gin.H, 0)
	for _, f := range rows {
		other := otherSide(f, userID)
		entry := gin.H{"user_id": other, "username": names[other]}
		switch {
		case f.Status == models.FriendAccepted:
			friends = append(friends, entry)
		case f.AddresseeID == userID:
			entry["request_id"] = f.ID
			incoming = append(incoming, entry)
		}
	}
	utils.Success(ctx, gin.H{"friends": friends, "incoming": incoming})
}

func otherSide(f models.Friendship, userID uint) uint {
	if f.RequesterID == userID {
		return f.AddresseeID
	}
	return f.RequesterID
}

func (fc *FriendController) usernames(ids []uint) map[uint]string {
	out := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return out
	}
	var users []models.User
	if err := fc.db.Select("id", "username").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return out
	}
	for _, u := range users {
		out[u.ID] = u.Username
	}
	return out
}
