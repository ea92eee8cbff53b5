package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zerofake/zerofake/middleware"
	"github.com/zerofake/zerofake/models"
	"github.com/zerofake/zerofake/utils"
)

// currentUser pulls the authenticated user ID from the context and writes the
// 401 response itself when it is missing.
func currentUser(ctx *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
	}
	return id, ok
}

// publicUser shapes a user record for API output, hiding credentials and
// provider internals.
func publicUser(u models.User) gin.H {
	var lastLogin *string
	if u.LastLoginAt != nil {
		s := u.LastLoginAt.UTC().Format(time.RFC3339)
		lastLogin = &s
	}
	return gin.H{
		"id":            u.ID,
		"username":      u.Username,
		"display_name":  u.DisplayName,
		"avatar_url":    u.AvatarURL,
		"timezone":      u.Timezone,
		"points":        u.Points,
		"streak":        u.Streak,
		"last_login_at": lastLogin,
		"tutorial_done": u.TutorialDone,
		"created_at":    u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
