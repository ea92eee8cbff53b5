package utils

import (
	"time"

	"github.com/zerofake/zerofake/config"
	"github.com/zerofake/zerofake/models"
)

// StartRoomJanitor launches a background goroutine that periodically deletes
// expired training rooms and their memberships. Best-effort; failures are
// logged and retried on the next tick.
func StartRoomJanitor(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		for {
			// sleep first to avoid racing migrations at startup
			time.Sleep(interval)
			db := config.DB()
			if db == nil {
				continue
			}

			var rooms []models.Room
			if err := db.Where("expires_at IS NOT NULL AND expires_at <= ?", time.Now()).Limit(100).Find(&rooms).Error; err != nil {
				if Sugar != nil {
					Sugar.Warnf("room janitor query failed: %v", err)
				}
				continue
			}
			for _, room := range rooms {
				if err := db.Where("room_id = ?", room.ID).Delete(&models.RoomMember{}).Error; err != nil {
					if Sugar != nil {
						Sugar.Warnf("room janitor member delete failed room=%d: %v", room.ID, err)
					}
					continue
				}
				if err := db.Delete(&models.Room{}, room.ID).Error; err != nil {
					if Sugar != nil {
						Sugar.Warnf("room janitor delete failed room=%d: %v", room.ID, err)
					}
				}
			}
		}
	}()
}
