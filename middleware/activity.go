package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zerofake/zerofake/models"
	"github.com/zerofake/zerofake/streak"
)

// ActivityRecorder aggregates successful GET traffic into per-day, per-path
// counters. The stats endpoint reads these to report daily active usage;
// platform dates are bucketed in UTC.
func ActivityRecorder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != "GET" {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}

		path := c.Request.URL.Path
		// health checks and the stats endpoint itself would skew the numbers
		if path == "/health" || strings.Contains(path, "/stats") {
			return
		}

		today := streak.DateOf(time.Now(), time.UTC).String()

		// atomic upsert avoids duplicate-key errors under concurrency
		_ = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "path"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1"), "updated_at": time.Now()}),
		}).Create(&models.DailyActivity{Date: today, Path: path, Count: 1}).Error
	}
}
