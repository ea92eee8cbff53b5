package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zerofake/zerofake/config"
	"github.com/zerofake/zerofake/controllers"
	"github.com/zerofake/zerofake/middleware"
	"github.com/zerofake/zerofake/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Aggregate daily traffic after each request
	r.Use(middleware.ActivityRecorder(db))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	checkInController := controllers.NewCheckInController(db)
	levelController := controllers.NewLevelController(db)
	leaderboardController := controllers.NewLeaderboardController(db)
	friendController := controllers.NewFriendController(db)
	roomController := controllers.NewRoomController(db)
	statsController := controllers.NewStatsController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/captcha", authController.Captcha)
	authGroup.GET("/oauth/:provider/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/:provider/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	// Public endpoints
	api.GET("/stats", statsController.Overview)
	api.GET("/users/:id", authController.GetUserPublic)
	api.GET("/leaderboard", leaderboardController.Global)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.POST("/checkin/daily", checkInController.DailyCheckIn)
	protected.GET("/checkin/status", checkInController.Status)
	protected.GET("/checkin/history", checkInController.History)

	protected.GET("/levels", levelController.List)
	protected.GET("/levels/:level", levelController.Get)
	protected.POST("/levels/:level/submit", levelController.Submit)

	protected.POST("/tutorial/complete", authController.CompleteTutorial)

	protected.POST("/friends/requests", friendController.Request)
	protected.POST("/friends/requests/:id/respond", friendController.Respond)
	protected.GET("/friends", friendController.List)

	protected.POST("/rooms", roomController.Create)
	protected.POST("/rooms/join", roomController.Join)
	protected.GET("/rooms", roomController.List)
	protected.GET("/rooms/:id/members", roomController.Members)
	protected.GET("/rooms/:id/leaderboard", leaderboardController.Room)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
