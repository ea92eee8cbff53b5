package main

import (
	"github.com/zerofake/zerofake/config"
	"github.com/zerofake/zerofake/models"
	"github.com/zerofake/zerofake/routes"
	"github.com/zerofake/zerofake/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.LoginRecord{},
		&models.Question{},
		&models.LevelResult{},
		&models.Friendship{},
		&models.Room{},
		&models.RoomMember{},
		&models.DailyActivity{},
	)

	r := routes.SetupRouter(db)

	// Sweep expired training rooms in the background (best-effort)
	utils.StartRoomJanitor(cfg.RoomJanitorInterval)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
