package main

import (
	"github.com/cppla/dailysign/config"
	"github.com/cppla/dailysign/models"
	"github.com/cppla/dailysign/routes"
	"github.com/cppla/dailysign/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.SignLog{}, &models.SignSummary{}, &models.UserLedger{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
