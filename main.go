package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Roezin7/SistemaGestion/internal/config"
	"github.com/Roezin7/SistemaGestion/internal/database"
	"github.com/Roezin7/SistemaGestion/internal/router"
	"github.com/Roezin7/SistemaGestion/internal/util"

	"github.com/joho/godotenv"
)

func main() {
	// local overrides, e.g. SGT_JWT_SECRET
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	config.SetLogLevel(cfg.Log.Level)

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if err := ensureDir(cfg.Uploads.Dir); err != nil {
		log.Fatalf("create uploads dir: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	util.RegisterValidations()

	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
