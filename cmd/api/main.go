package main

import (
	"log"

	"certtrack-backend/internal/bootstrap"
	"certtrack-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer func() {
		if app.DB != nil {
			app.DB.Close()
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s store=%s)", addr, cfg.Env, cfg.ObjectStoreType)
	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
