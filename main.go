package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/mvcastillo/healthoffice-backend/config"
	"github.com/mvcastillo/healthoffice-backend/internal/routes"
	"github.com/mvcastillo/healthoffice-backend/pkg/storage/mariadb"
	"github.com/mvcastillo/healthoffice-backend/ws"
)

func main() {
	cfg := config.LoadConfig()
	db := mariadb.Connect()

	catalog, err := config.LoadStations(cfg.StationsFile)
	if err != nil {
		log.Fatalf("failed to load station catalogue: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	e := echo.New()
	routes.Init(e, db, catalog, hub)

	log.Printf("Server listening on port %s...", cfg.Port)
	log.Fatal(e.Start(":" + cfg.Port))
}
