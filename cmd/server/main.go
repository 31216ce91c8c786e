package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/hmisra/plant-store/internal/config"
	"github.com/hmisra/plant-store/internal/database"
	"github.com/hmisra/plant-store/internal/handler"
	"github.com/hmisra/plant-store/internal/media"
	appmw "github.com/hmisra/plant-store/internal/middleware"
	"github.com/hmisra/plant-store/internal/queue"
	"github.com/hmisra/plant-store/internal/repository"
	"github.com/hmisra/plant-store/internal/router"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // fatal on missing required vars

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("database: %v", err)
	}

	mediaStore, err := media.NewCloudinaryStore(cfg.CloudinaryName, cfg.CloudinaryKey, cfg.CloudinarySecret)
	if err != nil {
		log.Fatalf("media: %v", err)
	}

	// Redis is optional: a nil client disables the response cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache disabled")
	}
	cache := appmw.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Background audit consumer for catalog events.
	go func() {
		if err := queue.StartCatalogConsumer(); err != nil {
			log.Printf("catalog-consumer stopped: %v", err)
		}
	}()

	admins := repository.NewAdminRepo(db)
	plants := repository.NewPlantRepo(db)
	authH := handler.NewAuthHandler(cfg, admins)
	plantH := handler.NewPlantHandler(cfg, plants, mediaStore)

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	// The storefront sends the token cookie cross-origin, so CORS must name
	// the exact origin and allow credentials.
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowCredentials: true,
	}))

	router.RegisterRoutes(e)
	router.RegisterAPI(e, authH, plantH, cfg.JWTSecret, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
