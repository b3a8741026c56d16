package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/rechilab/volley-backend/internal/config"
	"github.com/rechilab/volley-backend/internal/database"
	"github.com/rechilab/volley-backend/internal/handler"
	"github.com/rechilab/volley-backend/internal/middleware"
	"github.com/rechilab/volley-backend/internal/queue"
	"github.com/rechilab/volley-backend/internal/repository"
	"github.com/rechilab/volley-backend/internal/router"
	"github.com/rechilab/volley-backend/internal/upload"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	client, err := database.Open(cfg.DBURL)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	db := client.Database(cfg.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatalf("ensure indexes failed: %v", err)
	}
	cancel()
	log.Printf("connected to database %q", cfg.DBName)

	users := repository.NewUserRepo(db)
	products := repository.NewProductRepo(db)
	appointments := repository.NewAppointmentRepo(db)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limit disabled")
	}

	go queue.StartAppointmentConsumer()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS(cfg.AllowedOrigins))

	// Logout and extend must stay reachable with an expired token.
	auth := middleware.TokenAuth(cfg.JWTSecret, users, "/users/logout", "/users/extend")

	router.Register(e, router.Deps{
		Users:        handler.NewUserHandler(cfg, users, products),
		Products:     handler.NewProductHandler(products),
		Appointments: handler.NewAppointmentHandler(appointments, queue.PublishAppointmentEvent),
		Auth:         auth,
		Admin:        middleware.RequireAdmin,
		Upload:       upload.Image(cfg.UploadDir),
		Cache:        middleware.ResponseCache(config.LoadCacheConfig(), rdb),
		RateLimit:    middleware.RateLimit(config.LoadRateLimitConfig(), rdb),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
