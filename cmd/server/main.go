package main // Entry point package

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cecosrail/reservation/internal/booking"
	"github.com/cecosrail/reservation/internal/config"
	"github.com/cecosrail/reservation/internal/database"
	"github.com/cecosrail/reservation/internal/handler"
	"github.com/cecosrail/reservation/internal/middleware"
	"github.com/cecosrail/reservation/internal/queue"
	"github.com/cecosrail/reservation/internal/repository"
	"github.com/cecosrail/reservation/internal/router"
	"github.com/cecosrail/reservation/internal/utils"
)

const (
	seedAdminUser = "admin"
	seedAdminPass = "Afridi123"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}

	// Seed the default admin account idempotently.  The password can be
	// overridden before first run; afterwards the stored hash wins.
	pass := seedAdminPass
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		pass = v
	}
	hash, err := utils.HashPassword(pass, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	if err := database.SeedAdmin(ctx, db, seedAdminUser, hash); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	// Redis is optional; limiter and cache degrade to pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	trains := repository.NewTrainRepo(db)
	tickets := repository.NewTicketRepo(db)
	engine := booking.NewEngine(booking.NewSQLStore(db))

	authH := handler.NewAuthHandler(cfg, users, tokens)
	catH := handler.NewCatalogHandler(trains)
	bookH := handler.NewBookingHandler(engine, tickets)

	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterReservation(e, catH, bookH, cfg.JWTSecret, rateLimit, cache)

	// Background consumer appends booked-ticket events to logs/booking.log.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
