package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/grupo05/coworking-space/internal/booking"
	"github.com/grupo05/coworking-space/internal/config"
	"github.com/grupo05/coworking-space/internal/database"
	"github.com/grupo05/coworking-space/internal/handler"
	"github.com/grupo05/coworking-space/internal/middleware"
	"github.com/grupo05/coworking-space/internal/model"
	"github.com/grupo05/coworking-space/internal/queue"
	"github.com/grupo05/coworking-space/internal/repository"
	"github.com/grupo05/coworking-space/internal/router"
	queuepublisher "github.com/grupo05/coworking-space/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs rate limiting and the response cache.  A nil client
	// disables both instead of failing startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	// The engine notifier publishes a reservation.created event; the
	// background consumer turns it into participant invitations.
	notify := func(ctx context.Context, res model.Reservation, rooms []model.Room, participants []string) error {
		names := make([]string, len(rooms))
		for i, room := range rooms {
			names[i] = room.Name
		}
		username := ""
		if u, err := userRepo.GetByID(ctx, res.UserID); err == nil {
			username = u.Username
		}
		return queuepublisher.PublishReservationCreated(ctx, queue.ReservationCreatedEvent{
			ReservationID:     res.ID,
			UserID:            res.UserID,
			Username:          username,
			RoomNames:         names,
			DateInit:          res.DateInit.UTC().Format(time.RFC3339),
			DateEnd:           res.DateEnd.UTC().Format(time.RFC3339),
			Description:       res.Description,
			ParticipantEmails: participants,
			CreatedAt:         time.Now().UTC().Format(time.RFC3339),
		})
	}
	engine := booking.NewEngine(db, roomRepo, reservationRepo, notify)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	roomHandler := handler.NewRoomHandler(roomRepo)
	reservationHandler := handler.NewReservationHandler(engine)
	userHandler := handler.NewUserHandler(cfg, userRepo, tokenRepo, engine)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e, roomHandler, cache)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterReservations(e, reservationHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, roomHandler, userHandler, cfg.JWTSecret)

	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
