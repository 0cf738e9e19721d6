package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/dshs-dev/studentlife/internal/config"
	"github.com/dshs-dev/studentlife/internal/database"
	"github.com/dshs-dev/studentlife/internal/handler"
	"github.com/dshs-dev/studentlife/internal/middleware"
	"github.com/dshs-dev/studentlife/internal/queue"
	"github.com/dshs-dev/studentlife/internal/repository"
	"github.com/dshs-dev/studentlife/internal/router"
	"github.com/dshs-dev/studentlife/internal/scheduler"
	"github.com/dshs-dev/studentlife/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DBName, cfg.MigrationsPath); err != nil {
		log.Fatalf("database migrate failed: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	seats := repository.NewSeatRepo(db)
	bookings := repository.NewBookingRepo(db)
	passes := repository.NewPassRepo(db)
	penalties := repository.NewPenaltyRepo(db)
	notifications := repository.NewNotificationRepo(db)
	meals := repository.NewMealRepo(db)

	publisher := service.NewQueuePublisher()

	authH := handler.NewAuthHandler(cfg, users, tokens)
	bookingH := handler.NewBookingHandler(seats, bookings)
	staffBookingH := handler.NewStaffBookingHandler(bookings, notifications)
	passH := handler.NewPassHandler(passes)
	staffPassH := handler.NewStaffPassHandler(passes, notifications, publisher)
	penaltyH := handler.NewPenaltyHandler(penalties, notifications, users, publisher)
	notificationH := handler.NewNotificationHandler(notifications)
	mealH := handler.NewMealHandler(meals)
	adminH := handler.NewAdminHandler(seats, users)

	e := echo.New()
	e.HideBanner = true

	// Redis backs the response cache and the rate limiter; both degrade
	// to pass-through when it is unreachable.
	rdb := config.NewRedisClient()
	rlCfg := config.LoadRateLimitConfig()
	if rlCfg.Enabled && rdb != nil {
		e.Use(middleware.NewTokenBucket(rlCfg, rdb))
	}
	var cacheMW echo.MiddlewareFunc
	cacheCfg := config.LoadCacheConfig()
	if cacheCfg.Enabled && rdb != nil {
		cacheMW = middleware.NewRedisCache(cacheCfg, rdb)
	}

	router.RegisterRoutes(e, authH, passH)
	router.RegisterStudent(e, router.StudentHandlers{
		Auth:          authH,
		Bookings:      bookingH,
		Passes:        passH,
		Penalties:     penaltyH,
		Notifications: notificationH,
		Meals:         mealH,
	}, cfg.JWTSecret, cacheMW)
	router.RegisterStaff(e, router.StaffHandlers{
		Bookings:  staffBookingH,
		Passes:    staffPassH,
		Penalties: penaltyH,
		Admin:     adminH,
		Meals:     mealH,
	}, cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := scheduler.NewSweeper(config.LoadSweepConfig(), bookings, passes, tokens)
	go sweeper.Run(ctx)

	go func() {
		if err := queue.StartEventConsumer(); err != nil {
			log.Printf("event consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	go func() {
		<-ctx.Done()
		_ = e.Shutdown(context.Background())
	}()
	if err := e.Start(addr); err != nil {
		log.Println(err)
	}
}
