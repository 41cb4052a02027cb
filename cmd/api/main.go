package main

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"famcal/cmd/internal/config"
	"famcal/cmd/internal/notify"
	"famcal/cmd/internal/reminder"
	"famcal/cmd/internal/routes"
	"famcal/cmd/internal/service"
	"famcal/cmd/internal/store"
	"famcal/cmd/internal/store/docstore"
	"famcal/cmd/internal/store/memstore"
)

func main() {
	// .env is optional; without it the env decides, and without the env
	// the app runs in demo mode.
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	cfg := config.Load()
	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
		})
	}

	validate := validator.New()

	// Backend choice happens exactly once, here.
	var backend store.Backend
	if cfg.Remote() {
		var err error
		backend, err = docstore.Open(cfg.DataPath)
		if err != nil {
			log.Fatal("failed to open document store", err)
		}
		log.Info("document store backend active")
	} else {
		backend = memstore.Seeded()
		log.Info("remote configuration missing, demo mode with in-memory backend")
	}
	defer backend.Close()

	// Getting services
	memberService := service.NewMemberService(backend.Members(), validate)
	eventService := service.NewEventService(backend.Events(), validate)
	boardService := service.NewBoardService(backend.Memos(), validate)

	// Reminder scheduler: in-app feed always, webhook only if configured
	// and reachable.
	hub := notify.NewHub()
	var system notify.Sink
	if cfg.WebhookURL != "" {
		system = notify.NewWebhook(cfg.WebhookURL)
	}
	scheduler := reminder.New(backend, hub, system)
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	// Getting routes
	memberRoutes := routes.NewMemberDefault(memberService)
	eventRoutes := routes.NewEventDefault(eventService)
	boardRoutes := routes.NewBoardDefault(boardService)
	streamRoutes := routes.NewStreamDefault(backend, hub)
	statusRoutes := routes.NewStatusDefault(cfg)

	e := echo.New()
	e.Use(middleware.CORS())

	// Members
	e.GET("/api/members", memberRoutes.GetMembers)
	e.POST("/api/members", memberRoutes.CreateMember)
	e.PATCH("/api/members/:id", memberRoutes.UpdateMember)
	e.DELETE("/api/members/:id", memberRoutes.DeleteMember)

	// Events
	e.GET("/api/events", eventRoutes.GetEvents)
	e.POST("/api/events", eventRoutes.CreateEvent)
	e.PATCH("/api/events/:id", eventRoutes.UpdateEvent)
	e.DELETE("/api/events/:id", eventRoutes.DeleteEvent)

	// Shared board
	e.GET("/api/board", boardRoutes.GetMemos)
	e.POST("/api/board", boardRoutes.CreateMemo)
	e.PATCH("/api/board/:id", boardRoutes.UpdateMemo)
	e.DELETE("/api/board/:id", boardRoutes.DeleteMemo)

	// Live snapshot and notification streams
	e.GET("/api/stream/members", streamRoutes.StreamMembers)
	e.GET("/api/stream/events", streamRoutes.StreamEvents)
	e.GET("/api/stream/board", streamRoutes.StreamMemos)
	e.GET("/api/stream/notifications", streamRoutes.StreamNotifications)

	// Demo-mode banner support
	e.GET("/api/status", statusRoutes.GetStatus)

	err := e.Start(cfg.Addr)
	if err != nil {
		e.Logger.Fatal(err)
	}
}
