package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hypetown_backend/internal/bot"
	"hypetown_backend/internal/cache"
	"hypetown_backend/internal/config"
	"hypetown_backend/internal/db"
	httpServer "hypetown_backend/internal/http"
	"hypetown_backend/internal/logger"
	"hypetown_backend/internal/scheduler"
	"hypetown_backend/internal/service"
	"hypetown_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "1.0.0"

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_JSON") == "true")

	cfg := config.Load()
	service.InitJWT()

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	cache.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	hub := ws.NewHub()
	httpServer.RegisterRoutes(r, dbPool, cfg, version, hub)

	// Телеграм-бот: уведомления о производстве + админ-команды
	var notifyBot *bot.Bot
	if cfg.NotifyBotEnabled {
		adminService := service.NewAdminService(dbPool)
		b, err := bot.New(cfg.BotToken, adminService, cfg.AdminTelegramIDs)
		if err != nil {
			logger.Error("failed to start bot", "error", err)
		} else {
			notifyBot = b
			go notifyBot.Start()
		}
	}

	var notifier scheduler.Notifier
	if notifyBot != nil {
		notifier = notifyBot
	}
	sweeper := scheduler.NewProductionSweeper(dbPool, hub, notifier,
		time.Duration(cfg.SweepInterval)*time.Second)
	sweeper.Start()

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	sweeper.Stop()
	if notifyBot != nil {
		notifyBot.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
