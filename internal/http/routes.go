package http

import (
	"os"
	"strconv"
	"time"

	"hypetown_backend/internal/config"
	"hypetown_backend/internal/http/handlers"
	"hypetown_backend/internal/http/middleware"
	"hypetown_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string, hub *ws.Hub) *handlers.Handler {
	h := handlers.NewHandler(db, cfg.BotToken, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	// read limits from env, with safe defaults
	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 5
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateLimit = n
		}
	}
	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	tapRateLimit := cfg.TapRateLimit
	tapRateWindow := time.Duration(cfg.TapRateWindow) * time.Second

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))

	// Auth + onboarding
	v1.POST("/auth", middleware.RedisRateLimit(authRateLimit, authRateWindow), h.Auth)
	v1.POST("/players", middleware.RedisRateLimit(authRateLimit, authRateWindow), h.CreatePlayer)

	// Каталоги (без авторизации)
	v1.GET("/catalog/buildings", h.CatalogBuildings)
	v1.GET("/catalog/archetypes", h.CatalogArchetypes)
	v1.GET("/catalog/upgrades", h.CatalogUpgrades)

	// Player profile
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.GET("/profile", middleware.JWT(), h.MyProfile)
	v1.GET("/profile/:id", h.Profile)

	// City: здания и производство
	city := v1.Group("/city", middleware.JWT())
	city.GET("", h.GetCity)
	city.POST("/buildings", h.BuyBuilding)
	city.POST("/buildings/:id/start", h.StartProduction)
	city.POST("/buildings/:id/collect", h.CollectProduction)
	city.POST("/buildings/:id/upgrade", h.UpgradeBuilding)

	// Clicker
	clicker := v1.Group("/clicker", middleware.JWT())
	clicker.POST("/tap", middleware.PlayerRateLimit("tap", tapRateLimit, tapRateWindow), h.Tap)
	clicker.GET("/upgrades", h.ListUpgrades)
	clicker.POST("/upgrades", h.BuyUpgrade)

	// Orders
	orders := v1.Group("/orders", middleware.JWT())
	orders.GET("", h.ListOrders)
	orders.POST("/:id/fulfill", h.FulfillOrder)

	// Leaderboard
	v1.GET("/leaderboard", h.GetLeaderboard)
	v1.GET("/leaderboard/me", middleware.JWT(), h.GetMyRank)

	// WebSocket push-уведомления
	r.GET("/ws", h.WS(hub))

	return h
}
