package handlers

import (
	"hypetown_backend/internal/repository"
	"hypetown_backend/internal/service"
	"hypetown_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB             *pgxpool.Pool
	BotToken       string
	Players        *repository.PlayerRepository
	CoinTxRepo     *repository.CoinTransactionRepository
	CityService    *service.CityService
	ClickerService *service.ClickerService
	OrderService   *service.OrderService
	Hub            *ws.Hub
}

func NewHandler(db *pgxpool.Pool, botToken string, hub *ws.Hub) *Handler {
	return &Handler{
		DB:             db,
		BotToken:       botToken,
		Players:        repository.NewPlayerRepository(db),
		CoinTxRepo:     repository.NewCoinTransactionRepository(db),
		CityService:    service.NewCityService(db),
		ClickerService: service.NewClickerService(db),
		OrderService:   service.NewOrderService(db),
		Hub:            hub,
	}
}

// getUserID извлекает user_id из контекста Gin
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
