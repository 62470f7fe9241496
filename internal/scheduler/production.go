package scheduler

import (
	"context"
	"strconv"
	"time"

	"hypetown_backend/internal/cache"
	"hypetown_backend/internal/game"
	"hypetown_backend/internal/logger"
	"hypetown_backend/internal/repository"
	"hypetown_backend/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Notifier - канал доставки уведомления в Telegram. Нужен, чтобы не
// тянуть бота в зависимости планировщика (бот может быть выключен)
type Notifier interface {
	SendProductionReady(tgID int64, emoji, buildingName string)
}

// ProductionSweeper периодически находит здания с завершённым
// производством и уведомляет владельцев - в websocket и через бота.
// Повторные уведомления об одном и том же цикле гасятся кулдауном в redis.
type ProductionSweeper struct {
	buildings *repository.BuildingRepository
	hub       *ws.Hub
	notifier  Notifier
	interval  time.Duration
	stopCh    chan struct{}
}

func NewProductionSweeper(db *pgxpool.Pool, hub *ws.Hub, notifier Notifier, interval time.Duration) *ProductionSweeper {
	return &ProductionSweeper{
		buildings: repository.NewBuildingRepository(db),
		hub:       hub,
		notifier:  notifier,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

func (s *ProductionSweeper) Start() {
	go s.loop()
}

func (s *ProductionSweeper) Stop() {
	close(s.stopCh)
}

func (s *ProductionSweeper) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger.Info("production sweeper started", "interval", s.interval)
	for {
		select {
		case <-s.stopCh:
			logger.Info("production sweeper stopped")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *ProductionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	ready, err := s.buildings.GetReady(ctx)
	if err != nil {
		logger.Error("production sweep failed", "error", err)
		return
	}

	for _, rb := range ready {
		// ключ включает момент окончания цикла: следующий цикл того же
		// здания получит своё уведомление, повторы по текущему гасятся
		dedup := strconv.FormatInt(rb.BuildingID, 10) + ":" + strconv.FormatInt(rb.ProductionEnds.Unix(), 10)
		if !cache.CheckCooldown(ctx, "production_notify", dedup, 24*time.Hour) {
			continue
		}

		info := game.Buildings[rb.Type]

		s.hub.Notify(rb.PlayerID, ws.Event{
			Type: ws.EventProductionReady,
			Data: map[string]interface{}{
				"building_id": rb.BuildingID,
				"type":        rb.Type,
				"name":        info.Name,
			},
		})

		if s.notifier != nil && !s.hub.Connected(rb.PlayerID) {
			s.notifier.SendProductionReady(rb.PlayerTgID, info.Emoji, info.Name)
		}
	}
}
