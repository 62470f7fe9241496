package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"hypetown_backend/internal/cache"
	"hypetown_backend/internal/domain"
	"hypetown_backend/internal/game"
	"hypetown_backend/internal/logger"
	"hypetown_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderService — заказы NPC: выдача новых и выполнение. Генерация
// дозаполняет свободные слоты при каждом чтении списка, так что отдельный
// планировщик для заказов не нужен.
type OrderService struct {
	db        *pgxpool.Pool
	players   *repository.PlayerRepository
	orders    *repository.OrderRepository
	inventory *repository.InventoryRepository
	coinTx    *repository.CoinTransactionRepository
	nowFn     func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewOrderService(db *pgxpool.Pool) *OrderService {
	return &OrderService{
		db:        db,
		players:   repository.NewPlayerRepository(db),
		orders:    repository.NewOrderRepository(db),
		inventory: repository.NewInventoryRepository(db),
		coinTx:    repository.NewCoinTransactionRepository(db),
		nowFn:     time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ListOrders возвращает активные заказы игрока, предварительно дозаполнив
// свободные слоты новыми
func (s *OrderService) ListOrders(ctx context.Context, playerID int64) ([]*domain.Order, error) {
	now := s.nowFn()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.players.LockAggregateTx(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	created := game.GenerateOrders(p, s.rng, now)
	s.mu.Unlock()

	for _, o := range created {
		if err := s.orders.InsertTx(ctx, tx, o); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if len(created) > 0 {
		logger.Debug("orders generated", "player_id", playerID, "count", len(created))
	}
	return p.ActiveOrders(now), nil
}

// FulfillOrder выполняет заказ: проверяет и списывает ресурсы, начисляет
// награду и опыт
func (s *OrderService) FulfillOrder(ctx context.Context, playerID, orderID int64) (*game.FulfillResult, error) {
	now := s.nowFn()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.players.LockAggregateTx(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}

	res, err := game.FulfillOrder(p, orderID, now)
	if err != nil {
		return nil, err
	}

	order := p.OrderByID(orderID)
	if err := s.orders.CompleteTx(ctx, tx, order); err != nil {
		return nil, err
	}
	for resource := range order.Requirements {
		if item := findItem(p, resource); item != nil {
			if err := s.inventory.UpsertTx(ctx, tx, item); err != nil {
				return nil, err
			}
		}
	}
	if err := s.players.UpdateProgressTx(ctx, tx, p); err != nil {
		return nil, err
	}

	// res.CoinsEarned уже включает бонус за быстрое выполнение
	if err := s.coinTx.CreateWithTx(ctx, tx, &domain.CoinTransaction{
		PlayerID: playerID,
		Type:     domain.CoinTxOrderReward,
		Amount:   res.CoinsEarned,
		Meta: map[string]interface{}{
			"order_id": orderID,
			"npc":      res.NPCName,
			"bonus":    res.GotBonus,
		},
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info("order fulfilled",
		"player_id", playerID, "order_id", orderID,
		"coins", res.CoinsEarned, "xp", res.XPEarned, "bonus", res.GotBonus)
	cache.UpdateLeaderboard(ctx, playerID, p.Coins)
	return res, nil
}
