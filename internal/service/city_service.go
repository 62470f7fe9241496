package service

import (
	"context"
	"time"

	"hypetown_backend/internal/cache"
	"hypetown_backend/internal/domain"
	"hypetown_backend/internal/game"
	"hypetown_backend/internal/logger"
	"hypetown_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CityService — операции над зданиями города: покупка, запуск и сбор
// производства, апгрейды. Каждая операция выполняется в транзакции с
// блокировкой строки игрока, поэтому параллельные запросы одного игрока
// выстраиваются в очередь и не дублируют списания.
type CityService struct {
	db        *pgxpool.Pool
	players   *repository.PlayerRepository
	buildings *repository.BuildingRepository
	inventory *repository.InventoryRepository
	coinTx    *repository.CoinTransactionRepository
	nowFn     func() time.Time
}

func NewCityService(db *pgxpool.Pool) *CityService {
	return &CityService{
		db:        db,
		players:   repository.NewPlayerRepository(db),
		buildings: repository.NewBuildingRepository(db),
		inventory: repository.NewInventoryRepository(db),
		coinTx:    repository.NewCoinTransactionRepository(db),
		nowFn:     time.Now,
	}
}

// BuyBuilding покупает здание указанного типа
func (s *CityService) BuyBuilding(ctx context.Context, playerID int64, buildingType domain.BuildingType) (*game.BuyBuildingResult, error) {
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

	res, err := game.BuyBuilding(p, buildingType, now)
	if err != nil {
		return nil, err
	}

	if err := s.buildings.InsertTx(ctx, tx, res.Building); err != nil {
		return nil, err
	}
	if err := s.players.UpdateProgressTx(ctx, tx, p); err != nil {
		return nil, err
	}
	if err := s.coinTx.CreateWithTx(ctx, tx, &domain.CoinTransaction{
		PlayerID: playerID,
		Type:     domain.CoinTxBuyBuilding,
		Amount:   -res.Cost,
		Meta:     map[string]interface{}{"building_type": string(buildingType)},
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info("building purchased", "player_id", playerID, "type", buildingType, "cost", res.Cost)
	cache.UpdateLeaderboard(ctx, playerID, p.Coins)
	return res, nil
}

// StartProduction запускает цикл производства в здании
func (s *CityService) StartProduction(ctx context.Context, playerID, buildingID int64) (*game.StartProductionResult, error) {
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

	res, err := game.StartProduction(p, buildingID, now)
	if err != nil {
		return nil, err
	}

	b := p.BuildingByID(buildingID)
	if err := s.buildings.UpdateTx(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := s.players.UpdateProgressTx(ctx, tx, p); err != nil {
		return nil, err
	}

	return res, tx.Commit(ctx)
}

// CollectProduction забирает готовую продукцию: монеты и ресурс на склад
func (s *CityService) CollectProduction(ctx context.Context, playerID, buildingID int64) (*game.CollectResult, error) {
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

	res, err := game.CollectProduction(p, buildingID, now)
	if err != nil {
		return nil, err
	}

	b := p.BuildingByID(buildingID)
	if err := s.buildings.UpdateTx(ctx, tx, b); err != nil {
		return nil, err
	}
	if item := findItem(p, res.Resource); item != nil {
		if err := s.inventory.UpsertTx(ctx, tx, item); err != nil {
			return nil, err
		}
	}
	if err := s.players.UpdateProgressTx(ctx, tx, p); err != nil {
		return nil, err
	}
	if err := s.coinTx.CreateWithTx(ctx, tx, &domain.CoinTransaction{
		PlayerID: playerID,
		Type:     domain.CoinTxCollect,
		Amount:   res.Income,
		Meta:     map[string]interface{}{"building_id": buildingID, "resource": string(res.Resource), "qty": res.ResourceQty},
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	cache.UpdateLeaderboard(ctx, playerID, p.Coins)
	return res, nil
}

// UpgradeBuilding повышает уровень здания
func (s *CityService) UpgradeBuilding(ctx context.Context, playerID, buildingID int64) (*game.UpgradeBuildingResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.players.LockAggregateTx(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}

	res, err := game.UpgradeBuilding(p, buildingID)
	if err != nil {
		return nil, err
	}

	b := p.BuildingByID(buildingID)
	if err := s.buildings.UpdateTx(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := s.players.UpdateProgressTx(ctx, tx, p); err != nil {
		return nil, err
	}
	if err := s.coinTx.CreateWithTx(ctx, tx, &domain.CoinTransaction{
		PlayerID: playerID,
		Type:     domain.CoinTxUpgradeBld,
		Amount:   -res.Cost,
		Meta:     map[string]interface{}{"building_id": buildingID, "new_level": res.NewLevel},
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	cache.UpdateLeaderboard(ctx, playerID, p.Coins)
	return res, nil
}

func findItem(p *domain.Player, r domain.Resource) *domain.InventoryItem {
	for _, item := range p.Inventory {
		if item.Resource == r {
			return item
		}
	}
	return nil
}
