package game

import (
	"time"

	"hypetown_backend/internal/domain"
)

// Операции машины состояний производства. Каждая операция мутирует агрегат
// в памяти; атомарность записи обеспечивает вызывающий слой (одна pgx
// транзакция на операцию).

// BuyBuildingResult - результат покупки здания
type BuyBuildingResult struct {
	Building *domain.Building `json:"building"`
	Cost     int64            `json:"cost"`
}

// BuyBuilding покупает новое здание. У игрока может быть не больше одного
// здания каждого типа.
func BuyBuilding(p *domain.Player, t domain.BuildingType, now time.Time) (*BuyBuildingResult, error) {
	info, ok := Buildings[t]
	if !ok {
		return nil, ErrUnknownBuilding
	}

	if p.Level < info.UnlockLevel {
		return nil, &LevelLockedError{RequiredLevel: info.UnlockLevel}
	}

	if p.OwnsBuildingType(t) {
		return nil, ErrAlreadyOwned
	}

	if p.Coins < info.Cost {
		return nil, &InsufficientFundsError{Cost: info.Cost}
	}

	p.Coins -= info.Cost
	b := &domain.Building{
		PlayerID:      p.ID,
		Type:          t,
		Level:         1,
		LastCollected: now,
	}
	p.Buildings = append(p.Buildings, b)

	// Пассивный доход - метрика мощности, новое здание в неё входит сразу
	p.PassiveIncome = PassiveIncomePerMinute(p.Buildings, p.Archetype)

	return &BuyBuildingResult{Building: b, Cost: info.Cost}, nil
}

// StartProductionResult - результат запуска производства
type StartProductionResult struct {
	ProductionEnds time.Time `json:"production_ends"`
	DurationSec    int       `json:"duration_sec"`
}

// StartProduction запускает таймер производства в здании
func StartProduction(p *domain.Player, buildingID int64, now time.Time) (*StartProductionResult, error) {
	b := p.BuildingByID(buildingID)
	if b == nil {
		return nil, ErrBuildingNotFound
	}

	if b.IsProducing {
		return nil, ErrAlreadyProducing
	}

	sec := ProductionDuration(b.Type, b.Level)
	ends := now.Add(time.Duration(sec) * time.Second)

	b.IsProducing = true
	b.ProductionStarted = &now
	b.ProductionEnds = &ends

	return &StartProductionResult{ProductionEnds: ends, DurationSec: sec}, nil
}

// CollectResult - результат сбора продукции
type CollectResult struct {
	Income      int64           `json:"income"`
	TotalCoins  int64           `json:"total_coins"`
	Resource    domain.Resource `json:"resource"`
	ResourceQty int             `json:"resource_qty"`
}

// CollectProduction собирает готовую продукцию: монеты в баланс, ресурс в
// инвентарь, здание возвращается в простой. Сбор ровно в момент
// production_ends разрешён.
func CollectProduction(p *domain.Player, buildingID int64, now time.Time) (*CollectResult, error) {
	b := p.BuildingByID(buildingID)
	if b == nil {
		return nil, ErrBuildingNotFound
	}

	if !b.IsProducing {
		return nil, ErrNotProducing
	}

	if b.ProductionEnds != nil && now.Before(*b.ProductionEnds) {
		return nil, &NotReadyError{RemainingSec: b.RemainingSec(now)}
	}

	income := ProductionIncome(b.Type, b.Level, p.Archetype)
	p.Coins += income

	qty := b.Level
	if qty < 1 {
		qty = 1
	}
	res := BuildingResource[b.Type]
	p.AddResource(res, qty)

	p.PassiveIncome = PassiveIncomePerMinute(p.Buildings, p.Archetype)

	b.IsProducing = false
	b.ProductionStarted = nil
	b.ProductionEnds = nil
	b.LastCollected = now

	return &CollectResult{
		Income:      income,
		TotalCoins:  p.Coins,
		Resource:    res,
		ResourceQty: qty,
	}, nil
}

// UpgradeBuildingResult - результат апгрейда здания
type UpgradeBuildingResult struct {
	NewLevel  int   `json:"new_level"`
	Cost      int64 `json:"cost"`
	NewIncome int64 `json:"new_income"`
}

// UpgradeBuilding повышает уровень здания на 1. Апгрейд запущенного
// производства запрещён: экономика уже идущего таймера не меняется задним
// числом.
func UpgradeBuilding(p *domain.Player, buildingID int64) (*UpgradeBuildingResult, error) {
	b := p.BuildingByID(buildingID)
	if b == nil {
		return nil, ErrBuildingNotFound
	}

	if b.IsProducing {
		return nil, ErrUpgradeProducing
	}

	cost := BuildingUpgradeCost(b.Type, b.Level)
	if p.Coins < cost {
		return nil, &InsufficientFundsError{Cost: cost}
	}

	p.Coins -= cost
	b.Level++

	p.PassiveIncome = PassiveIncomePerMinute(p.Buildings, p.Archetype)

	return &UpgradeBuildingResult{
		NewLevel:  b.Level,
		Cost:      cost,
		NewIncome: ProductionIncome(b.Type, b.Level, p.Archetype),
	}, nil
}
