package game

import (
	"errors"
	"testing"
	"time"

	"hypetown_backend/internal/domain"
)

func testPlayer(coins int64) *domain.Player {
	return &domain.Player{
		ID:        1,
		Archetype: domain.ArchetypeProducer,
		Level:     1,
		Coins:     coins,
		TapPower:  1,
	}
}

func testNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestBuyBuildingUnknownType(t *testing.T) {
	p := testPlayer(100000)
	if _, err := BuyBuilding(p, "casino", testNow()); !errors.Is(err, ErrUnknownBuilding) {
		t.Fatalf("expected ErrUnknownBuilding, got %v", err)
	}
}

func TestBuyBuildingLevelLocked(t *testing.T) {
	// game_studio открывается на 3 уровне; денег хватает, но уровень 2
	p := testPlayer(1000000)
	p.Level = 2

	_, err := BuyBuilding(p, domain.BuildingGameStudio, testNow())
	var locked *LevelLockedError
	if !errors.As(err, &locked) {
		t.Fatalf("expected LevelLockedError, got %v", err)
	}
	if locked.RequiredLevel != 3 {
		t.Fatalf("required level = %d, want 3", locked.RequiredLevel)
	}
	if p.Coins != 1000000 || len(p.Buildings) != 0 {
		t.Fatalf("failed purchase must not change the aggregate")
	}
}

func TestBuyBuildingAlreadyOwned(t *testing.T) {
	p := testPlayer(100000)
	if _, err := BuyBuilding(p, domain.BuildingSeriesLot, testNow()); err != nil {
		t.Fatalf("first purchase failed: %v", err)
	}
	if _, err := BuyBuilding(p, domain.BuildingSeriesLot, testNow()); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("expected ErrAlreadyOwned, got %v", err)
	}
}

func TestBuyBuildingInsufficientFunds(t *testing.T) {
	p := testPlayer(500) // series_lot стоит 1000

	_, err := BuyBuilding(p, domain.BuildingSeriesLot, testNow())
	var funds *InsufficientFundsError
	if !errors.As(err, &funds) {
		t.Fatalf("expected InsufficientFundsError, got %v", err)
	}
	if funds.Cost != 1000 {
		t.Fatalf("reported cost = %d, want 1000", funds.Cost)
	}
}

func TestBuyBuildingSuccess(t *testing.T) {
	p := testPlayer(1500)
	res, err := BuyBuilding(p, domain.BuildingSeriesLot, testNow())
	if err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if res.Cost != 1000 || p.Coins != 500 {
		t.Fatalf("cost = %d, coins = %d; want 1000 and 500", res.Cost, p.Coins)
	}
	b := res.Building
	if b.Level != 1 || b.IsProducing || b.ProductionEnds != nil {
		t.Fatalf("new building must be idle at level 1")
	}
	// метрика мощности учитывает простаивающее здание
	if p.PassiveIncome != 13 {
		t.Fatalf("passive income = %d, want 13", p.PassiveIncome)
	}
}

func TestStartProduction(t *testing.T) {
	p := testPlayer(1500)
	now := testNow()
	res, _ := BuyBuilding(p, domain.BuildingSeriesLot, now)
	b := res.Building
	b.ID = 10

	start, err := StartProduction(p, 10, now)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if start.DurationSec != 900 {
		t.Fatalf("duration = %d, want 900", start.DurationSec)
	}
	wantEnds := now.Add(900 * time.Second)
	if !b.IsProducing || b.ProductionEnds == nil || !b.ProductionEnds.Equal(wantEnds) {
		t.Fatalf("timer fields not set correctly: producing=%v ends=%v", b.IsProducing, b.ProductionEnds)
	}
	if b.ProductionStarted == nil || !b.ProductionEnds.Equal(b.ProductionStarted.Add(900*time.Second)) {
		t.Fatalf("production_ends must equal production_started + duration")
	}

	if _, err := StartProduction(p, 10, now); !errors.Is(err, ErrAlreadyProducing) {
		t.Fatalf("expected ErrAlreadyProducing, got %v", err)
	}
	if _, err := StartProduction(p, 99, now); !errors.Is(err, ErrBuildingNotFound) {
		t.Fatalf("expected ErrBuildingNotFound, got %v", err)
	}
}

func TestCollectProductionNotReady(t *testing.T) {
	p := testPlayer(1500)
	now := testNow()
	res, _ := BuyBuilding(p, domain.BuildingSeriesLot, now)
	res.Building.ID = 10
	StartProduction(p, 10, now)

	// за секунду до готовности - NotReady с точным остатком
	_, err := CollectProduction(p, 10, now.Add(899*time.Second))
	var notReady *NotReadyError
	if !errors.As(err, &notReady) {
		t.Fatalf("expected NotReadyError, got %v", err)
	}
	if notReady.RemainingSec != 1 {
		t.Fatalf("remaining = %d, want 1", notReady.RemainingSec)
	}
}

func TestCollectProductionAtExactEnd(t *testing.T) {
	p := testPlayer(1500)
	now := testNow()
	res, _ := BuyBuilding(p, domain.BuildingSeriesLot, now)
	b := res.Building
	b.ID = 10
	StartProduction(p, 10, now)

	coinsBefore := p.Coins

	// сбор ровно в момент production_ends разрешён (закрытый интервал)
	collect, err := CollectProduction(p, 10, now.Add(900*time.Second))
	if err != nil {
		t.Fatalf("collect at exact end failed: %v", err)
	}
	if collect.Income != 200 {
		t.Fatalf("income = %d, want 200", collect.Income)
	}
	if p.Coins != coinsBefore+200 {
		t.Fatalf("coins = %d, want %d", p.Coins, coinsBefore+200)
	}
	if collect.Resource != domain.ResourceSeries || collect.ResourceQty != 1 {
		t.Fatalf("resource credit = %s x%d, want series x1", collect.Resource, collect.ResourceQty)
	}
	if p.ResourceQty(domain.ResourceSeries) != 1 {
		t.Fatalf("inventory not credited")
	}
	if b.IsProducing || b.ProductionStarted != nil || b.ProductionEnds != nil {
		t.Fatalf("building must be idle after collect")
	}
}

func TestCollectProductionIdle(t *testing.T) {
	p := testPlayer(1500)
	res, _ := BuyBuilding(p, domain.BuildingSeriesLot, testNow())
	res.Building.ID = 10

	if _, err := CollectProduction(p, 10, testNow()); !errors.Is(err, ErrNotProducing) {
		t.Fatalf("expected ErrNotProducing, got %v", err)
	}
}

func TestCollectResourceQtyScalesWithLevel(t *testing.T) {
	p := testPlayer(1500)
	now := testNow()
	res, _ := BuyBuilding(p, domain.BuildingSeriesLot, now)
	b := res.Building
	b.ID = 10
	b.Level = 4
	StartProduction(p, 10, now)

	collect, err := CollectProduction(p, 10, now.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if collect.ResourceQty != 4 {
		t.Fatalf("resource qty = %d, want 4", collect.ResourceQty)
	}
}

func TestUpgradeBuildingWhileProducing(t *testing.T) {
	p := testPlayer(100000)
	now := testNow()
	res, _ := BuyBuilding(p, domain.BuildingSeriesLot, now)
	b := res.Building
	b.ID = 10
	StartProduction(p, 10, now)

	coinsBefore := p.Coins
	if _, err := UpgradeBuilding(p, 10); !errors.Is(err, ErrUpgradeProducing) {
		t.Fatalf("expected ErrUpgradeProducing, got %v", err)
	}
	if p.Coins != coinsBefore || b.Level != 1 {
		t.Fatalf("failed upgrade must not change anything")
	}
}

func TestUpgradeBuildingSuccess(t *testing.T) {
	p := testPlayer(100000)
	res, _ := BuyBuilding(p, domain.BuildingSeriesLot, testNow())
	b := res.Building
	b.ID = 10

	coinsBefore := p.Coins
	up, err := UpgradeBuilding(p, 10)
	if err != nil {
		t.Fatalf("upgrade failed: %v", err)
	}
	// cost 1000 * 2^1 = 2000
	if up.Cost != 2000 || p.Coins != coinsBefore-2000 {
		t.Fatalf("cost = %d, coins = %d", up.Cost, p.Coins)
	}
	if up.NewLevel != 2 || b.Level != 2 {
		t.Fatalf("level = %d, want 2", b.Level)
	}
	// 200 * 1.25 = 250
	if up.NewIncome != 250 {
		t.Fatalf("new income = %d, want 250", up.NewIncome)
	}
}
