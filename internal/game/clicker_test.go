package game

import (
	"errors"
	"testing"

	"hypetown_backend/internal/domain"
)

func TestTapClamping(t *testing.T) {
	p := testPlayer(0)
	p.TapPower = 5

	if res := Tap(p, 10); res.Earned != 50 {
		t.Fatalf("Tap(10) earned = %d, want 50", res.Earned)
	}
	// выше серверного лимита - зажимается до 50 тапов
	if res := Tap(p, 1000); res.Earned != 250 {
		t.Fatalf("Tap(1000) earned = %d, want 250", res.Earned)
	}
	// ноль и отрицательные значения превращаются в один тап
	if res := Tap(p, 0); res.Earned != 5 {
		t.Fatalf("Tap(0) earned = %d, want 5", res.Earned)
	}
	if p.Coins != 50+250+5 {
		t.Fatalf("coins = %d, want 305", p.Coins)
	}
}

func TestBuyClickerUpgradeUnknown(t *testing.T) {
	p := testPlayer(1000)
	if _, err := BuyClickerUpgrade(p, "jetpack"); !errors.Is(err, ErrUnknownUpgrade) {
		t.Fatalf("expected ErrUnknownUpgrade, got %v", err)
	}
}

func TestBuyClickerUpgradeMaxLevel(t *testing.T) {
	p := testPlayer(10000000)
	p.ClickerUpgrades = []*domain.ClickerUpgrade{
		{UpgradeType: domain.UpgradeGoldButton, Level: 3},
	}

	_, err := BuyClickerUpgrade(p, domain.UpgradeGoldButton)
	var maxed *MaxLevelError
	if !errors.As(err, &maxed) {
		t.Fatalf("expected MaxLevelError, got %v", err)
	}
	if maxed.MaxLevel != 3 {
		t.Fatalf("max level = %d, want 3", maxed.MaxLevel)
	}
}

func TestBuyClickerUpgradeInsufficientFunds(t *testing.T) {
	p := testPlayer(49) // smartphone стоит 50

	_, err := BuyClickerUpgrade(p, domain.UpgradeSmartphone)
	var funds *InsufficientFundsError
	if !errors.As(err, &funds) {
		t.Fatalf("expected InsufficientFundsError, got %v", err)
	}
	if funds.Cost != 50 {
		t.Fatalf("reported cost = %d, want 50", funds.Cost)
	}
}

func TestBuyClickerUpgradeRecomputesTapPower(t *testing.T) {
	p := testPlayer(1000)
	p.TapPower = 1

	res, err := BuyClickerUpgrade(p, domain.UpgradeSmartphone)
	if err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if res.NewLevel != 1 || res.Cost != 50 {
		t.Fatalf("level = %d cost = %d, want 1 and 50", res.NewLevel, res.Cost)
	}
	// tap_power пересчитан формулой: 1 + 1 = 2
	if p.TapPower != 2 || res.NewTapPower != 2 {
		t.Fatalf("tap power = %d, want 2", p.TapPower)
	}
	if p.Coins != 950 {
		t.Fatalf("coins = %d, want 950", p.Coins)
	}

	// вторая покупка повышает существующую запись, а не создаёт новую
	if _, err := BuyClickerUpgrade(p, domain.UpgradeSmartphone); err != nil {
		t.Fatalf("second buy failed: %v", err)
	}
	if len(p.ClickerUpgrades) != 1 || p.ClickerUpgrades[0].Level != 2 {
		t.Fatalf("expected single upgrade record at level 2")
	}
	if p.TapPower != 3 {
		t.Fatalf("tap power after second buy = %d, want 3", p.TapPower)
	}
}
