package game

import "hypetown_backend/internal/domain"

// TapResult - результат обработки пачки тапов
type TapResult struct {
	Earned     int64 `json:"earned"`
	TotalCoins int64 `json:"total_coins"`
	TapPower   int64 `json:"tap_power"`
}

// Tap начисляет монеты за пачку тапов. Count зажимается в [1, MaxTapsPerCall]
// независимо от того, что прислал клиент.
func Tap(p *domain.Player, count int) *TapResult {
	if count < 1 {
		count = 1
	}
	if count > MaxTapsPerCall {
		count = MaxTapsPerCall
	}

	earned := p.TapPower * int64(count)
	p.Coins += earned

	return &TapResult{
		Earned:     earned,
		TotalCoins: p.Coins,
		TapPower:   p.TapPower,
	}
}

// BuyUpgradeResult - результат покупки апгрейда кликера
type BuyUpgradeResult struct {
	NewLevel    int   `json:"new_level"`
	NewTapPower int64 `json:"new_tap_power"`
	Cost        int64 `json:"cost"`
}

// BuyClickerUpgrade покупает апгрейд кликера и пересчитывает tap_power.
// Сила тапа всегда пересчитывается формулой целиком, а не патчится
// инкрементально.
func BuyClickerUpgrade(p *domain.Player, key domain.ClickerUpgradeType) (*BuyUpgradeResult, error) {
	info, ok := ClickerUpgrades[key]
	if !ok {
		return nil, ErrUnknownUpgrade
	}

	current := p.UpgradeByType(key)
	currentLevel := 0
	if current != nil {
		currentLevel = current.Level
	}

	if currentLevel >= info.MaxLevel {
		return nil, &MaxLevelError{MaxLevel: info.MaxLevel}
	}

	cost := ClickerUpgradeCost(key, currentLevel)
	if p.Coins < cost {
		return nil, &InsufficientFundsError{Cost: cost}
	}

	p.Coins -= cost

	if current != nil {
		current.Level++
	} else {
		p.ClickerUpgrades = append(p.ClickerUpgrades, &domain.ClickerUpgrade{
			PlayerID:    p.ID,
			UpgradeType: key,
			Level:       1,
		})
	}

	p.TapPower = TapPower(p.ClickerUpgrades, p.Archetype)

	return &BuyUpgradeResult{
		NewLevel:    currentLevel + 1,
		NewTapPower: p.TapPower,
		Cost:        cost,
	}, nil
}
