package game

import (
	"math"

	"hypetown_backend/internal/domain"
)

// Чистые формулы экономики. Никаких часов, рандома и состояния -
// одинаковые аргументы всегда дают одинаковый результат.

// ProductionDuration - время производства в секундах:
// base_time * 0.95^(level-1), но не меньше MinProductionSec.
func ProductionDuration(t domain.BuildingType, level int) int {
	info := Buildings[t]
	sec := int(float64(info.BaseTime) * math.Pow(0.95, float64(level-1)))
	if sec < MinProductionSec {
		return MinProductionSec
	}
	return sec
}

// ProductionIncome - доход за один цикл производства:
// base_income * 1.25^(level-1) * бонус архетипа (если его категория
// совпадает с локацией здания).
func ProductionIncome(t domain.BuildingType, level int, archetype domain.Archetype) int64 {
	info := Buildings[t]
	income := float64(info.BaseIncome) * math.Pow(1.25, float64(level-1))

	arch, ok := Archetypes[archetype]
	if ok && bonusLocation[arch.BonusType] == info.Location {
		income *= 1.0 + arch.Bonus
	}

	return int64(income)
}

// BuildingUpgradeCost - стоимость апгрейда здания: cost * 2^current_level
func BuildingUpgradeCost(t domain.BuildingType, currentLevel int) int64 {
	info := Buildings[t]
	return int64(float64(info.Cost) * math.Pow(2, float64(currentLevel)))
}

// ClickerUpgradeCost - стоимость апгрейда кликера:
// base_cost * cost_mult^current_level
func ClickerUpgradeCost(t domain.ClickerUpgradeType, currentLevel int) int64 {
	info := ClickerUpgrades[t]
	return int64(float64(info.BaseCost) * math.Pow(info.CostMult, float64(currentLevel)))
}

// XPForLevel - суммарный XP, необходимый для достижения уровня
func XPForLevel(level int) int64 {
	return int64(float64(BaseXPPerLevel) * math.Pow(float64(level), XPLevelExp))
}

// XPToNextLevel - сколько XP не хватает до следующего уровня
func XPToNextLevel(p *domain.Player) int64 {
	required := XPForLevel(p.Level + 1)
	if required <= p.XP {
		return 0
	}
	return required - p.XP
}

// TapPower - итоговая сила тапа:
// (1 + сумма аддитивных бонусов) * произведение множителей * бонус архетипа.
// Всегда не меньше 1.
func TapPower(upgrades []*domain.ClickerUpgrade, archetype domain.Archetype) int64 {
	var additive int64
	multiplier := 1.0

	for _, u := range upgrades {
		info, ok := ClickerUpgrades[u.UpgradeType]
		if !ok {
			continue
		}
		if info.TapBonus > 0 {
			additive += info.TapBonus * int64(u.Level)
		}
		if info.Multiplier > 0 && u.Level > 0 {
			multiplier *= math.Pow(info.Multiplier, float64(u.Level))
		}
	}

	arch, ok := Archetypes[archetype]
	if ok && arch.BonusType == "clicker" {
		multiplier *= 1.0 + arch.Bonus
	}

	power := int64(float64(1+additive) * multiplier)
	if power < 1 {
		return 1
	}
	return power
}

// PassiveIncomePerMinute - теоретический доход (монет/мин) всех зданий
// игрока. Метрика мощности: не зависит от того, запущено ли производство.
func PassiveIncomePerMinute(buildings []*domain.Building, archetype domain.Archetype) int64 {
	var total int64
	for _, b := range buildings {
		if _, ok := Buildings[b.Type]; !ok {
			continue
		}
		income := ProductionIncome(b.Type, b.Level, archetype)
		sec := ProductionDuration(b.Type, b.Level)
		if sec > 0 {
			total += int64(float64(income) / (float64(sec) / 60.0))
		}
	}
	return total
}
