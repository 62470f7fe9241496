package game

import (
	"math/rand"
	"sort"
	"time"

	"hypetown_backend/internal/domain"
)

// Движок заказов: генерация и выполнение. Рандом инжектируется, чтобы
// генерация была воспроизводимой в тестах.

// GenerateOrders добирает заказы игрока до MaxActiveOrders. Возвращает
// только новые заказы; если свободных слотов нет - пустой срез (это не
// ошибка).
func GenerateOrders(p *domain.Player, rng *rand.Rand, now time.Time) []*domain.Order {
	slots := MaxActiveOrders - len(p.ActiveOrders(now))
	if slots <= 0 {
		return nil
	}

	arch := Archetypes[p.Archetype]
	ordersBonus := arch.BonusType == "orders"

	var created []*domain.Order
	for i := 0; i < slots; i++ {
		category := OrderCategories[rng.Intn(len(OrderCategories))]
		templates := OrderTemplates[category]
		tpl := templates[rng.Intn(len(templates))]
		npc := pickNPC(category, rng)

		reqs, coins, xp, bonus := scaleOrder(tpl, p.Level, rng)

		// Бонус журналиста к наградам (не к требованиям и не к bonus_coins)
		if ordersBonus {
			coins = int64(float64(coins) * (1 + arch.Bonus))
			xp = int64(float64(xp) * (1 + arch.Bonus))
		}

		order := &domain.Order{
			PlayerID:         p.ID,
			NPCName:          npc.Name,
			NPCCategory:      category,
			Description:      tpl.Description,
			Requirements:     reqs,
			RewardCoins:      coins,
			RewardXP:         xp,
			BonusRewardCoins: bonus,
			CreatedAt:        now,
			ExpiresAt:        now.Add(OrderDurationHours * time.Hour),
		}
		p.Orders = append(p.Orders, order)
		created = append(created, order)
	}

	return created
}

func pickNPC(category string, rng *rand.Rand) NPCInfo {
	npcs := NPCs[category]
	if len(npcs) == 0 {
		return NPCInfo{Name: "Неизвестный", Emoji: "❓"}
	}
	return npcs[rng.Intn(len(npcs))]
}

// NPCEmoji возвращает эмодзи NPC по категории и имени
func NPCEmoji(category, name string) string {
	for _, npc := range NPCs[category] {
		if npc.Name == name {
			return npc.Emoji
		}
	}
	return "❓"
}

// scaleOrder масштабирует шаблон под уровень игрока: +10% к наградам и
// +5% к количествам за каждый уровень после первого. Бонусные монеты
// считаются от наград до бонуса архетипа.
func scaleOrder(tpl OrderTemplate, playerLevel int, rng *rand.Rand) (map[domain.Resource]int, int64, int64, int64) {
	rewardMult := 1.0 + float64(playerLevel-1)*0.1
	qtyMult := 1.0 + float64(playerLevel-1)*0.05

	// Обход в фиксированном порядке, иначе расход rng зависит от порядка
	// итерации map и генерация перестаёт быть воспроизводимой
	keys := make([]domain.Resource, 0, len(tpl.Resources))
	for res := range tpl.Resources {
		keys = append(keys, res)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	reqs := make(map[domain.Resource]int, len(tpl.Resources))
	for _, res := range keys {
		qr := tpl.Resources[res]
		qty := qr.Min
		if qr.Max > qr.Min {
			qty += rng.Intn(qr.Max - qr.Min + 1)
		}
		qty = int(float64(qty) * qtyMult)
		if qty < 1 {
			qty = 1
		}
		reqs[res] = qty
	}

	coins := int64(float64(tpl.BaseCoins) * rewardMult)
	xp := int64(float64(tpl.BaseXP) * rewardMult)
	bonus := int64(float64(coins) * 0.5)

	return reqs, coins, xp, bonus
}

// FulfillResult - результат выполнения заказа
type FulfillResult struct {
	CoinsEarned int64  `json:"coins_earned"`
	XPEarned    int64  `json:"xp_earned"`
	GotBonus    bool   `json:"got_bonus"`
	BonusAmount int64  `json:"bonus_amount"`
	LeveledUp   bool   `json:"leveled_up"`
	NewLevel    int    `json:"new_level"`
	NPCName     string `json:"npc_name"`
}

// FulfillOrder проверяет требования заказа и атомарно (в памяти агрегата)
// списывает ресурсы и начисляет награды. Проверка и списание идут по одному
// снимку инвентаря; при нехватке хотя бы одного ресурса агрегат не меняется.
func FulfillOrder(p *domain.Player, orderID int64, now time.Time) (*FulfillResult, error) {
	order := p.OrderByID(orderID)
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.IsCompleted() {
		return nil, ErrOrderCompleted
	}

	if now.After(order.ExpiresAt) {
		return nil, ErrOrderExpired
	}

	missing := make(map[domain.Resource]int)
	for res, need := range order.Requirements {
		have := p.ResourceQty(res)
		if have < need {
			missing[res] = need - have
		}
	}
	if len(missing) > 0 {
		return nil, &InsufficientResourcesError{Missing: missing}
	}

	for res, need := range order.Requirements {
		for _, item := range p.Inventory {
			if item.Resource == res {
				item.Quantity -= need
				break
			}
		}
	}

	total := order.RewardCoins
	gotBonus := now.Sub(order.CreatedAt) <= BonusWindowMinutes*time.Minute
	if gotBonus {
		total += order.BonusRewardCoins
	}

	p.Coins += total
	levelRes := AddXP(p, order.RewardXP)

	completed := now
	order.CompletedAt = &completed

	res := &FulfillResult{
		CoinsEarned: total,
		XPEarned:    order.RewardXP,
		GotBonus:    gotBonus,
		LeveledUp:   levelRes.LeveledUp,
		NewLevel:    levelRes.NewLevel,
		NPCName:     order.NPCName,
	}
	if gotBonus {
		res.BonusAmount = order.BonusRewardCoins
	}
	return res, nil
}
