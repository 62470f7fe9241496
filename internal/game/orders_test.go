package game

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"hypetown_backend/internal/domain"
)

func templateByDescription(t *testing.T, category, desc string) OrderTemplate {
	t.Helper()
	for _, tpl := range OrderTemplates[category] {
		if tpl.Description == desc {
			return tpl
		}
	}
	t.Fatalf("template %q not found in category %q", desc, category)
	return OrderTemplate{}
}

func TestGenerateOrdersFillsSlots(t *testing.T) {
	p := testPlayer(0)
	rng := rand.New(rand.NewSource(42))
	now := testNow()

	created := GenerateOrders(p, rng, now)
	if len(created) != MaxActiveOrders {
		t.Fatalf("generated %d orders, want %d", len(created), MaxActiveOrders)
	}

	for _, o := range created {
		tpl := templateByDescription(t, o.NPCCategory, o.Description)

		// уровень 1: награды равны базе шаблона, бонус - половина
		if o.RewardCoins != tpl.BaseCoins || o.RewardXP != tpl.BaseXP {
			t.Fatalf("rewards %d/%d, want template base %d/%d", o.RewardCoins, o.RewardXP, tpl.BaseCoins, tpl.BaseXP)
		}
		if o.BonusRewardCoins != tpl.BaseCoins/2 {
			t.Fatalf("bonus = %d, want %d", o.BonusRewardCoins, tpl.BaseCoins/2)
		}
		if !o.ExpiresAt.Equal(now.Add(OrderDurationHours * time.Hour)) {
			t.Fatalf("expires_at = %v, want now+4h", o.ExpiresAt)
		}
		for res, qty := range o.Requirements {
			qr, ok := tpl.Resources[res]
			if !ok {
				t.Fatalf("requirement %s not in template", res)
			}
			if qty < qr.Min || qty > qr.Max {
				t.Fatalf("qty %d for %s outside template range [%d,%d]", qty, res, qr.Min, qr.Max)
			}
		}

		found := false
		for _, npc := range NPCs[o.NPCCategory] {
			if npc.Name == o.NPCName {
				found = true
			}
		}
		if !found {
			t.Fatalf("npc %q not in roster of %q", o.NPCName, o.NPCCategory)
		}
	}

	// слоты заняты - повторная генерация ничего не добавляет
	if extra := GenerateOrders(p, rng, now); len(extra) != 0 {
		t.Fatalf("expected no-op when all slots busy, got %d orders", len(extra))
	}
}

func TestGenerateOrdersReproducible(t *testing.T) {
	now := testNow()

	a := testPlayer(0)
	b := testPlayer(0)
	GenerateOrders(a, rand.New(rand.NewSource(7)), now)
	GenerateOrders(b, rand.New(rand.NewSource(7)), now)

	for i := range a.Orders {
		ao, bo := a.Orders[i], b.Orders[i]
		if ao.Description != bo.Description || ao.NPCName != bo.NPCName || ao.RewardCoins != bo.RewardCoins {
			t.Fatalf("same seed produced different orders at index %d", i)
		}
		for res, qty := range ao.Requirements {
			if bo.Requirements[res] != qty {
				t.Fatalf("same seed produced different requirements for %s", res)
			}
		}
	}
}

func TestGenerateOrdersRefillsExpiredSlots(t *testing.T) {
	p := testPlayer(0)
	now := testNow()

	// два мёртвых заказа: истёкший и выполненный - оба не занимают слоты
	done := now.Add(-time.Hour)
	p.Orders = []*domain.Order{
		{ID: 1, ExpiresAt: now.Add(-time.Minute)},
		{ID: 2, ExpiresAt: now.Add(time.Hour), CompletedAt: &done},
		{ID: 3, ExpiresAt: now.Add(time.Hour)},
	}

	created := GenerateOrders(p, rand.New(rand.NewSource(1)), now)
	if len(created) != 2 {
		t.Fatalf("generated %d orders, want 2", len(created))
	}
}

func TestGenerateOrdersJournalistBonus(t *testing.T) {
	now := testNow()

	plain := testPlayer(0)
	journo := testPlayer(0)
	journo.Archetype = domain.ArchetypeJournalist

	GenerateOrders(plain, rand.New(rand.NewSource(3)), now)
	GenerateOrders(journo, rand.New(rand.NewSource(3)), now)

	for i := range plain.Orders {
		po, jo := plain.Orders[i], journo.Orders[i]
		// +15% к монетам и XP
		if jo.RewardCoins != int64(float64(po.RewardCoins)*1.15) {
			t.Fatalf("journalist coins = %d, want %d", jo.RewardCoins, int64(float64(po.RewardCoins)*1.15))
		}
		if jo.RewardXP != int64(float64(po.RewardXP)*1.15) {
			t.Fatalf("journalist xp = %d, want %d", jo.RewardXP, int64(float64(po.RewardXP)*1.15))
		}
		// бонусные монеты считаются до бонуса архетипа
		if jo.BonusRewardCoins != po.BonusRewardCoins {
			t.Fatalf("bonus coins must not get the archetype bonus")
		}
		// требования не масштабируются бонусом
		for res, qty := range po.Requirements {
			if jo.Requirements[res] != qty {
				t.Fatalf("journalist requirements changed for %s", res)
			}
		}
	}
}

func TestGenerateOrdersLevelScaling(t *testing.T) {
	now := testNow()
	p := testPlayer(0)
	p.Level = 11 // множитель наград 2.0, количеств 1.5

	created := GenerateOrders(p, rand.New(rand.NewSource(5)), now)
	for _, o := range created {
		tpl := templateByDescription(t, o.NPCCategory, o.Description)
		if o.RewardCoins != int64(float64(tpl.BaseCoins)*2.0) {
			t.Fatalf("reward coins = %d, want %d", o.RewardCoins, int64(float64(tpl.BaseCoins)*2.0))
		}
		for res, qty := range o.Requirements {
			qr := tpl.Resources[res]
			lo := int(float64(qr.Min) * 1.5)
			hi := int(float64(qr.Max) * 1.5)
			if lo < 1 {
				lo = 1
			}
			if qty < lo || qty > hi {
				t.Fatalf("scaled qty %d for %s outside [%d,%d]", qty, res, lo, hi)
			}
		}
	}
}

func fulfillablePlayer(now time.Time) (*domain.Player, *domain.Order) {
	p := testPlayer(0)
	order := &domain.Order{
		ID:               77,
		PlayerID:         p.ID,
		NPCName:          "Drake",
		NPCCategory:      "music",
		Requirements:     map[domain.Resource]int{domain.ResourceTrack: 3, domain.ResourceConcert: 1},
		RewardCoins:      800,
		RewardXP:         50,
		BonusRewardCoins: 400,
		CreatedAt:        now,
		ExpiresAt:        now.Add(OrderDurationHours * time.Hour),
	}
	p.Orders = []*domain.Order{order}
	p.AddResource(domain.ResourceTrack, 5)
	p.AddResource(domain.ResourceConcert, 2)
	return p, order
}

func TestFulfillOrderNotFound(t *testing.T) {
	p, _ := fulfillablePlayer(testNow())
	if _, err := FulfillOrder(p, 999, testNow()); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestFulfillOrderAlreadyCompleted(t *testing.T) {
	now := testNow()
	p, order := fulfillablePlayer(now)
	done := now
	order.CompletedAt = &done

	if _, err := FulfillOrder(p, 77, now); !errors.Is(err, ErrOrderCompleted) {
		t.Fatalf("expected ErrOrderCompleted, got %v", err)
	}
}

func TestFulfillOrderExpired(t *testing.T) {
	now := testNow()
	p, _ := fulfillablePlayer(now)

	if _, err := FulfillOrder(p, 77, now.Add(5*time.Hour)); !errors.Is(err, ErrOrderExpired) {
		t.Fatalf("expected ErrOrderExpired, got %v", err)
	}
}

func TestFulfillOrderInsufficientResourcesNoPartialDebit(t *testing.T) {
	now := testNow()
	p, order := fulfillablePlayer(now)
	order.Requirements[domain.ResourceMatch] = 2 // матчей в инвентаре нет

	coinsBefore := p.Coins
	tracksBefore := p.ResourceQty(domain.ResourceTrack)

	_, err := FulfillOrder(p, 77, now)
	var short *InsufficientResourcesError
	if !errors.As(err, &short) {
		t.Fatalf("expected InsufficientResourcesError, got %v", err)
	}
	if short.Missing[domain.ResourceMatch] != 2 {
		t.Fatalf("missing = %v, want match:2", short.Missing)
	}

	// никаких частичных списаний
	if p.Coins != coinsBefore || p.ResourceQty(domain.ResourceTrack) != tracksBefore {
		t.Fatalf("failed fulfillment must leave inventory and coins unchanged")
	}
	if order.CompletedAt != nil {
		t.Fatalf("order must stay uncompleted")
	}
}

func TestFulfillOrderWithinBonusWindow(t *testing.T) {
	now := testNow()
	p, order := fulfillablePlayer(now)

	// 10 минут после создания - внутри 30-минутного окна
	res, err := FulfillOrder(p, 77, now.Add(10*time.Minute))
	if err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}
	if !res.GotBonus || res.CoinsEarned != 1200 {
		t.Fatalf("earned = %d bonus = %v, want 1200 with bonus", res.CoinsEarned, res.GotBonus)
	}
	if p.Coins != 1200 {
		t.Fatalf("coins = %d, want 1200", p.Coins)
	}
	if p.ResourceQty(domain.ResourceTrack) != 2 || p.ResourceQty(domain.ResourceConcert) != 1 {
		t.Fatalf("resources not debited correctly")
	}
	if order.CompletedAt == nil {
		t.Fatalf("completed_at not set")
	}
}

func TestFulfillOrderAfterBonusWindow(t *testing.T) {
	now := testNow()
	p, _ := fulfillablePlayer(now)

	// 31 минута - окно закрыто, только базовая награда
	res, err := FulfillOrder(p, 77, now.Add(31*time.Minute))
	if err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}
	if res.GotBonus || res.CoinsEarned != 800 {
		t.Fatalf("earned = %d bonus = %v, want 800 without bonus", res.CoinsEarned, res.GotBonus)
	}
}

func TestFulfillOrderGrantsXPAndLevels(t *testing.T) {
	now := testNow()
	p, order := fulfillablePlayer(now)
	order.RewardXP = XPForLevel(3) // хватает сразу на два уровня

	res, err := FulfillOrder(p, 77, now)
	if err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}
	if !res.LeveledUp || res.NewLevel != 3 {
		t.Fatalf("level = %d leveled = %v, want 3", res.NewLevel, res.LeveledUp)
	}
	assertLevelInvariant(t, p)
}
