package game

import (
	"testing"

	"hypetown_backend/internal/domain"
)

func TestAddXPNoLevelUp(t *testing.T) {
	p := testPlayer(0)

	res := AddXP(p, 100)
	if res.LeveledUp {
		t.Fatalf("100 xp must not reach level 2 (threshold %d)", XPForLevel(2))
	}
	if p.Level != 1 || p.XP != 100 {
		t.Fatalf("level = %d xp = %d, want 1 and 100", p.Level, p.XP)
	}
}

func TestAddXPSingleLevelUp(t *testing.T) {
	p := testPlayer(0)

	res := AddXP(p, XPForLevel(2))
	if !res.LeveledUp || res.NewLevel != 2 {
		t.Fatalf("expected level up to 2, got %+v", res)
	}
}

func TestAddXPMultiLevelJump(t *testing.T) {
	// одно большое начисление пересекает несколько порогов сразу
	p := testPlayer(0)

	res := AddXP(p, XPForLevel(6))
	if res.NewLevel != 6 {
		t.Fatalf("level = %d, want 6", res.NewLevel)
	}
	assertLevelInvariant(t, p)
}

func TestAddXPLevelInvariant(t *testing.T) {
	p := testPlayer(0)
	grants := []int64{50, 300, 1, 999, 5000, 123456}
	for _, g := range grants {
		AddXP(p, g)
		assertLevelInvariant(t, p)
	}
}

// assertLevelInvariant - уровень всегда наибольший L с xp >= порога L
func assertLevelInvariant(t *testing.T, p *domain.Player) {
	t.Helper()
	if p.Level > 1 && p.XP < XPForLevel(p.Level) {
		t.Fatalf("xp %d below own level threshold %d (level %d)", p.XP, XPForLevel(p.Level), p.Level)
	}
	if p.XP >= XPForLevel(p.Level+1) {
		t.Fatalf("xp %d already satisfies next threshold %d (level %d)", p.XP, XPForLevel(p.Level+1), p.Level)
	}
}
