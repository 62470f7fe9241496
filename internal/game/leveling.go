package game

import "hypetown_backend/internal/domain"

// AddXPResult - результат начисления XP
type AddXPResult struct {
	XPAdded   int64 `json:"xp_added"`
	LeveledUp bool  `json:"leveled_up"`
	NewLevel  int   `json:"new_level"`
}

// AddXP начисляет XP и повышает уровень, пока хватает порога.
// Одно большое начисление может пересечь несколько уровней сразу.
func AddXP(p *domain.Player, amount int64) *AddXPResult {
	p.XP += amount

	leveled := false
	for p.XP >= XPForLevel(p.Level+1) {
		p.Level++
		leveled = true
	}

	return &AddXPResult{
		XPAdded:   amount,
		LeveledUp: leveled,
		NewLevel:  p.Level,
	}
}
