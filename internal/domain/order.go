package domain

import "time"

// Order - заказ от NPC. Истёкшие заказы не удаляются, только
// исключаются из активных выборок.
type Order struct {
	ID               int64            `db:"id" json:"id"`
	PlayerID         int64            `db:"player_id" json:"player_id"`
	NPCName          string           `db:"npc_name" json:"npc_name"`
	NPCCategory      string           `db:"npc_category" json:"npc_category"`
	Description      string           `db:"description" json:"description"`
	Requirements     map[Resource]int `db:"requirements" json:"requirements"`
	RewardCoins      int64            `db:"reward_coins" json:"reward_coins"`
	RewardXP         int64            `db:"reward_xp" json:"reward_xp"`
	BonusRewardCoins int64            `db:"bonus_reward_coins" json:"bonus_reward_coins"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	ExpiresAt        time.Time        `db:"expires_at" json:"expires_at"`
	CompletedAt      *time.Time       `db:"completed_at" json:"completed_at,omitempty"`
}

// IsCompleted - заказ уже выполнен
func (o *Order) IsCompleted() bool {
	return o.CompletedAt != nil
}

// IsExpired - срок заказа вышел, а он так и не был выполнен
func (o *Order) IsExpired(now time.Time) bool {
	return o.CompletedAt == nil && now.After(o.ExpiresAt)
}

// IsActive - заказ можно выполнить
func (o *Order) IsActive(now time.Time) bool {
	return o.CompletedAt == nil && !now.After(o.ExpiresAt)
}
