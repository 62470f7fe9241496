package domain

import "time"

// Типы движений монет
const (
	CoinTxTap         = "tap"
	CoinTxCollect     = "collect"
	CoinTxBuyBuilding = "buy_building"
	CoinTxUpgradeBld  = "upgrade_building"
	CoinTxBuyUpgrade  = "buy_upgrade"
	CoinTxOrderReward = "order_reward"
	CoinTxAdminGrant  = "admin_grant"
)

// CoinTransaction - запись о движении монет игрока
type CoinTransaction struct {
	ID        int64                  `db:"id" json:"id"`
	PlayerID  int64                  `db:"player_id" json:"player_id"`
	Type      string                 `db:"type" json:"type"`
	Amount    int64                  `db:"amount" json:"amount"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}
