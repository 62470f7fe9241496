package domain

// ClickerUpgradeType - тип апгрейда кликера
type ClickerUpgradeType string

const (
	UpgradeSmartphone ClickerUpgradeType = "smartphone"
	UpgradeCamera     ClickerUpgradeType = "camera"
	UpgradeLaptop     ClickerUpgradeType = "laptop"
	UpgradeStudio     ClickerUpgradeType = "studio"
	UpgradeProduction ClickerUpgradeType = "production"
	UpgradeMediaCorp  ClickerUpgradeType = "media_corp"
	UpgradeViralAlgo  ClickerUpgradeType = "viral_algo"
	UpgradeGoldButton ClickerUpgradeType = "gold_button"
)

// ClickerUpgrade - купленный апгрейд кликера.
// Отсутствие записи эквивалентно уровню 0.
type ClickerUpgrade struct {
	ID          int64              `db:"id" json:"id"`
	PlayerID    int64              `db:"player_id" json:"player_id"`
	UpgradeType ClickerUpgradeType `db:"upgrade_type" json:"upgrade_type"`
	Level       int                `db:"level" json:"level"`
}
