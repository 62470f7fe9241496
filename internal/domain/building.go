package domain

import "time"

// BuildingType - тип здания (фермы)
type BuildingType string

const (
	BuildingCinemaStudio  BuildingType = "cinema_studio"
	BuildingSeriesLot     BuildingType = "series_lot"
	BuildingGameStudio    BuildingType = "game_studio"
	BuildingCyberArena    BuildingType = "cyber_arena"
	BuildingRecording     BuildingType = "recording"
	BuildingConcertHall   BuildingType = "concert_hall"
	BuildingSportsArena   BuildingType = "sports_arena"
	BuildingTVStudio      BuildingType = "tv_studio"
	BuildingPodcastStudio BuildingType = "podcast_studio"
)

// Building - здание игрока с таймером производства.
// Инвариант: ProductionEnds установлен тогда и только тогда, когда IsProducing.
type Building struct {
	ID                int64        `db:"id" json:"id"`
	PlayerID          int64        `db:"player_id" json:"player_id"`
	Type              BuildingType `db:"type" json:"type"`
	Level             int          `db:"level" json:"level"`
	IsProducing       bool         `db:"is_producing" json:"is_producing"`
	ProductionStarted *time.Time   `db:"production_started" json:"production_started,omitempty"`
	ProductionEnds    *time.Time   `db:"production_ends" json:"production_ends,omitempty"`
	LastCollected     time.Time    `db:"last_collected" json:"last_collected"`
}

// IsReady сообщает, готово ли производство к сбору.
// Сбор ровно в момент production_ends разрешён.
func (b *Building) IsReady(now time.Time) bool {
	return b.IsProducing && b.ProductionEnds != nil && !now.Before(*b.ProductionEnds)
}

// RemainingSec возвращает секунды до готовности (0, если не производит или готово)
func (b *Building) RemainingSec(now time.Time) int {
	if !b.IsProducing || b.ProductionEnds == nil {
		return 0
	}
	rem := int(b.ProductionEnds.Sub(now).Seconds())
	if rem < 0 {
		return 0
	}
	return rem
}
