package domain

// Resource - тип ресурса, производимого зданиями
type Resource string

const (
	ResourceFilm      Resource = "film"
	ResourceSeries    Resource = "series"
	ResourceGame      Resource = "game"
	ResourceStream    Resource = "stream"
	ResourceTrack     Resource = "track"
	ResourceConcert   Resource = "concert"
	ResourceMatch     Resource = "match"
	ResourceBroadcast Resource = "broadcast"
	ResourcePodcast   Resource = "podcast"
)

// InventoryItem - запись инвентаря. Не более одной записи на (player, resource).
type InventoryItem struct {
	ID       int64    `db:"id" json:"id"`
	PlayerID int64    `db:"player_id" json:"player_id"`
	Resource Resource `db:"resource" json:"resource"`
	Quantity int      `db:"quantity" json:"quantity"`
}
