package repository

import (
	"context"
	"time"

	"hypetown_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BuildingRepository struct {
	db *pgxpool.Pool
}

func NewBuildingRepository(db *pgxpool.Pool) *BuildingRepository {
	return &BuildingRepository{db: db}
}

// InsertTx создаёт здание, купленное в рамках транзакции
func (r *BuildingRepository) InsertTx(ctx context.Context, tx pgx.Tx, b *domain.Building) error {
	return tx.QueryRow(ctx,
		`INSERT INTO buildings (player_id, type, level, last_collected)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		b.PlayerID, b.Type, b.Level, b.LastCollected,
	).Scan(&b.ID)
}

// UpdateTx записывает уровень и таймерные поля здания
func (r *BuildingRepository) UpdateTx(ctx context.Context, tx pgx.Tx, b *domain.Building) error {
	_, err := tx.Exec(ctx,
		`UPDATE buildings
		 SET level = $1, is_producing = $2, production_started = $3,
		     production_ends = $4, last_collected = $5
		 WHERE id = $6`,
		b.Level, b.IsProducing, b.ProductionStarted, b.ProductionEnds,
		b.LastCollected, b.ID,
	)
	return err
}

// ReadyBuilding - готовое к сбору здание вместе с tg_id владельца
// (для свипа уведомлений)
type ReadyBuilding struct {
	BuildingID     int64
	PlayerID       int64
	PlayerTgID     int64
	Type           domain.BuildingType
	ProductionEnds time.Time
}

// GetReady возвращает все здания с завершённым, но не собранным
// производством
func (r *BuildingRepository) GetReady(ctx context.Context) ([]ReadyBuilding, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.player_id, p.tg_id, b.type, b.production_ends
		 FROM buildings b
		 JOIN players p ON p.id = b.player_id
		 WHERE b.is_producing = true AND b.production_ends <= NOW()`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ReadyBuilding
	for rows.Next() {
		var rb ReadyBuilding
		if err := rows.Scan(&rb.BuildingID, &rb.PlayerID, &rb.PlayerTgID, &rb.Type, &rb.ProductionEnds); err != nil {
			return nil, err
		}
		result = append(result, rb)
	}
	return result, rows.Err()
}
