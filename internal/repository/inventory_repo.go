package repository

import (
	"context"

	"hypetown_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InventoryRepository struct {
	db *pgxpool.Pool
}

func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// UpsertTx записывает абсолютное количество ресурса. Запись создаётся при
// первом начислении; (player_id, resource) уникальны на уровне схемы.
func (r *InventoryRepository) UpsertTx(ctx context.Context, tx pgx.Tx, item *domain.InventoryItem) error {
	return tx.QueryRow(ctx,
		`INSERT INTO inventory (player_id, resource, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (player_id, resource)
		 DO UPDATE SET quantity = EXCLUDED.quantity
		 RETURNING id`,
		item.PlayerID, item.Resource, item.Quantity,
	).Scan(&item.ID)
}

// UpsertAllTx записывает весь инвентарь агрегата
func (r *InventoryRepository) UpsertAllTx(ctx context.Context, tx pgx.Tx, items []*domain.InventoryItem) error {
	for _, item := range items {
		if err := r.UpsertTx(ctx, tx, item); err != nil {
			return err
		}
	}
	return nil
}
