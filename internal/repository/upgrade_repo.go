package repository

import (
	"context"

	"hypetown_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClickerUpgradeRepository struct {
	db *pgxpool.Pool
}

func NewClickerUpgradeRepository(db *pgxpool.Pool) *ClickerUpgradeRepository {
	return &ClickerUpgradeRepository{db: db}
}

// UpsertTx записывает уровень апгрейда; (player_id, upgrade_type) уникальны
func (r *ClickerUpgradeRepository) UpsertTx(ctx context.Context, tx pgx.Tx, u *domain.ClickerUpgrade) error {
	return tx.QueryRow(ctx,
		`INSERT INTO clicker_upgrades (player_id, upgrade_type, level)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (player_id, upgrade_type)
		 DO UPDATE SET level = EXCLUDED.level
		 RETURNING id`,
		u.PlayerID, u.UpgradeType, u.Level,
	).Scan(&u.ID)
}
