package repository

import (
	"context"
	"encoding/json"

	"hypetown_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

// InsertTx сохраняет новый заказ, сгенерированный движком
func (r *OrderRepository) InsertTx(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
	reqJSON, err := json.Marshal(o.Requirements)
	if err != nil {
		return err
	}

	return tx.QueryRow(ctx,
		`INSERT INTO orders (player_id, npc_name, npc_category, description,
		                     requirements, reward_coins, reward_xp,
		                     bonus_reward_coins, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		o.PlayerID, o.NPCName, o.NPCCategory, o.Description,
		reqJSON, o.RewardCoins, o.RewardXP,
		o.BonusRewardCoins, o.CreatedAt, o.ExpiresAt,
	).Scan(&o.ID)
}

// CompleteTx отмечает заказ выполненным
func (r *OrderRepository) CompleteTx(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
	_, err := tx.Exec(ctx,
		`UPDATE orders SET completed_at = $1 WHERE id = $2`,
		o.CompletedAt, o.ID,
	)
	return err
}

func scanOrders(q querier, ctx context.Context, playerID int64) ([]*domain.Order, error) {
	rows, err := q.Query(ctx,
		`SELECT id, player_id, npc_name, npc_category, description,
		        requirements, reward_coins, reward_xp, bonus_reward_coins,
		        created_at, expires_at, completed_at
		 FROM orders WHERE player_id = $1 ORDER BY expires_at`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Order
	for rows.Next() {
		var (
			o       domain.Order
			reqJSON []byte
		)
		if err := rows.Scan(&o.ID, &o.PlayerID, &o.NPCName, &o.NPCCategory,
			&o.Description, &reqJSON, &o.RewardCoins, &o.RewardXP,
			&o.BonusRewardCoins, &o.CreatedAt, &o.ExpiresAt, &o.CompletedAt); err != nil {
			return nil, err
		}
		if len(reqJSON) > 0 {
			if err := json.Unmarshal(reqJSON, &o.Requirements); err != nil {
				return nil, err
			}
		}
		result = append(result, &o)
	}
	return result, rows.Err()
}
