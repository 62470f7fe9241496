package repository

import (
	"context"
	"encoding/json"

	"hypetown_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CoinTransactionRepository struct {
	db *pgxpool.Pool
}

func NewCoinTransactionRepository(db *pgxpool.Pool) *CoinTransactionRepository {
	return &CoinTransactionRepository{db: db}
}

// CreateWithTx пишет запись о движении монет в той же транзакции, что и
// само движение
func (r *CoinTransactionRepository) CreateWithTx(ctx context.Context, dbTx pgx.Tx, tx *domain.CoinTransaction) error {
	metaJSON, err := json.Marshal(tx.Meta)
	if err != nil {
		metaJSON = []byte("{}")
	}

	return dbTx.QueryRow(ctx,
		`INSERT INTO coin_transactions (player_id, type, amount, meta)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		tx.PlayerID, tx.Type, tx.Amount, metaJSON,
	).Scan(&tx.ID, &tx.CreatedAt)
}

// GetByPlayerID возвращает последние движения монет игрока
func (r *CoinTransactionRepository) GetByPlayerID(ctx context.Context, playerID int64, limit int) ([]*domain.CoinTransaction, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, player_id, type, amount, meta, created_at
		 FROM coin_transactions
		 WHERE player_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		playerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.CoinTransaction
	for rows.Next() {
		var (
			tx       domain.CoinTransaction
			metaJSON []byte
		)
		if err := rows.Scan(&tx.ID, &tx.PlayerID, &tx.Type, &tx.Amount, &metaJSON, &tx.CreatedAt); err != nil {
			return nil, err
		}
		if len(metaJSON) > 0 {
			_ = json.Unmarshal(metaJSON, &tx.Meta)
		}
		result = append(result, &tx)
	}
	return result, rows.Err()
}
