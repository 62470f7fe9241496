package service

import (
	"context"

	"hypetown_backend/internal/cache"
	"hypetown_backend/internal/domain"
	"hypetown_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminService - операции для админ-бота: статистика и ручные начисления
type AdminService struct {
	db      *pgxpool.Pool
	players *repository.PlayerRepository
	coinTx  *repository.CoinTransactionRepository
}

func NewAdminService(db *pgxpool.Pool) *AdminService {
	return &AdminService{
		db:      db,
		players: repository.NewPlayerRepository(db),
		coinTx:  repository.NewCoinTransactionRepository(db),
	}
}

type Stats struct {
	Players        int64
	TotalCoins     int64
	TotalBuildings int64
	OrdersDone     int64
	ActiveToday    int64
}

func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM players),
			(SELECT COALESCE(SUM(coins), 0) FROM players),
			(SELECT COUNT(*) FROM buildings),
			(SELECT COUNT(*) FROM orders WHERE completed_at IS NOT NULL),
			(SELECT COUNT(*) FROM players WHERE last_active > NOW() - INTERVAL '24 hours')
	`).Scan(&st.Players, &st.TotalCoins, &st.TotalBuildings, &st.OrdersDone, &st.ActiveToday)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *AdminService) FindPlayer(ctx context.Context, tgID int64) (*domain.Player, error) {
	return s.players.GetByTgID(ctx, tgID)
}

func (s *AdminService) TopPlayers(ctx context.Context, limit int) ([]*domain.Player, error) {
	return s.players.GetTopByCoins(ctx, limit)
}

// GrantCoins начисляет игроку монеты вручную (может быть отрицательным).
// Баланс ниже нуля не опускается
func (s *AdminService) GrantCoins(ctx context.Context, tgID, amount int64, adminID int64) (int64, error) {
	player, err := s.players.GetByTgID(ctx, tgID)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.players.LockAggregateTx(ctx, tx, player.ID)
	if err != nil {
		return 0, err
	}

	p.Coins += amount
	if p.Coins < 0 {
		p.Coins = 0
	}

	if err := s.players.UpdateProgressTx(ctx, tx, p); err != nil {
		return 0, err
	}
	if err := s.coinTx.CreateWithTx(ctx, tx, &domain.CoinTransaction{
		PlayerID: p.ID,
		Type:     domain.CoinTxAdminGrant,
		Amount:   amount,
		Meta:     map[string]interface{}{"admin_id": adminID},
	}); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	cache.UpdateLeaderboard(ctx, p.ID, p.Coins)
	return p.Coins, nil
}
