package service

import (
	"context"
	"time"

	"hypetown_backend/internal/cache"
	"hypetown_backend/internal/domain"
	"hypetown_backend/internal/game"
	"hypetown_backend/internal/logger"
	"hypetown_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Порог, после которого накопленные тапы сбрасываются в базу.
// Пока порог не достигнут, тапы живут в redis и база не трогается.
const tapFlushThreshold = 100

// ClickerService — тапы и апгрейды кликера. Тапы батчатся через redis:
// каждый запрос пишет счётчик в кэш, а в базу монеты попадают одним
// UPDATE при достижении порога или при следующем чтении профиля.
type ClickerService struct {
	db       *pgxpool.Pool
	players  *repository.PlayerRepository
	upgrades *repository.ClickerUpgradeRepository
	coinTx   *repository.CoinTransactionRepository
	nowFn    func() time.Time
}

func NewClickerService(db *pgxpool.Pool) *ClickerService {
	return &ClickerService{
		db:       db,
		players:  repository.NewPlayerRepository(db),
		upgrades: repository.NewClickerUpgradeRepository(db),
		coinTx:   repository.NewCoinTransactionRepository(db),
		nowFn:    time.Now,
	}
}

type TapResponse struct {
	Earned   int64 `json:"earned"`
	TapPower int64 `json:"tap_power"`
	Coins    int64 `json:"coins"`
	Pending  int64 `json:"pending"`
}

// Tap засчитывает пачку тапов. Счётчик копится в redis, при недоступном
// redis пишем напрямую в базу
func (s *ClickerService) Tap(ctx context.Context, playerID int64, count int) (*TapResponse, error) {
	if count < 1 {
		count = 1
	}
	if count > game.MaxTapsPerCall {
		count = game.MaxTapsPerCall
	}

	p, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	pending, err := cache.AddPendingTaps(ctx, playerID, count)
	if err != nil || cache.Client() == nil {
		// redis недоступен — применяем сразу
		flushed, ferr := s.applyTaps(ctx, playerID, int64(count))
		if ferr != nil {
			return nil, ferr
		}
		return &TapResponse{
			Earned:   flushed,
			TapPower: p.TapPower,
			Coins:    p.Coins + flushed,
		}, nil
	}

	earned := p.TapPower * int64(count)
	resp := &TapResponse{
		Earned:   earned,
		TapPower: p.TapPower,
		Coins:    p.Coins + pending*p.TapPower,
		Pending:  pending,
	}

	if pending >= tapFlushThreshold {
		if _, err := s.FlushTaps(ctx, playerID); err != nil {
			logger.Warn("tap flush failed", "player_id", playerID, "error", err)
		}
	}
	return resp, nil
}

// FlushTaps забирает накопленные тапы из redis и записывает монеты в базу.
// Вызывается по порогу и при чтении профиля, чтобы баланс не отставал
func (s *ClickerService) FlushTaps(ctx context.Context, playerID int64) (int64, error) {
	pending, err := cache.TakePendingTaps(ctx, playerID)
	if err != nil || pending == 0 {
		return 0, err
	}
	earned, err := s.applyTaps(ctx, playerID, pending)
	if err != nil {
		// база недоступна — возвращаем счётчик в redis, тапы не теряются
		if _, qerr := cache.AddPendingTaps(ctx, playerID, int(pending)); qerr != nil {
			logger.Error("requeue pending taps failed",
				"player_id", playerID, "taps", pending, "error", qerr)
		}
		return 0, err
	}
	return earned, nil
}

func (s *ClickerService) applyTaps(ctx context.Context, playerID, taps int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.players.LockAggregateTx(ctx, tx, playerID)
	if err != nil {
		return 0, err
	}

	var earned int64
	for remaining := taps; remaining > 0; remaining -= game.MaxTapsPerCall {
		chunk := remaining
		if chunk > game.MaxTapsPerCall {
			chunk = game.MaxTapsPerCall
		}
		earned += game.Tap(p, int(chunk)).Earned
	}

	if err := s.players.UpdateProgressTx(ctx, tx, p); err != nil {
		return 0, err
	}
	if err := s.coinTx.CreateWithTx(ctx, tx, &domain.CoinTransaction{
		PlayerID: playerID,
		Type:     domain.CoinTxTap,
		Amount:   earned,
		Meta:     map[string]interface{}{"taps": taps},
	}); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	cache.UpdateLeaderboard(ctx, playerID, p.Coins)
	return earned, nil
}

// BuyUpgrade покупает или повышает уровень апгрейда кликера
func (s *ClickerService) BuyUpgrade(ctx context.Context, playerID int64, key domain.ClickerUpgradeType) (*game.BuyUpgradeResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.players.LockAggregateTx(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}

	res, err := game.BuyClickerUpgrade(p, key)
	if err != nil {
		return nil, err
	}

	if u := p.UpgradeByType(key); u != nil {
		if err := s.upgrades.UpsertTx(ctx, tx, u); err != nil {
			return nil, err
		}
	}
	if err := s.players.UpdateProgressTx(ctx, tx, p); err != nil {
		return nil, err
	}
	if err := s.coinTx.CreateWithTx(ctx, tx, &domain.CoinTransaction{
		PlayerID: playerID,
		Type:     domain.CoinTxBuyUpgrade,
		Amount:   -res.Cost,
		Meta:     map[string]interface{}{"upgrade": string(key), "new_level": res.NewLevel},
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info("clicker upgrade purchased", "player_id", playerID, "upgrade", key, "level", res.NewLevel)
	cache.UpdateLeaderboard(ctx, playerID, p.Coins)
	return res, nil
}
