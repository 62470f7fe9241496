package repository

import (
	"context"
	"errors"

	"hypetown_backend/internal/domain"
	"hypetown_backend/internal/game"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository struct {
	db *pgxpool.Pool
}

func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `id, tg_id, COALESCE(username, ''), name, avatar, archetype,
	level, xp, coins, tap_power, passive_income, created_at, last_active`

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(
		&p.ID, &p.TgID, &p.Username, &p.Name, &p.Avatar, &p.Archetype,
		&p.Level, &p.XP, &p.Coins, &p.TapPower, &p.PassiveIncome,
		&p.CreatedAt, &p.LastActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlayerRepository) GetByTgID(ctx context.Context, tgID int64) (*domain.Player, error) {
	return scanPlayer(r.db.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE tg_id = $1`, tgID))
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	return scanPlayer(r.db.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = $1`, id))
}

// Create создаёт игрока со стартовыми параметрами
func (r *PlayerRepository) Create(ctx context.Context, p *domain.Player) error {
	p.Coins = game.StartCoins
	p.TapPower = game.StartTapPower
	p.Level = 1

	return r.db.QueryRow(ctx,
		`INSERT INTO players (tg_id, username, name, avatar, archetype, coins, tap_power)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, level, xp, passive_income, created_at, last_active`,
		p.TgID, p.Username, p.Name, p.Avatar, p.Archetype, p.Coins, p.TapPower,
	).Scan(&p.ID, &p.Level, &p.XP, &p.PassiveIncome, &p.CreatedAt, &p.LastActive)
}

// LockAggregateTx загружает агрегат игрока целиком, удерживая блокировку
// строки игрока до конца транзакции. Блокировка сериализует конкурентные
// операции над одним игроком: второй вызов ждёт коммита первого и читает
// уже обновлённое состояние.
func (r *PlayerRepository) LockAggregateTx(ctx context.Context, tx pgx.Tx, playerID int64) (*domain.Player, error) {
	p, err := scanPlayer(tx.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = $1 FOR UPDATE`, playerID))
	if err != nil {
		return nil, err
	}

	if p.Buildings, err = scanBuildings(tx, ctx, playerID); err != nil {
		return nil, err
	}
	if p.Inventory, err = scanInventory(tx, ctx, playerID); err != nil {
		return nil, err
	}
	if p.Orders, err = scanOrders(tx, ctx, playerID); err != nil {
		return nil, err
	}
	if p.ClickerUpgrades, err = scanUpgrades(tx, ctx, playerID); err != nil {
		return nil, err
	}
	return p, nil
}

// GetAggregate загружает агрегат без блокировки (для read-only выборок)
func (r *PlayerRepository) GetAggregate(ctx context.Context, playerID int64) (*domain.Player, error) {
	p, err := r.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if p.Buildings, err = scanBuildings(r.db, ctx, playerID); err != nil {
		return nil, err
	}
	if p.Inventory, err = scanInventory(r.db, ctx, playerID); err != nil {
		return nil, err
	}
	if p.Orders, err = scanOrders(r.db, ctx, playerID); err != nil {
		return nil, err
	}
	if p.ClickerUpgrades, err = scanUpgrades(r.db, ctx, playerID); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProgressTx записывает изменяемые операциями поля игрока
func (r *PlayerRepository) UpdateProgressTx(ctx context.Context, tx pgx.Tx, p *domain.Player) error {
	_, err := tx.Exec(ctx,
		`UPDATE players
		 SET level = $1, xp = $2, coins = $3, tap_power = $4, passive_income = $5,
		     last_active = NOW()
		 WHERE id = $6`,
		p.Level, p.XP, p.Coins, p.TapPower, p.PassiveIncome, p.ID,
	)
	return err
}

// GetTopByCoins возвращает топ игроков по монетам. Запасной источник
// для лидерборда, когда redis пуст или недоступен
func (r *PlayerRepository) GetTopByCoins(ctx context.Context, limit int) ([]*domain.Player, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+playerColumns+` FROM players ORDER BY coins DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// GetCoinsRank возвращает позицию игрока в таблице по монетам (с единицы)
func (r *PlayerRepository) GetCoinsRank(ctx context.Context, playerID int64) (int64, error) {
	var rank int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) + 1 FROM players
		 WHERE coins > (SELECT coins FROM players WHERE id = $1)`, playerID).Scan(&rank)
	return rank, err
}

// NamesByIDs возвращает имена игроков для набора id (для лидерборда)
func (r *PlayerRepository) NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM players WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[int64]string, len(ids))
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

// querier - общий интерфейс pgx.Tx и pgxpool.Pool для выборок
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanBuildings(q querier, ctx context.Context, playerID int64) ([]*domain.Building, error) {
	rows, err := q.Query(ctx,
		`SELECT id, player_id, type, level, is_producing,
		        production_started, production_ends, last_collected
		 FROM buildings WHERE player_id = $1 ORDER BY id`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Building
	for rows.Next() {
		var b domain.Building
		if err := rows.Scan(&b.ID, &b.PlayerID, &b.Type, &b.Level, &b.IsProducing,
			&b.ProductionStarted, &b.ProductionEnds, &b.LastCollected); err != nil {
			return nil, err
		}
		result = append(result, &b)
	}
	return result, rows.Err()
}

func scanInventory(q querier, ctx context.Context, playerID int64) ([]*domain.InventoryItem, error) {
	rows, err := q.Query(ctx,
		`SELECT id, player_id, resource, quantity
		 FROM inventory WHERE player_id = $1 ORDER BY resource`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.InventoryItem
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.ID, &item.PlayerID, &item.Resource, &item.Quantity); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	return result, rows.Err()
}

func scanUpgrades(q querier, ctx context.Context, playerID int64) ([]*domain.ClickerUpgrade, error) {
	rows, err := q.Query(ctx,
		`SELECT id, player_id, upgrade_type, level
		 FROM clicker_upgrades WHERE player_id = $1 ORDER BY upgrade_type`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.ClickerUpgrade
	for rows.Next() {
		var u domain.ClickerUpgrade
		if err := rows.Scan(&u.ID, &u.PlayerID, &u.UpgradeType, &u.Level); err != nil {
			return nil, err
		}
		result = append(result, &u)
	}
	return result, rows.Err()
}
