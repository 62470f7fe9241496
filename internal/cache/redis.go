package cache

import (
	"context"
	"strconv"
	"time"

	"hypetown_backend/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

const namespace = "hypetown"

// TTL накопленных тапов: не успели сброситься - сгорают
const pendingTapsTTL = 30 * time.Second

var client *redis.Client

// Init подключает общий Redis-клиент. При недоступном Redis клиент остаётся
// nil и все операции работают в режиме fail-open.
func Init(addr, password string, db int) {
	if addr == "" {
		return
	}
	client = redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, continuing without it", "error", err)
		client = nil
		return
	}
	logger.Info("redis connected", "addr", addr)
}

// Client возвращает общий клиент (nil, если Redis не настроен)
func Client() *redis.Client {
	return client
}

func key(parts ...string) string {
	k := namespace
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

// ── Батчинг тапов ────────────────────────────────────────────────────

// AddPendingTaps накапливает тапы игрока. Возвращает общее число pending.
func AddPendingTaps(ctx context.Context, playerID int64, count int) (int64, error) {
	if client == nil {
		return 0, nil
	}
	k := key("clicker", strconv.FormatInt(playerID, 10))
	total, err := client.IncrBy(ctx, k, int64(count)).Result()
	if err != nil {
		return 0, err
	}
	client.Expire(ctx, k, pendingTapsTTL)
	return total, nil
}

// TakePendingTaps атомарно забирает и обнуляет накопленные тапы
func TakePendingTaps(ctx context.Context, playerID int64) (int64, error) {
	if client == nil {
		return 0, nil
	}
	k := key("clicker", strconv.FormatInt(playerID, 10))
	val, err := client.GetDel(ctx, k).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, _ := strconv.ParseInt(val, 10, 64)
	return n, nil
}

// ── Кулдауны ─────────────────────────────────────────────────────────

// CheckCooldown ставит кулдаун, если его ещё нет.
// true = действие разрешено, false = ещё на кулдауне.
func CheckCooldown(ctx context.Context, subject, action string, d time.Duration) bool {
	if client == nil {
		return true
	}
	k := key("cooldown", subject, action)
	ok, err := client.SetNX(ctx, k, "1", d).Result()
	if err != nil {
		// fail-open: лучше лишнее уведомление, чем отказ сервиса
		return true
	}
	return ok
}

// ── Лидерборд монет ──────────────────────────────────────────────────

// UpdateLeaderboard обновляет позицию игрока в лидерборде
func UpdateLeaderboard(ctx context.Context, playerID int64, coins int64) {
	if client == nil {
		return
	}
	k := key("leaderboard", "coins")
	if err := client.ZAdd(ctx, k, redis.Z{Score: float64(coins), Member: strconv.FormatInt(playerID, 10)}).Err(); err != nil {
		logger.Warn("leaderboard update failed", "player_id", playerID, "error", err)
	}
}

// LeaderboardTop возвращает топ игроков (id → монеты), по убыванию
func LeaderboardTop(ctx context.Context, count int) ([]redis.Z, error) {
	if client == nil {
		return nil, nil
	}
	k := key("leaderboard", "coins")
	return client.ZRevRangeWithScores(ctx, k, 0, int64(count-1)).Result()
}

// LeaderboardRank возвращает ранг игрока (0-based); ok=false, если игрока
// нет в лидерборде или Redis недоступен
func LeaderboardRank(ctx context.Context, playerID int64) (int64, bool) {
	if client == nil {
		return 0, false
	}
	k := key("leaderboard", "coins")
	rank, err := client.ZRevRank(ctx, k, strconv.FormatInt(playerID, 10)).Result()
	if err != nil {
		return 0, false
	}
	return rank, true
}
