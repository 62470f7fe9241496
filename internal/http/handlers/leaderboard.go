package handlers

import (
	"net/http"
	"strconv"

	"hypetown_backend/internal/cache"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard возвращает топ игроков по монетам. Первоисточник - ZSET в
// redis; если он пуст или redis недоступен, читаем из базы
func (h *Handler) GetLeaderboard(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	ctx := c.Request.Context()

	entries, err := cache.LeaderboardTop(ctx, limit)
	if err == nil && len(entries) > 0 {
		ids := make([]int64, 0, len(entries))
		for _, z := range entries {
			if id, perr := strconv.ParseInt(z.Member.(string), 10, 64); perr == nil {
				ids = append(ids, id)
			}
		}
		names, nerr := h.Players.NamesByIDs(ctx, ids)
		if nerr == nil {
			top := make([]gin.H, 0, len(entries))
			for i, z := range entries {
				id, _ := strconv.ParseInt(z.Member.(string), 10, 64)
				top = append(top, gin.H{
					"rank":  i + 1,
					"id":    id,
					"name":  names[id],
					"coins": int64(z.Score),
				})
			}
			c.JSON(http.StatusOK, gin.H{"leaderboard": top, "source": "cache"})
			return
		}
	}

	players, err := h.Players.GetTopByCoins(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	top := make([]gin.H, 0, len(players))
	for i, p := range players {
		top = append(top, gin.H{
			"rank":  i + 1,
			"id":    p.ID,
			"name":  p.Name,
			"coins": p.Coins,
		})
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": top, "source": "db"})
}

// GetMyRank возвращает позицию текущего игрока
func (h *Handler) GetMyRank(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if rank, ok := cache.LeaderboardRank(c.Request.Context(), userID); ok {
		c.JSON(http.StatusOK, gin.H{"rank": rank + 1})
		return
	}

	rank, err := h.Players.GetCoinsRank(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"rank": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rank": rank})
}
