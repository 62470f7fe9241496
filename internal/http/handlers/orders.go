package handlers

import (
	"net/http"
	"strconv"
	"time"

	"hypetown_backend/internal/game"
	"hypetown_backend/internal/http/middleware"
	"hypetown_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

// ListOrders возвращает активные заказы. Свободные слоты дозаполняются
// новыми заказами прямо в этом запросе
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	orders, err := h.OrderService.ListOrders(c.Request.Context(), userID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		out = append(out, gin.H{
			"id":           o.ID,
			"npc_name":     o.NPCName,
			"npc_emoji":    game.NPCEmoji(o.NPCCategory, o.NPCName),
			"description":  o.Description,
			"requirements": o.Requirements,
			"reward_coins": o.RewardCoins,
			"reward_xp":    o.RewardXP,
			"bonus_coins":  o.BonusRewardCoins,
			"expires_at":   o.ExpiresAt,
			"bonus_until":  o.CreatedAt.Add(game.BonusWindowMinutes * time.Minute),
			"expires_sec":  int(o.ExpiresAt.Sub(now).Seconds()),
		})
	}

	c.JSON(http.StatusOK, gin.H{"orders": out})
}

// FulfillOrder выполняет заказ и начисляет награду
func (h *Handler) FulfillOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	res, err := h.OrderService.FulfillOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	middleware.OrdersFulfilled.Inc()
	h.Hub.Notify(userID, ws.Event{
		Type: ws.EventOrderCompleted,
		Data: map[string]interface{}{"order_id": orderID, "coins": res.CoinsEarned},
	})
	if res.LeveledUp {
		h.Hub.Notify(userID, ws.Event{
			Type: ws.EventLevelUp,
			Data: map[string]interface{}{"level": res.NewLevel},
		})
	}

	c.JSON(http.StatusOK, res)
}
