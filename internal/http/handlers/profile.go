package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Profile - публичный профиль игрока по id
func (h *Handler) Profile(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	p, err := h.Players.GetByID(c.Request.Context(), id)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        p.ID,
		"name":      p.Name,
		"avatar":    p.Avatar,
		"archetype": p.Archetype,
		"level":     p.Level,
		"coins":     p.Coins,
	})
}

// MyProfile - профиль текущего игрока вместе с историей движений монет
func (h *Handler) MyProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	ctx := c.Request.Context()
	p, err := h.Players.GetByID(ctx, userID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	transactions, _ := h.CoinTxRepo.GetByPlayerID(ctx, userID, 100)
	var history []map[string]interface{}
	for _, tx := range transactions {
		history = append(history, map[string]interface{}{
			"type":   tx.Type,
			"amount": tx.Amount,
			"meta":   tx.Meta,
			"date":   tx.CreatedAt,
		})
	}

	resp := playerSummary(p)
	resp["created_at"] = p.CreatedAt
	resp["history"] = history
	c.JSON(http.StatusOK, resp)
}
