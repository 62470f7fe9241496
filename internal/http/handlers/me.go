package handlers

import (
	"net/http"

	"hypetown_backend/internal/domain"
	"hypetown_backend/internal/game"
	"hypetown_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// Me возвращает полное состояние игрока. Перед чтением сбрасываем
// накопленные в redis тапы, чтобы баланс в ответе не отставал
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.ClickerService.FlushTaps(ctx, userID); err != nil {
		logger.Warn("tap flush on profile read failed", "player_id", userID, "error", err)
	}

	p, err := h.Players.GetAggregate(ctx, userID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	resp := playerSummary(p)
	resp["passive_income"] = p.PassiveIncome
	for k, v := range levelProgress(p) {
		resp[k] = v
	}
	resp["created_at"] = p.CreatedAt
	resp["buildings_owned"] = len(p.Buildings)
	c.JSON(http.StatusOK, resp)
}

// levelProgress - XP-прогресс игрока: порог следующего уровня и остаток до него
func levelProgress(p *domain.Player) gin.H {
	return gin.H{
		"xp_for_next_level": game.XPForLevel(p.Level + 1),
		"xp_to_next":        game.XPToNextLevel(p),
	}
}
