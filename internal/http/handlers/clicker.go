package handlers

import (
	"net/http"

	"hypetown_backend/internal/domain"
	"hypetown_backend/internal/game"
	"hypetown_backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type TapRequest struct {
	Count int `json:"count"`
}

// Tap - пачка тапов. Клиент шлёт накопленное число тапов, сервер сам
// зажимает его в допустимый диапазон
func (h *Handler) Tap(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req TapRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	resp, err := h.ClickerService.Tap(c.Request.Context(), userID, req.Count)
	if err != nil {
		respondGameError(c, err)
		return
	}

	middleware.TapsTotal.Inc()
	c.JSON(http.StatusOK, resp)
}

// ListUpgrades возвращает каталог апгрейдов кликера с уровнями игрока и
// ценой следующего уровня
func (h *Handler) ListUpgrades(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	p, err := h.Players.GetAggregate(c.Request.Context(), userID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	upgrades := make([]gin.H, 0, len(game.ClickerUpgrades))
	for _, key := range game.ClickerUpgradeOrder {
		info := game.ClickerUpgrades[key]
		level := 0
		if u := p.UpgradeByType(key); u != nil {
			level = u.Level
		}

		entry := gin.H{
			"type":      key,
			"level":     level,
			"max_level": info.MaxLevel,
		}
		if info.Multiplier > 0 {
			entry["multiplier"] = info.Multiplier
		} else {
			entry["tap_bonus"] = info.TapBonus
		}
		if level < info.MaxLevel {
			entry["next_cost"] = game.ClickerUpgradeCost(key, level)
		}
		upgrades = append(upgrades, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"tap_power": p.TapPower,
		"upgrades":  upgrades,
	})
}

type BuyUpgradeRequest struct {
	Type string `json:"type"`
}

func (h *Handler) BuyUpgrade(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req BuyUpgradeRequest
	if err := c.BindJSON(&req); err != nil || req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	res, err := h.ClickerService.BuyUpgrade(c.Request.Context(), userID, domain.ClickerUpgradeType(req.Type))
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
