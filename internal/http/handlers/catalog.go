package handlers

import (
	"net/http"

	"hypetown_backend/internal/game"

	"github.com/gin-gonic/gin"
)

// Каталоги статичны, авторизация для них не нужна

func (h *Handler) CatalogBuildings(c *gin.Context) {
	out := make([]gin.H, 0, len(game.BuildingOrder))
	for _, t := range game.BuildingOrder {
		info := game.Buildings[t]
		out = append(out, gin.H{
			"type":         t,
			"name":         info.Name,
			"emoji":        info.Emoji,
			"location":     info.Location,
			"base_time":    info.BaseTime,
			"base_income":  info.BaseIncome,
			"cost":         info.Cost,
			"unlock_level": info.UnlockLevel,
			"resource":     game.BuildingResource[t],
		})
	}
	c.JSON(http.StatusOK, gin.H{"buildings": out})
}

func (h *Handler) CatalogArchetypes(c *gin.Context) {
	out := make(map[string]game.ArchetypeInfo, len(game.Archetypes))
	for key, info := range game.Archetypes {
		out[string(key)] = info
	}
	c.JSON(http.StatusOK, gin.H{"archetypes": out})
}

func (h *Handler) CatalogUpgrades(c *gin.Context) {
	out := make([]gin.H, 0, len(game.ClickerUpgradeOrder))
	for _, t := range game.ClickerUpgradeOrder {
		info := game.ClickerUpgrades[t]
		entry := gin.H{
			"type":      t,
			"base_cost": info.BaseCost,
			"cost_mult": info.CostMult,
			"max_level": info.MaxLevel,
		}
		if info.Multiplier > 0 {
			entry["multiplier"] = info.Multiplier
		} else {
			entry["tap_bonus"] = info.TapBonus
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, gin.H{"upgrades": out})
}
