package handlers

import (
	"net/http"
	"strconv"
	"time"

	"hypetown_backend/internal/domain"
	"hypetown_backend/internal/game"
	"hypetown_backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GetCity возвращает здания игрока с таймерами и склад ресурсов
func (h *Handler) GetCity(c *gin.Context) {
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

	now := time.Now()
	buildings := make([]gin.H, 0, len(p.Buildings))
	for _, b := range p.Buildings {
		info := game.Buildings[b.Type]
		entry := gin.H{
			"id":           b.ID,
			"type":         b.Type,
			"name":         info.Name,
			"emoji":        info.Emoji,
			"location":     info.Location,
			"level":        b.Level,
			"income":       game.ProductionIncome(b.Type, b.Level, p.Archetype),
			"duration_sec": game.ProductionDuration(b.Type, b.Level),
			"upgrade_cost": game.BuildingUpgradeCost(b.Type, b.Level),
			"is_producing": b.IsProducing,
			"ready":        b.IsReady(now),
		}
		if b.IsProducing {
			entry["remaining_sec"] = b.RemainingSec(now)
			entry["production_ends"] = b.ProductionEnds
		}
		buildings = append(buildings, entry)
	}

	inventory := make([]gin.H, 0, len(p.Inventory))
	for _, item := range p.Inventory {
		inventory = append(inventory, gin.H{
			"resource": item.Resource,
			"quantity": item.Quantity,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"buildings":      buildings,
		"inventory":      inventory,
		"passive_income": p.PassiveIncome,
	})
}

type BuyBuildingRequest struct {
	Type string `json:"type"`
}

func (h *Handler) BuyBuilding(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req BuyBuildingRequest
	if err := c.BindJSON(&req); err != nil || req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	res, err := h.CityService.BuyBuilding(c.Request.Context(), userID, domain.BuildingType(req.Type))
	if err != nil {
		respondGameError(c, err)
		return
	}

	middleware.BuildingsPurchased.WithLabelValues(req.Type).Inc()
	c.JSON(http.StatusOK, gin.H{
		"building": res.Building,
		"cost":     res.Cost,
	})
}

func (h *Handler) StartProduction(c *gin.Context) {
	userID, buildingID, ok := playerAndBuildingID(c)
	if !ok {
		return
	}

	res, err := h.CityService.StartProduction(c.Request.Context(), userID, buildingID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) CollectProduction(c *gin.Context) {
	userID, buildingID, ok := playerAndBuildingID(c)
	if !ok {
		return
	}

	res, err := h.CityService.CollectProduction(c.Request.Context(), userID, buildingID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	middleware.ProductionCollected.WithLabelValues(string(res.Resource)).Inc()
	c.JSON(http.StatusOK, res)
}

func (h *Handler) UpgradeBuilding(c *gin.Context) {
	userID, buildingID, ok := playerAndBuildingID(c)
	if !ok {
		return
	}

	res, err := h.CityService.UpgradeBuilding(c.Request.Context(), userID, buildingID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func playerAndBuildingID(c *gin.Context) (int64, int64, bool) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return 0, 0, false
	}

	buildingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return 0, 0, false
	}
	return userID, buildingID, true
}
