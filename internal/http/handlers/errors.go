package handlers

import (
	"errors"
	"net/http"

	"hypetown_backend/internal/game"
	"hypetown_backend/internal/logger"
	"hypetown_backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// respondGameError переводит ошибки игрового ядра в HTTP-ответы.
// Неожиданные ошибки (база, сеть) отдаются как 500 без деталей
func respondGameError(c *gin.Context, err error) {
	var (
		fundsErr     *game.InsufficientFundsError
		levelErr     *game.LevelLockedError
		notReadyErr  *game.NotReadyError
		maxLevelErr  *game.MaxLevelError
		resourcesErr *game.InsufficientResourcesError
	)

	switch {
	case errors.As(err, &fundsErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient funds", "required": fundsErr.Cost})
	case errors.As(err, &levelErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "level too low", "required_level": levelErr.RequiredLevel})
	case errors.As(err, &notReadyErr):
		c.JSON(http.StatusConflict, gin.H{"error": "production not ready", "remaining_sec": notReadyErr.RemainingSec})
	case errors.As(err, &maxLevelErr):
		c.JSON(http.StatusConflict, gin.H{"error": "upgrade at max level", "max_level": maxLevelErr.MaxLevel})
	case errors.As(err, &resourcesErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient resources", "missing": resourcesErr.Missing})
	case errors.Is(err, game.ErrUnknownBuilding), errors.Is(err, game.ErrUnknownUpgrade):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrBuildingNotFound), errors.Is(err, game.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrAlreadyOwned),
		errors.Is(err, game.ErrAlreadyProducing),
		errors.Is(err, game.ErrNotProducing),
		errors.Is(err, game.ErrUpgradeProducing),
		errors.Is(err, game.ErrOrderCompleted),
		errors.Is(err, game.ErrOrderExpired):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
	default:
		logger.Error("unexpected error", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
	}
}
