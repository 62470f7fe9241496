package game

import (
	"errors"
	"fmt"

	"hypetown_backend/internal/domain"
)

// Все ошибки игрового ядра - ожидаемые исходы, которые вызывающий слой
// превращает в ответ клиенту. Ошибки хранилища сюда не попадают.
var (
	ErrUnknownBuilding  = errors.New("unknown building type")
	ErrUnknownUpgrade   = errors.New("unknown upgrade type")
	ErrBuildingNotFound = errors.New("building not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrAlreadyOwned     = errors.New("building already owned")
	ErrAlreadyProducing = errors.New("production already running")
	ErrNotProducing     = errors.New("building is idle")
	ErrUpgradeProducing = errors.New("cannot upgrade while producing")
	ErrOrderCompleted   = errors.New("order already completed")
	ErrOrderExpired     = errors.New("order expired")
)

// InsufficientFundsError - не хватает монет; Cost - сколько требуется
type InsufficientFundsError struct {
	Cost int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %d coins", e.Cost)
}

// LevelLockedError - здание ещё не открыто по уровню
type LevelLockedError struct {
	RequiredLevel int
}

func (e *LevelLockedError) Error() string {
	return fmt.Sprintf("requires level %d", e.RequiredLevel)
}

// NotReadyError - производство ещё идёт
type NotReadyError struct {
	RemainingSec int
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("production not ready: %ds remaining", e.RemainingSec)
}

// MaxLevelError - апгрейд кликера уже на максимальном уровне
type MaxLevelError struct {
	MaxLevel int
}

func (e *MaxLevelError) Error() string {
	return fmt.Sprintf("upgrade at max level %d", e.MaxLevel)
}

// InsufficientResourcesError - нехватка ресурсов по каждой позиции заказа
type InsufficientResourcesError struct {
	Missing map[domain.Resource]int
}

func (e *InsufficientResourcesError) Error() string {
	return fmt.Sprintf("insufficient resources: %d short", len(e.Missing))
}
