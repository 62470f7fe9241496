package telegram

import "hypetown_backend/internal/service"

func ValidateInitData(initData, botToken string) bool {
	_, ok := service.ValidateTelegramInitData(initData, botToken)
	return ok
}
