package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"hypetown_backend/internal/logger"
	"hypetown_backend/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot шлёт игрокам уведомления о готовом производстве и обслуживает
// админ-команды
type Bot struct {
	bot          *tgbotapi.BotAPI
	adminService *service.AdminService
	adminIDs     []int64 // Telegram user IDs who can use admin commands
	stopCh       chan struct{}
	wg           sync.WaitGroup
	log          *slog.Logger
}

func New(token string, adminService *service.AdminService, adminIDs []int64) (*Bot, error) {
	b, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log := logger.With("component", "bot")
	log.Info("bot authorized", "username", b.Self.UserName)

	return &Bot{
		bot:          b,
		adminService: adminService,
		adminIDs:     adminIDs,
		stopCh:       make(chan struct{}),
		log:          log,
	}, nil
}

// SendProductionReady уведомляет игрока, что здание готово к сбору
func (b *Bot) SendProductionReady(tgID int64, emoji, buildingName string) {
	text := fmt.Sprintf("%s <b>%s</b> завершила производство!\nЗабирай доход в игре 💰", emoji, buildingName)
	msg := tgbotapi.NewMessage(tgID, text)
	msg.ParseMode = "HTML"
	if _, err := b.bot.Send(msg); err != nil {
		b.log.Debug("notify failed", "tg_id", tgID, "error", err)
	}
}

// Start starts listening for commands
func (b *Bot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)
	b.log.Info("starting bot update loop")

	for {
		select {
		case <-b.stopCh:
			b.log.Info("stopping bot update loop")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}

			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			// Check if user is admin
			if !b.isAdmin(update.Message.From.ID) {
				continue
			}

			b.wg.Add(1)
			go func(msg *tgbotapi.Message) {
				defer b.wg.Done()
				b.handleCommand(msg)
			}(update.Message)
		}
	}
}

// Stop gracefully stops the bot
func (b *Bot) Stop() {
	b.log.Info("stopping bot...")
	close(b.stopCh)
	b.bot.StopReceivingUpdates()

	// Wait for pending handlers with timeout
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.log.Info("bot stopped gracefully")
	case <-time.After(10 * time.Second):
		b.log.Warn("bot shutdown timeout, some handlers may not have completed")
	}
}

// isAdmin checks if user is an admin
func (b *Bot) isAdmin(userID int64) bool {
	for _, id := range b.adminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// handleCommand processes admin commands
func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var response string

	switch msg.Command() {
	case "start", "help":
		response = b.helpMessage()

	case "stats":
		response = b.handleStats(ctx)

	case "player":
		response = b.handlePlayer(ctx, msg.CommandArguments())

	case "addcoins":
		response = b.handleAddCoins(ctx, msg.CommandArguments(), msg.From.ID)

	case "top":
		response = b.handleTop(ctx, msg.CommandArguments())

	default:
		response = "❌ Неизвестная команда. Используйте /help для списка команд."
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, response)
	reply.ParseMode = "HTML"
	if _, err := b.bot.Send(reply); err != nil {
		b.log.Warn("failed to send reply", "error", err)
	}
}

func (b *Bot) helpMessage() string {
	return `<b>Команды админа:</b>
/stats - общая статистика
/player &lt;tg_id&gt; - карточка игрока
/addcoins &lt;tg_id&gt; &lt;amount&gt; - начислить монеты (можно отрицательное)
/top [n] - топ игроков по монетам`
}

func (b *Bot) handleStats(ctx context.Context) string {
	st, err := b.adminService.GetStats(ctx)
	if err != nil {
		return "❌ Ошибка получения статистики: " + err.Error()
	}

	return fmt.Sprintf(`<b>📊 Статистика</b>
Игроков: %d
Активны за сутки: %d
Монет в экономике: %d
Зданий построено: %d
Заказов выполнено: %d`,
		st.Players, st.ActiveToday, st.TotalCoins, st.TotalBuildings, st.OrdersDone)
}

func (b *Bot) handlePlayer(ctx context.Context, args string) string {
	tgID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		return "Использование: /player <tg_id>"
	}

	p, err := b.adminService.FindPlayer(ctx, tgID)
	if err != nil {
		return "❌ Игрок не найден"
	}

	return fmt.Sprintf(`<b>👤 %s</b> (@%s)
id: %d, tg_id: %d
Архетип: %s
Уровень: %d (xp %d)
Монеты: %d
Сила тапа: %d
Пассивный доход: %d/мин`,
		p.Name, p.Username, p.ID, p.TgID, p.Archetype,
		p.Level, p.XP, p.Coins, p.TapPower, p.PassiveIncome)
}

func (b *Bot) handleAddCoins(ctx context.Context, args string, adminID int64) string {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		return "Использование: /addcoins <tg_id> <amount>"
	}

	tgID, err1 := strconv.ParseInt(parts[0], 10, 64)
	amount, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil {
		return "Использование: /addcoins <tg_id> <amount>"
	}

	balance, err := b.adminService.GrantCoins(ctx, tgID, amount, adminID)
	if err != nil {
		return "❌ Не удалось начислить: " + err.Error()
	}
	return fmt.Sprintf("✅ Начислено %d. Новый баланс: %d", amount, balance)
}

func (b *Bot) handleTop(ctx context.Context, args string) string {
	limit := 10
	if n, err := strconv.Atoi(strings.TrimSpace(args)); err == nil && n > 0 && n <= 50 {
		limit = n
	}

	players, err := b.adminService.TopPlayers(ctx, limit)
	if err != nil {
		return "❌ Ошибка выборки: " + err.Error()
	}

	var sb strings.Builder
	sb.WriteString("<b>🏆 Топ по монетам</b>\n")
	for i, p := range players {
		sb.WriteString(fmt.Sprintf("%d. %s - %d\n", i+1, p.Name, p.Coins))
	}
	return sb.String()
}
