package ws

import (
	"sync"

	"hypetown_backend/internal/logger"
)

// Hub держит активные подключения игроков. Один игрок может быть подключён
// с нескольких устройств, поэтому на один id хранится набор клиентов.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]map[*Client]struct{}),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.PlayerID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.PlayerID] = set
	}
	set[c] = struct{}{}
	logger.Debug("ws client connected", "player_id", c.PlayerID, "connections", len(set))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.PlayerID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.PlayerID)
	}
}

// Notify отправляет событие всем подключениям игрока. Если игрок офлайн
// или буфер отправки заполнен, событие молча отбрасывается
func (h *Hub) Notify(playerID int64, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := event.encode()
	for c := range h.clients[playerID] {
		select {
		case c.send <- msg:
		default:
			// медленный клиент, не блокируемся
		}
	}
}

// Connected показывает, есть ли у игрока живое подключение
func (h *Hub) Connected(playerID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[playerID]) > 0
}
