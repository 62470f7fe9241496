package ws

import "encoding/json"

// Типы событий, которые сервер пушит клиенту
const (
	EventProductionReady = "production_ready"
	EventLevelUp         = "level_up"
	EventOrderCompleted  = "order_completed"
)

type Event struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data,omitempty"`
}

func (e Event) encode() []byte {
	b, err := json.Marshal(e)
	if err != nil {
		return []byte(`{"type":"error"}`)
	}
	return b
}
