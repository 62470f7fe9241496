package domain

import "time"

// Archetype - архетип персонажа
type Archetype string

const (
	ArchetypeDirector   Archetype = "director"
	ArchetypeStreamer   Archetype = "streamer"
	ArchetypeProducer   Archetype = "producer"
	ArchetypeMagnate    Archetype = "magnate"
	ArchetypeBlogger    Archetype = "blogger"
	ArchetypeJournalist Archetype = "journalist"
)

// Player - игрок со всеми дочерними сущностями (агрегат)
type Player struct {
	ID            int64     `db:"id" json:"id"`
	TgID          int64     `db:"tg_id" json:"tg_id"`
	Username      string    `db:"username" json:"username"`
	Name          string    `db:"name" json:"name"`
	Avatar        string    `db:"avatar" json:"avatar"`
	Archetype     Archetype `db:"archetype" json:"archetype"`
	Level         int       `db:"level" json:"level"`
	XP            int64     `db:"xp" json:"xp"`
	Coins         int64     `db:"coins" json:"coins"`
	TapPower      int64     `db:"tap_power" json:"tap_power"`
	PassiveIncome int64     `db:"passive_income" json:"passive_income"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	LastActive    time.Time `db:"last_active" json:"last_active"`

	Buildings       []*Building       `json:"buildings,omitempty"`
	Inventory       []*InventoryItem  `json:"inventory,omitempty"`
	Orders          []*Order          `json:"orders,omitempty"`
	ClickerUpgrades []*ClickerUpgrade `json:"clicker_upgrades,omitempty"`
}

// BuildingByID ищет здание игрока по ID
func (p *Player) BuildingByID(id int64) *Building {
	for _, b := range p.Buildings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// OwnsBuildingType проверяет, есть ли у игрока здание данного типа
func (p *Player) OwnsBuildingType(t BuildingType) bool {
	for _, b := range p.Buildings {
		if b.Type == t {
			return true
		}
	}
	return false
}

// OrderByID ищет заказ игрока по ID
func (p *Player) OrderByID(id int64) *Order {
	for _, o := range p.Orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// UpgradeByType ищет апгрейд кликера по типу (nil = уровень 0)
func (p *Player) UpgradeByType(t ClickerUpgradeType) *ClickerUpgrade {
	for _, u := range p.ClickerUpgrades {
		if u.UpgradeType == t {
			return u
		}
	}
	return nil
}

// ResourceQty возвращает количество ресурса в инвентаре
func (p *Player) ResourceQty(r Resource) int {
	for _, item := range p.Inventory {
		if item.Resource == r {
			return item.Quantity
		}
	}
	return 0
}

// AddResource добавляет ресурс в инвентарь, создавая запись при необходимости.
// Новые записи имеют ID == 0, репозиторий делает для них INSERT.
func (p *Player) AddResource(r Resource, qty int) *InventoryItem {
	for _, item := range p.Inventory {
		if item.Resource == r {
			item.Quantity += qty
			return item
		}
	}
	item := &InventoryItem{PlayerID: p.ID, Resource: r, Quantity: qty}
	p.Inventory = append(p.Inventory, item)
	return item
}

// ActiveOrders возвращает незавершённые и неистёкшие заказы
func (p *Player) ActiveOrders(now time.Time) []*Order {
	var active []*Order
	for _, o := range p.Orders {
		if o.IsActive(now) {
			active = append(active, o)
		}
	}
	return active
}
