package game

import "hypetown_backend/internal/domain"

// Стартовые параметры и константы прогрессии
const (
	StartCoins     int64 = 100
	StartTapPower  int64 = 1
	BaseXPPerLevel       = 100
	XPLevelExp           = 1.5

	MaxActiveOrders    = 3
	OrderDurationHours = 4
	BonusWindowMinutes = 30

	// Минимальная длительность производства. Декей 0.95^level в оригинальных
	// таблицах не ограничен снизу и на больших уровнях уходит к нулю; пол в
	// 60 секунд сохраняет смысл свипа готовности и кулдаунов.
	MinProductionSec = 60

	// Серверный лимит тапов на один запрос
	MaxTapsPerCall = 50
)

// ArchetypeInfo - бонус архетипа к одному из доменов:
// категория производства, "clicker" или "orders".
type ArchetypeInfo struct {
	Emoji     string  `json:"emoji"`
	Name      string  `json:"name"`
	BonusType string  `json:"bonus_type"`
	Bonus     float64 `json:"bonus"`
}

var Archetypes = map[domain.Archetype]ArchetypeInfo{
	domain.ArchetypeDirector:   {Emoji: "🎬", Name: "Режиссёр", BonusType: "cinema", Bonus: 0.15},
	domain.ArchetypeStreamer:   {Emoji: "🎮", Name: "Стример", BonusType: "games", Bonus: 0.15},
	domain.ArchetypeProducer:   {Emoji: "🎵", Name: "Продюсер", BonusType: "music", Bonus: 0.15},
	domain.ArchetypeMagnate:    {Emoji: "🏟", Name: "Спортивный магнат", BonusType: "sports", Bonus: 0.15},
	domain.ArchetypeBlogger:    {Emoji: "📱", Name: "Блогер", BonusType: "clicker", Bonus: 0.20},
	domain.ArchetypeJournalist: {Emoji: "📰", Name: "Журналист", BonusType: "orders", Bonus: 0.15},
}

// BuildingInfo - параметры типа здания. BaseTime в секундах.
type BuildingInfo struct {
	Location    string `json:"location"`
	Emoji       string `json:"emoji"`
	Name        string `json:"name"`
	BaseTime    int    `json:"base_time"`
	BaseIncome  int64  `json:"base_income"`
	Cost        int64  `json:"cost"`
	UnlockLevel int    `json:"unlock_level"`
}

var Buildings = map[domain.BuildingType]BuildingInfo{
	domain.BuildingCinemaStudio:  {Location: "hollywood", Emoji: "🎬", Name: "Киностудия", BaseTime: 1800, BaseIncome: 500, Cost: 2000, UnlockLevel: 1},
	domain.BuildingSeriesLot:     {Location: "hollywood", Emoji: "📺", Name: "Сериальный лот", BaseTime: 900, BaseIncome: 200, Cost: 1000, UnlockLevel: 1},
	domain.BuildingGameStudio:    {Location: "gamer_street", Emoji: "🎮", Name: "Игровая студия", BaseTime: 3600, BaseIncome: 1200, Cost: 5000, UnlockLevel: 3},
	domain.BuildingCyberArena:    {Location: "gamer_street", Emoji: "🕹", Name: "Кибер-арена", BaseTime: 1200, BaseIncome: 350, Cost: 3000, UnlockLevel: 3},
	domain.BuildingRecording:     {Location: "music_hall", Emoji: "🎵", Name: "Звукозапись", BaseTime: 600, BaseIncome: 150, Cost: 800, UnlockLevel: 5},
	domain.BuildingConcertHall:   {Location: "music_hall", Emoji: "🎤", Name: "Концертный зал", BaseTime: 2700, BaseIncome: 800, Cost: 4000, UnlockLevel: 5},
	domain.BuildingSportsArena:   {Location: "sports", Emoji: "🏟", Name: "Спорт-арена", BaseTime: 1800, BaseIncome: 600, Cost: 3500, UnlockLevel: 7},
	domain.BuildingTVStudio:      {Location: "media_tower", Emoji: "📡", Name: "ТВ-студия", BaseTime: 1500, BaseIncome: 450, Cost: 2500, UnlockLevel: 10},
	domain.BuildingPodcastStudio: {Location: "media_tower", Emoji: "🎙", Name: "Подкаст-студия", BaseTime: 600, BaseIncome: 120, Cost: 600, UnlockLevel: 10},
}

// Порядок показа зданий - по уровню открытия
var BuildingOrder = []domain.BuildingType{
	domain.BuildingSeriesLot,
	domain.BuildingCinemaStudio,
	domain.BuildingCyberArena,
	domain.BuildingGameStudio,
	domain.BuildingRecording,
	domain.BuildingConcertHall,
	domain.BuildingSportsArena,
	domain.BuildingPodcastStudio,
	domain.BuildingTVStudio,
}

// BuildingResource - какой ресурс производит каждый тип здания
var BuildingResource = map[domain.BuildingType]domain.Resource{
	domain.BuildingCinemaStudio:  domain.ResourceFilm,
	domain.BuildingSeriesLot:     domain.ResourceSeries,
	domain.BuildingGameStudio:    domain.ResourceGame,
	domain.BuildingCyberArena:    domain.ResourceStream,
	domain.BuildingRecording:     domain.ResourceTrack,
	domain.BuildingConcertHall:   domain.ResourceConcert,
	domain.BuildingSportsArena:   domain.ResourceMatch,
	domain.BuildingTVStudio:      domain.ResourceBroadcast,
	domain.BuildingPodcastStudio: domain.ResourcePodcast,
}

// bonusLocation - категория бонуса архетипа → локация зданий.
// Категории tv (media_tower) бонус производства не положен.
var bonusLocation = map[string]string{
	"cinema": "hollywood",
	"games":  "gamer_street",
	"music":  "music_hall",
	"sports": "sports",
}

// ClickerUpgradeInfo - параметры апгрейда кликера. TapBonus - аддитивный
// бонус за уровень, Multiplier - множитель за уровень (ровно одно из двух).
type ClickerUpgradeInfo struct {
	TapBonus   int64   `json:"tap_bonus,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty"`
	BaseCost   int64   `json:"base_cost"`
	CostMult   float64 `json:"cost_mult"`
	MaxLevel   int     `json:"max_level"`
}

var ClickerUpgrades = map[domain.ClickerUpgradeType]ClickerUpgradeInfo{
	domain.UpgradeSmartphone: {TapBonus: 1, BaseCost: 50, CostMult: 1.5, MaxLevel: 50},
	domain.UpgradeCamera:     {TapBonus: 3, BaseCost: 200, CostMult: 1.6, MaxLevel: 40},
	domain.UpgradeLaptop:     {TapBonus: 10, BaseCost: 1000, CostMult: 1.7, MaxLevel: 30},
	domain.UpgradeStudio:     {TapBonus: 30, BaseCost: 5000, CostMult: 1.8, MaxLevel: 25},
	domain.UpgradeProduction: {TapBonus: 100, BaseCost: 25000, CostMult: 1.9, MaxLevel: 20},
	domain.UpgradeMediaCorp:  {TapBonus: 500, BaseCost: 200000, CostMult: 2.0, MaxLevel: 15},
	domain.UpgradeViralAlgo:  {Multiplier: 2, BaseCost: 100000, CostMult: 3.0, MaxLevel: 5},
	domain.UpgradeGoldButton: {Multiplier: 1.5, BaseCost: 500000, CostMult: 4.0, MaxLevel: 3},
}

// Порядок показа апгрейдов в магазине - от дешёвых к дорогим
var ClickerUpgradeOrder = []domain.ClickerUpgradeType{
	domain.UpgradeSmartphone,
	domain.UpgradeCamera,
	domain.UpgradeLaptop,
	domain.UpgradeStudio,
	domain.UpgradeProduction,
	domain.UpgradeViralAlgo,
	domain.UpgradeMediaCorp,
	domain.UpgradeGoldButton,
}

// NPCInfo - NPC-знаменитость, выдающая заказы
type NPCInfo struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

var NPCs = map[string][]NPCInfo{
	"cinema": {
		{Name: "Кристофер Нолан", Emoji: "🎬"},
		{Name: "Стивен Спилберг", Emoji: "🎥"},
		{Name: "Квентин Тарантино", Emoji: "🎞"},
	},
	"games": {
		{Name: "Хидео Кодзима", Emoji: "🎮"},
		{Name: "Тодд Говард", Emoji: "🕹"},
	},
	"music": {
		{Name: "Drake", Emoji: "🎤"},
		{Name: "Taylor Swift", Emoji: "🎵"},
		{Name: "The Weeknd", Emoji: "🎧"},
	},
	"sports": {
		{Name: "LeBron James", Emoji: "🏀"},
		{Name: "Lionel Messi", Emoji: "⚽"},
	},
	"tv": {
		{Name: "Шонда Раймс", Emoji: "📺"},
		{Name: "Райан Мёрфи", Emoji: "📡"},
	},
}

// QtyRange - диапазон требуемого количества ресурса в шаблоне заказа
type QtyRange struct {
	Min int
	Max int
}

// OrderTemplate - шаблон заказа до масштабирования под уровень игрока
type OrderTemplate struct {
	Description string
	Resources   map[domain.Resource]QtyRange
	BaseCoins   int64
	BaseXP      int64
}

var OrderTemplates = map[string][]OrderTemplate{
	"cinema": {
		{Description: "Снять блокбастер для проката", Resources: map[domain.Resource]QtyRange{domain.ResourceFilm: {1, 3}}, BaseCoins: 800, BaseXP: 50},
		{Description: "Сделать сериал для стриминга", Resources: map[domain.Resource]QtyRange{domain.ResourceSeries: {2, 5}}, BaseCoins: 600, BaseXP: 40},
		{Description: "Организовать кинопремьеру", Resources: map[domain.Resource]QtyRange{domain.ResourceFilm: {1, 2}, domain.ResourceConcert: {1, 1}}, BaseCoins: 1200, BaseXP: 80},
	},
	"games": {
		{Description: "Разработать инди-игру", Resources: map[domain.Resource]QtyRange{domain.ResourceGame: {1, 2}}, BaseCoins: 1000, BaseXP: 60},
		{Description: "Провести киберспортивный турнир", Resources: map[domain.Resource]QtyRange{domain.ResourceStream: {2, 4}}, BaseCoins: 700, BaseXP: 45},
		{Description: "Выпустить DLC для хита", Resources: map[domain.Resource]QtyRange{domain.ResourceGame: {1, 1}, domain.ResourceStream: {1, 2}}, BaseCoins: 1500, BaseXP: 90},
	},
	"music": {
		{Description: "Записать новый альбом", Resources: map[domain.Resource]QtyRange{domain.ResourceTrack: {2, 5}}, BaseCoins: 500, BaseXP: 35},
		{Description: "Организовать мировой тур", Resources: map[domain.Resource]QtyRange{domain.ResourceConcert: {1, 3}}, BaseCoins: 900, BaseXP: 55},
		{Description: "Снять клип и выложить на ютуб", Resources: map[domain.Resource]QtyRange{domain.ResourceTrack: {1, 2}, domain.ResourceFilm: {1, 1}}, BaseCoins: 1100, BaseXP: 70},
	},
	"sports": {
		{Description: "Провести чемпионат", Resources: map[domain.Resource]QtyRange{domain.ResourceMatch: {2, 4}}, BaseCoins: 1000, BaseXP: 60},
		{Description: "Организовать трансляцию матча", Resources: map[domain.Resource]QtyRange{domain.ResourceMatch: {1, 2}, domain.ResourceBroadcast: {1, 2}}, BaseCoins: 1300, BaseXP: 75},
	},
	"tv": {
		{Description: "Запустить новое шоу", Resources: map[domain.Resource]QtyRange{domain.ResourceBroadcast: {2, 4}}, BaseCoins: 800, BaseXP: 50},
		{Description: "Записать серию подкастов", Resources: map[domain.Resource]QtyRange{domain.ResourcePodcast: {2, 5}}, BaseCoins: 400, BaseXP: 30},
		{Description: "Организовать прямой эфир", Resources: map[domain.Resource]QtyRange{domain.ResourceBroadcast: {1, 2}, domain.ResourcePodcast: {1, 2}}, BaseCoins: 1100, BaseXP: 65},
	},
}

// OrderCategories - детерминированный порядок категорий для выбора по rng
var OrderCategories = []string{"cinema", "games", "music", "sports", "tv"}
