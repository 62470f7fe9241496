package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// бизнес-метрики, инкрементятся из хендлеров
	TapsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_taps_total",
			Help: "Total tap actions processed",
		},
	)
	BuildingsPurchased = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_buildings_purchased_total",
			Help: "Buildings purchased, by building type",
		},
		[]string{"building_type"},
	)
	ProductionCollected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_production_collected_total",
			Help: "Production cycles collected, by produced resource",
		},
		[]string{"resource"},
	)
	OrdersFulfilled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_orders_fulfilled_total",
			Help: "NPC orders fulfilled",
		},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(TapsTotal)
	prometheus.MustRegister(BuildingsPurchased)
	prometheus.MustRegister(ProductionCollected)
	prometheus.MustRegister(OrdersFulfilled)
}
