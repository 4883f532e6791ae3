package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tennis_performance_cache_requests_total",
		Help: "Performance cache lookups by result (hit, miss, error)",
	}, []string{"result"})

	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tennis_predictions_total",
		Help: "Match predictions served by status",
	}, []string{"status"})
)
