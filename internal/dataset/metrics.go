package dataset

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	datasetLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tennis_dataset_loads_total",
		Help: "Dataset loads by dataset and outcome",
	}, []string{"dataset", "status"})

	datasetLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tennis_dataset_load_duration_seconds",
		Help:    "Duration of dataset loads including validation",
		Buckets: prometheus.DefBuckets,
	}, []string{"dataset"})

	datasetRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tennis_dataset_records",
		Help: "Records in the most recently loaded dataset",
	}, []string{"dataset"})
)
