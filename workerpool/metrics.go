package workerpool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tasksInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "user_order_service_worker_tasks_in_flight",
			Help: "Number of tasks currently executing per pool",
		},
		[]string{"pool"},
	)

	queueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "user_order_service_worker_queue_depth",
			Help: "Number of tasks waiting for a worker per pool",
		},
		[]string{"pool"},
	)

	taskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_order_service_worker_task_duration_seconds",
			Help:    "Execution time of worker pool tasks",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"pool"},
	)
)
