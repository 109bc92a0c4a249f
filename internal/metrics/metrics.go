// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"

	"github.com/iwvelando/asset-depreciation/pkg/depreciation"
	"github.com/iwvelando/asset-depreciation/pkg/output"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "asset_depreciation"

// SchedulesComputed counts schedule computations by method.
var SchedulesComputed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "schedules_total",
	Help:      "Total depreciation schedules computed.",
}, []string{"method"})

// ScheduleYears observes how many years each computed schedule spans.
var ScheduleYears = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: namespace,
	Name:      "schedule_years",
	Help:      "Number of entries in computed depreciation schedules.",
	Buckets:   []float64{0, 1, 3, 5, 10, 20, 40},
})

// HTTPRequests counts API requests by route pattern and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests handled.",
}, []string{"route", "code"})

// ObserveSchedule records one computed schedule.
func ObserveSchedule(method depreciation.Method, entries int) {
	label := method.String()
	if !method.IsValid() {
		label = "unknown"
	}
	SchedulesComputed.WithLabelValues(label).Inc()
	ScheduleYears.Observe(float64(entries))
}

// ObserveSchedules records each computed schedule of a batch.
func ObserveSchedules(schedules []output.NamedSchedule) {
	for _, schedule := range schedules {
		ObserveSchedule(schedule.Asset.Method, len(schedule.Entries))
	}
}

// ObserveRequest records one handled HTTP request.
func ObserveRequest(route string, code int) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
