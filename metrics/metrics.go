package metrics

import (
	"github.com/Chronicle20/atlas-rest/server"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	operationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_inventory_operations_total",
		Help: "Inventory operations by operation and outcome.",
	}, []string{"operation", "outcome"})
	notificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_inventory_notifications_total",
		Help: "Client notifications buffered by type.",
	}, []string{"type"})
	sessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "atlas_inventory_sessions_active",
		Help: "Sessions currently owning an inventory.",
	})
)

func init() {
	prometheus.MustRegister(operationsTotal, notificationsTotal, sessionsActive)
}

func RecordOperation(operation string, outcome string) {
	operationsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordNotification(eventType string) {
	notificationsTotal.WithLabelValues(eventType).Inc()
}

func SetSessionsActive(n int) {
	sessionsActive.Set(float64(n))
}

func InitResource() server.RouteInitializer {
	return func(router *mux.Router, l logrus.FieldLogger) {
		router.Handle("/metrics", promhttp.Handler())
	}
}
