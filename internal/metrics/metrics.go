package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Registry holds the domain event collectors.
	Registry = prometheus.NewRegistry()

	habitToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kanso_eco",
			Subsystem: "habits",
			Name:      "toggles_total",
			Help:      "Total number of habit toggles.",
		},
		[]string{"direction"},
	)

	pointsMoved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kanso_eco",
			Subsystem: "ledger",
			Name:      "points_total",
			Help:      "Points credited or debited, by transaction type.",
		},
		[]string{"type"},
	)

	purchases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kanso_eco",
			Subsystem: "store",
			Name:      "purchases_total",
			Help:      "Purchase attempts, by result.",
		},
		[]string{"result"},
	)

	unlocks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kanso_eco",
			Subsystem: "achievements",
			Name:      "unlocked_total",
			Help:      "Achievements unlocked, by achievement id.",
		},
		[]string{"achievement"},
	)
)

func init() {
	Registry.MustRegister(habitToggles, pointsMoved, purchases, unlocks)
}

func ObserveToggle(completed bool) {
	direction := "undone"
	if completed {
		direction = "completed"
	}
	habitToggles.WithLabelValues(direction).Inc()
}

func ObservePoints(txType string, amount int) {
	pointsMoved.WithLabelValues(txType).Add(float64(amount))
}

func ObservePurchase(result string) {
	purchases.WithLabelValues(result).Inc()
}

func ObserveUnlock(achievementID string) {
	unlocks.WithLabelValues(achievementID).Inc()
}

// WriteTextfile dumps the registry in the text exposition format, for the
// node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
