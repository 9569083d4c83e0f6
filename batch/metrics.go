package batch

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/venicegeo/bf-sar-correct/orchestrator"
)

var (
	productsSweptTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bf_sar_correct_products_swept_total",
			Help: "Total number of products handled by sweeps, by terminal state.",
		},
		[]string{"state"},
	)

	polarizationsCorrectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bf_sar_correct_polarizations_corrected_total",
			Help: "Total number of polarization bands corrected, by outcome.",
		},
		[]string{"polarization", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(productsSweptTotal)
	prometheus.MustRegister(polarizationsCorrectedTotal)
}

// recordSweepResult updates the sweep counters from one run result
func recordSweepResult(result orchestrator.RunResult) {
	productsSweptTotal.WithLabelValues(string(result.State)).Inc()
	for _, polResult := range result.Polarizations {
		outcome := "ok"
		if polResult.Failure != nil {
			outcome = "failed"
		}
		polarizationsCorrectedTotal.WithLabelValues(polResult.Polarization, outcome).Inc()
	}
}
