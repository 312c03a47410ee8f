package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aistudio_generations_total",
		Help: "Generation requests by type and outcome.",
	}, []string{"type", "outcome"})

	CreditAdjustmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aistudio_credit_adjustments_total",
		Help: "Credit ledger adjustments by transaction type.",
	}, []string{"type"})

	CreditsSpentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aistudio_credits_spent_total",
		Help: "Total credits debited for generation usage.",
	})
)
