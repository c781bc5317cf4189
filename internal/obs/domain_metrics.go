package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CartValidationsTotal counts cart validation outcomes (valid/invalid).
	CartValidationsTotal *prometheus.CounterVec
	// CartItemErrorsTotal counts dropped line items by error code.
	CartItemErrorsTotal *prometheus.CounterVec
	// PromoEvaluationsTotal counts promo evaluation outcomes (applied/rejected).
	PromoEvaluationsTotal *prometheus.CounterVec
	// OrderTotalsComputedTotal counts computed order totals by cart validity.
	OrderTotalsComputedTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CartValidationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_validations_total",
			Help:      "Count of cart validation outcomes.",
		}, []string{"result"})
		CartItemErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_item_errors_total",
			Help:      "Count of line items rejected during cart validation by error code.",
		}, []string{"code"})
		PromoEvaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_evaluations_total",
			Help:      "Count of promo code evaluation outcomes.",
		}, []string{"result"})
		OrderTotalsComputedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_totals_computed_total",
			Help:      "Count of computed order totals by cart validity.",
		}, []string{"valid"})

		mustRegisterCollector(reg, CartValidationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CartValidationsTotal = v
			}
		})
		mustRegisterCollector(reg, CartItemErrorsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CartItemErrorsTotal = v
			}
		})
		mustRegisterCollector(reg, PromoEvaluationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PromoEvaluationsTotal = v
			}
		})
		mustRegisterCollector(reg, OrderTotalsComputedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				OrderTotalsComputedTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
