// Package metrics declares the Prometheus collectors for the order form.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "justjava_orders_submitted_total",
			Help: "Total number of submitted coffee orders",
		},
		[]string{"whipped_cream", "chocolate"},
	)

	cupsOrdered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "justjava_cups_ordered_total",
			Help: "Total number of cups across all submitted orders",
		},
	)

	orderValue = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "justjava_order_value",
			Help:    "Total price of submitted orders in whole currency units",
			Buckets: []float64{5, 10, 20, 50, 100, 200, 400, 800},
		},
	)

	quantityRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "justjava_quantity_rejections_total",
			Help: "Increment or decrement requests rejected at the quantity bounds",
		},
		[]string{"direction"},
	)

	mailDispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "justjava_mail_dispatch_total",
			Help: "Mail handoff attempts by handler and result",
		},
		[]string{"handler", "result"},
	)
)

// ObserveOrder records a submitted order.
func ObserveOrder(quantity, price int, hasWhippedCream, hasChocolate bool) {
	ordersSubmitted.WithLabelValues(strconv.FormatBool(hasWhippedCream), strconv.FormatBool(hasChocolate)).Inc()
	cupsOrdered.Add(float64(quantity))
	orderValue.Observe(float64(price))
}

// ObserveQuantityRejection records a rejected counter move. direction is "increment" or "decrement".
func ObserveQuantityRejection(direction string) {
	quantityRejections.WithLabelValues(direction).Inc()
}

// ObserveMailDispatch records a mail handoff attempt.
func ObserveMailDispatch(handler string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	mailDispatches.WithLabelValues(handler, result).Inc()
}
