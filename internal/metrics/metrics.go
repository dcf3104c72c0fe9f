// Package metrics declares the Prometheus collectors for parsing runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/insightdelivered/ocr-transaction-parser/internal/models"
)

var (
	// DocumentsParsed counts parsed documents by validation status
	DocumentsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocrtx_documents_parsed_total",
			Help: "Total number of parsed documents",
		},
		[]string{"status"},
	)

	// AmountsExtracted counts extracted amounts by currency
	AmountsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocrtx_amounts_extracted_total",
			Help: "Total number of extracted amount candidates",
		},
		[]string{"currency"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ocrtx_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)
)

// RecordDocument updates the document and amount counters for one result.
func RecordDocument(doc models.ParsedDocument) {
	status := "valid"
	if !doc.Validation.IsValid {
		status = "invalid"
	}
	DocumentsParsed.WithLabelValues(status).Inc()

	if doc.Transaction == nil {
		return
	}
	for _, a := range doc.Transaction.Amounts {
		AmountsExtracted.WithLabelValues(string(a.Currency)).Inc()
	}
}

// ObserveRequest records the duration of an HTTP request.
func ObserveRequest(route, status string, start time.Time) {
	RequestDuration.WithLabelValues(route, status).Observe(time.Since(start).Seconds())
}
