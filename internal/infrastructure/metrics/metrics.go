package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SyncMetrics covers one ingestion run end to end.
type SyncMetrics struct {
	SyncsTotal            prometheus.CounterVec
	RecordsProcessedTotal prometheus.CounterVec
	RecordErrorsTotal     prometheus.CounterVec
	PurchasesDeletedTotal prometheus.CounterVec
	SyncDuration          prometheus.HistogramVec
}

func NewSyncMetrics() *SyncMetrics {
	return &SyncMetrics{
		SyncsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "affiliate_syncs_total",
				Help: "Total sync runs by network, data type and outcome",
			},
			[]string{"network", "data_type", "status"},
		),

		RecordsProcessedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "affiliate_records_processed_total",
				Help: "Entities written by sync runs",
			},
			[]string{"network", "entity"},
		),

		RecordErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "affiliate_record_errors_total",
				Help: "Input records rejected during a sync run",
			},
			[]string{"network"},
		),

		PurchasesDeletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "affiliate_purchases_deleted_total",
				Help: "Purchase rows cleared by the replace-window delete",
			},
			[]string{"network"},
		),

		SyncDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "affiliate_sync_duration_seconds",
				Help:    "Wall time of one sync run",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
			[]string{"network", "data_type"},
		),
	}
}

func (m *SyncMetrics) RecordSyncFinished(network, dataType string, success bool, campaigns, coupons, purchases, recordErrors int, durationSeconds float64) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.SyncsTotal.WithLabelValues(network, dataType, status).Inc()
	m.RecordsProcessedTotal.WithLabelValues(network, "campaign").Add(float64(campaigns))
	m.RecordsProcessedTotal.WithLabelValues(network, "coupon").Add(float64(coupons))
	m.RecordsProcessedTotal.WithLabelValues(network, "purchase").Add(float64(purchases))
	if recordErrors > 0 {
		m.RecordErrorsTotal.WithLabelValues(network).Add(float64(recordErrors))
	}
	m.SyncDuration.WithLabelValues(network, dataType).Observe(durationSeconds)
}

func (m *SyncMetrics) RecordWindowCleared(network string, rows int64) {
	m.PurchasesDeletedTotal.WithLabelValues(network).Add(float64(rows))
}
