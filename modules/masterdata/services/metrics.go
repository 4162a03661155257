package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bulkRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "masterdata_bulk_rows_total",
		Help: "Bulk mapping upload rows by master kind, insurer and outcome.",
	}, []string{"master", "insurer", "outcome"})

	bulkUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "masterdata_bulk_uploads_total",
		Help: "Bulk mapping upload batches by master kind and result.",
	}, []string{"master", "result"})
)
