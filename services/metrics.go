package services

import "github.com/prometheus/client_golang/prometheus"

var (
	reloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Total number of data summary reloads by source and result.",
		},
		[]string{"source", "result"},
	)
	datasetsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_datasets",
			Help: "Number of unique datasets in the current snapshot.",
		},
	)
	entriesLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_raw_entries",
			Help: "Number of raw entries read for the current snapshot.",
		},
	)
	lastReloadTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_last_reload_timestamp_seconds",
			Help: "Unix time of the last successful reload.",
		},
	)
)

func init() {
	prometheus.MustRegister(reloadsTotal, datasetsLoaded, entriesLoaded, lastReloadTimestamp)
}
