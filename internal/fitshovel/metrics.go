package fitshovel

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Exported counters/gauges, grounded on
// opensciencegrid-xrootd-monitoring-shoveler/metrics.go's promauto.New*
// declarations, renamed to this daemon's domain.
var (
	filesDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitshovel_files_decoded_total",
		Help: "The total number of FIT files successfully decoded",
	})

	recordsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitshovel_records_emitted_total",
		Help: "The total number of decoded FIT records forwarded",
	})

	decodeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitshovel_decode_errors_total",
		Help: "The total number of FIT files that failed to decode",
	})

	queueSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fitshovel_queue_size",
		Help: "The number of record batches currently queued for forwarding",
	})
)

// StartMetrics serves /metrics on port in its own goroutine, if enable is
// true.
func StartMetrics(enable bool, port int, logger *logrus.Logger) {
	if !enable {
		return
	}
	if logger == nil {
		logger = logrus.New()
	}
	go func() {
		addr := ":" + strconv.Itoa(port)
		logger.Debugln("fitshovel: starting metrics at", addr+"/metrics")
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Errorln("fitshovel: failed to serve metrics:", err)
		}
	}()
}
