package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTP request metrics, labelled by chi route pattern.
var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biztime_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "code"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "biztime_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method"},
	)
)

// Database connection pool metrics
var (
	DBTotalConns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "biztime_db_total_connections",
			Help: "Number of open connections in the DB pool",
		},
	)

	DBIdleConns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "biztime_db_idle_connections",
			Help: "Number of idle connections in the DB pool",
		},
	)

	DBInUseConns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "biztime_db_in_use_connections",
			Help: "Number of in-use connections in the DB pool",
		},
	)

	DBMaxConns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "biztime_db_max_connections",
			Help: "Maximum size of the DB pool",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPRequestDuration)
	prometheus.MustRegister(DBTotalConns, DBIdleConns, DBInUseConns, DBMaxConns)
}

// PoolStat is the subset of pgxpool.Stat the gauges are fed from.
type PoolStat interface {
	TotalConns() int32
	IdleConns() int32
	AcquiredConns() int32
	MaxConns() int32
}

var _ PoolStat = (*pgxpool.Stat)(nil)

func ObservePool(stat PoolStat) {
	DBTotalConns.Set(float64(stat.TotalConns()))
	DBIdleConns.Set(float64(stat.IdleConns()))
	DBInUseConns.Set(float64(stat.AcquiredConns()))
	DBMaxConns.Set(float64(stat.MaxConns()))
}
