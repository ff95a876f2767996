package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// poolStatter is satisfied by *pgxpool.Pool.
type poolStatter interface {
	Stat() *pgxpool.Stat
}

// PoolCollector exports pgx pool statistics as Prometheus gauges and counters.
type PoolCollector struct {
	pool poolStatter

	open      *prometheus.Desc
	inUse     *prometheus.Desc
	idle      *prometheus.Desc
	maxConns  *prometheus.Desc
	waitCount *prometheus.Desc
	waitTime  *prometheus.Desc
}

// NewPoolCollector describes the pool metrics under the given namespace.
func NewPoolCollector(namespace string, pool poolStatter) *PoolCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "postgres", name), help, nil, nil)
	}
	return &PoolCollector{
		pool:      pool,
		open:      desc("connections_open", "Number of open Postgres connections"),
		inUse:     desc("connections_in_use", "Number of Postgres connections currently in use"),
		idle:      desc("connections_idle", "Number of idle Postgres connections"),
		maxConns:  desc("max_open_connections", "Configured Postgres connection pool size"),
		waitCount: desc("connection_waits_total", "Acquires that had to wait for a connection"),
		waitTime:  desc("connection_wait_seconds_total", "Time spent waiting for a connection from the pool"),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.open
	ch <- c.inUse
	ch <- c.idle
	ch <- c.maxConns
	ch <- c.waitCount
	ch <- c.waitTime
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.pool.Stat()
	ch <- prometheus.MustNewConstMetric(c.open, prometheus.GaugeValue, float64(stats.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(stats.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(stats.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.maxConns, prometheus.GaugeValue, float64(stats.MaxConns()))
	ch <- prometheus.MustNewConstMetric(c.waitCount, prometheus.CounterValue, float64(stats.EmptyAcquireCount()))
	ch <- prometheus.MustNewConstMetric(c.waitTime, prometheus.CounterValue, stats.EmptyAcquireWaitTime().Seconds())
}
