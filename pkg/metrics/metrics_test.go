package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/honlnm/biztime/pkg/metrics"
)

type poolStat struct {
	total, idle, acquired, maxConns int32
}

func (s poolStat) TotalConns() int32    { return s.total }
func (s poolStat) IdleConns() int32     { return s.idle }
func (s poolStat) AcquiredConns() int32 { return s.acquired }
func (s poolStat) MaxConns() int32      { return s.maxConns }

func TestObservePool(t *testing.T) {
	metrics.ObservePool(poolStat{total: 4, idle: 3, acquired: 1, maxConns: 10})

	require.InDelta(t, 4, testutil.ToFloat64(metrics.DBTotalConns), 0)
	require.InDelta(t, 3, testutil.ToFloat64(metrics.DBIdleConns), 0)
	require.InDelta(t, 1, testutil.ToFloat64(metrics.DBInUseConns), 0)
	require.InDelta(t, 10, testutil.ToFloat64(metrics.DBMaxConns), 0)
}
