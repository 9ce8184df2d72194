//go:build unit

package metrics_test

import (
	"testing"

	"table-booking/internal/infra/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			match := true
			for _, lp := range m.GetLabel() {
				if v, ok := labels[lp.GetName()]; ok && v != lp.GetValue() {
					match = false
				}
			}
			if match {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestRecorder(t *testing.T) {
	r := metrics.NewRecorder()
	metrics.Register()

	before := counterValue(t, "table_booking_booking_created_total", map[string]string{"mode": "public"})
	r.BookingCreated("public")
	r.BookingCreated("public")
	after := counterValue(t, "table_booking_booking_created_total", map[string]string{"mode": "public"})
	assert.Equal(t, before+2, after)

	r.BookingRejected("no_table_fit")
	assert.Equal(t, 1.0, counterValue(t, "table_booking_booking_rejected_total", map[string]string{"reason": "no_table_fit"}))

	metrics.IncTxRetry("23P01")
	assert.Equal(t, 1.0, counterValue(t, "table_booking_tx_retry_total", map[string]string{"code": "23P01"}))
}
