package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(PaymentsRecorded.WithLabelValues("pago"))
	PaymentsRecorded.WithLabelValues("pago").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(PaymentsRecorded.WithLabelValues("pago")))

	before = testutil.ToFloat64(RemindersPublished.WithLabelValues("overdue"))
	RemindersPublished.WithLabelValues("overdue").Add(2)
	assert.Equal(t, before+2, testutil.ToFloat64(RemindersPublished.WithLabelValues("overdue")))
}
