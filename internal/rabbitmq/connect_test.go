package rabbitmq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_InvalidURL(t *testing.T) {
	tests := []struct {
		name         string
		attempts     int
		delay        time.Duration
		wantAttempts string
		minElapsed   time.Duration
	}{
		{name: "zero attempts dial once", attempts: 0, delay: time.Second, wantAttempts: "after 1 attempts"},
		{name: "retries sleep between attempts", attempts: 3, delay: 20 * time.Millisecond, wantAttempts: "after 3 attempts", minElapsed: 40 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			conn, err := Connect("not-an-amqp-url", tt.attempts, tt.delay)
			elapsed := time.Since(start)

			require.Error(t, err)
			assert.Nil(t, conn)
			assert.Contains(t, err.Error(), "rabbitmq.Connect")
			assert.Contains(t, err.Error(), tt.wantAttempts)
			assert.GreaterOrEqual(t, elapsed, tt.minElapsed)
			// после последней попытки пауза не делается
			assert.Less(t, elapsed, tt.minElapsed+tt.delay)
		})
	}
}
