package circuit_breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/library-loan-service/pkg/circuit_breaker"
)

var errService = errors.New("service error")

func successfulService() error { return nil }

func failingService() error { return errService }

func TestCircuitBreaker_Call(t *testing.T) {
	t.Parallel()
	type fields struct {
		recordLength     int
		timeout          time.Duration
		percentile       float64
		recoveryRequests int
	}
	tests := []struct {
		name      string
		fields    fields
		failures  int
		wantState circuit_breaker.Status
	}{
		{
			name:      "stays closed below percentile",
			fields:    fields{recordLength: 10, timeout: time.Minute, percentile: 0.3, recoveryRequests: 2},
			failures:  2,
			wantState: circuit_breaker.Closed,
		},
		{
			name:      "opens at percentile",
			fields:    fields{recordLength: 10, timeout: time.Minute, percentile: 0.3, recoveryRequests: 2},
			failures:  3,
			wantState: circuit_breaker.Open,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cb := circuit_breaker.New(circuit_breaker.Config{
				RecordLength:     tt.fields.recordLength,
				Timeout:          tt.fields.timeout,
				Percentile:       tt.fields.percentile,
				RecoveryRequests: tt.fields.recoveryRequests,
			})
			for i := 0; i < 5; i++ {
				require.NoError(t, cb.Call(successfulService))
			}
			for i := 0; i < tt.failures; i++ {
				require.ErrorIs(t, cb.Call(failingService), errService)
			}
			require.Equal(t, tt.wantState, cb.State())
			if tt.wantState == circuit_breaker.Open {
				require.ErrorIs(t, cb.Call(successfulService), circuit_breaker.ErrOpenCB)
			}
		})
	}
}

func TestCircuitBreaker_Recovery(t *testing.T) {
	t.Parallel()
	cb := circuit_breaker.New(circuit_breaker.Config{
		RecordLength:     4,
		Timeout:          20 * time.Millisecond,
		Percentile:       0.5,
		RecoveryRequests: 2,
	})
	for i := 0; i < 2; i++ {
		_ = cb.Call(failingService)
	}
	require.Equal(t, circuit_breaker.Open, cb.State())

	time.Sleep(40 * time.Millisecond)
	require.NoError(t, cb.Call(successfulService))
	require.Equal(t, circuit_breaker.HalfOpen, cb.State())
	require.NoError(t, cb.Call(successfulService))
	require.Equal(t, circuit_breaker.Closed, cb.State())

	for i := 0; i < 2; i++ {
		_ = cb.Call(failingService)
	}
	require.Equal(t, circuit_breaker.Open, cb.State())
	time.Sleep(40 * time.Millisecond)
	require.ErrorIs(t, cb.Call(failingService), errService)
	require.Equal(t, circuit_breaker.Open, cb.State())
}

func TestCircuitBreaker_IsFailure(t *testing.T) {
	t.Parallel()
	errBusiness := errors.New("not found")
	cb := circuit_breaker.New(circuit_breaker.Config{
		RecordLength:     2,
		Timeout:          time.Minute,
		Percentile:       0.5,
		RecoveryRequests: 1,
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, errBusiness)
		},
	})
	for i := 0; i < 10; i++ {
		require.ErrorIs(t, cb.Call(func() error { return errBusiness }), errBusiness)
	}
	require.Equal(t, circuit_breaker.Closed, cb.State())

	cb.Reset()
	require.Equal(t, circuit_breaker.Closed, cb.State())
}
