package sweeper_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-loan-service/loan/internal/model"
	"github.com/Astemirdum/library-loan-service/loan/internal/sweeper"
)

type countingService struct {
	calls int32
	err   error
}

func (c *countingService) SweepOverdue(context.Context) (model.SweepReport, error) {
	n := atomic.AddInt32(&c.calls, 1)
	if c.err != nil && n%2 == 1 {
		return model.SweepReport{}, c.err
	}
	return model.SweepReport{Candidates: 1, Transitioned: []string{"x"}}, nil
}

func (c *countingService) Calls() int32 {
	return atomic.LoadInt32(&c.calls)
}

func TestSweeper_Start(t *testing.T) {
	t.Parallel()
	svc := &countingService{err: errors.New("db down")}
	s := sweeper.New(svc, 10*time.Millisecond, zap.NewExample().Named("test"))

	stop := s.Start(context.Background())
	require.Eventually(t, func() bool { return svc.Calls() >= 3 }, time.Second, 5*time.Millisecond)
	stop()

	after := svc.Calls()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, after, svc.Calls())
}

func TestSweeper_RunsImmediately(t *testing.T) {
	t.Parallel()
	svc := &countingService{}
	s := sweeper.New(svc, time.Hour, zap.NewExample().Named("test"))

	stop := s.Start(context.Background())
	require.Eventually(t, func() bool { return svc.Calls() == 1 }, time.Second, 5*time.Millisecond)
	stop()
}

func TestSweeper_SweepNow(t *testing.T) {
	t.Parallel()
	svc := &countingService{}
	s := sweeper.New(svc, time.Hour, zap.NewExample().Named("test"))

	report, err := s.SweepNow(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, report.Transitioned)
	require.Equal(t, int32(1), svc.Calls())
}
