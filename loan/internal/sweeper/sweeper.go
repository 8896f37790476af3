package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/library-loan-service/loan/internal/model"
)

const defaultInterval = time.Minute

type Service interface {
	SweepOverdue(ctx context.Context) (model.SweepReport, error)
}

// Sweeper triggers the overdue transition on a fixed interval.
type Sweeper struct {
	svc      Service
	interval time.Duration
	log      *zap.Logger
}

func New(svc Service, interval time.Duration, log *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Sweeper{
		svc:      svc,
		interval: interval,
		log:      log.Named("sweeper"),
	}
}

// Start runs the loop in a goroutine. The returned func cancels it and waits for it to exit.
func (s *Sweeper) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	s.log.Info("started", zap.Duration("interval", s.interval))
	defer s.log.Info("stopped")

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// SweepNow runs one sweep synchronously.
func (s *Sweeper) SweepNow(ctx context.Context) (model.SweepReport, error) {
	return s.svc.SweepOverdue(ctx)
}

func (s *Sweeper) sweep(ctx context.Context) {
	report, err := s.SweepNow(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Error("sweep", zap.Error(err))
		}
		return
	}
	if len(report.Failed) > 0 {
		s.log.Warn("sweep finished with failures",
			zap.Int("transitioned", len(report.Transitioned)), zap.Any("failed", report.Failed))
	}
}
