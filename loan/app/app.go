package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/library-loan-service/loan/config"
	"github.com/Astemirdum/library-loan-service/loan/internal/events"
	"github.com/Astemirdum/library-loan-service/loan/internal/handler"
	"github.com/Astemirdum/library-loan-service/loan/internal/repository"
	"github.com/Astemirdum/library-loan-service/loan/internal/server"
	"github.com/Astemirdum/library-loan-service/loan/internal/service"
	"github.com/Astemirdum/library-loan-service/loan/internal/service/identity"
	"github.com/Astemirdum/library-loan-service/loan/internal/service/inventory"
	"github.com/Astemirdum/library-loan-service/loan/internal/sweeper"
	"github.com/Astemirdum/library-loan-service/loan/migrations"
	"github.com/Astemirdum/library-loan-service/pkg/kafka"
	"github.com/Astemirdum/library-loan-service/pkg/logger"
	"github.com/Astemirdum/library-loan-service/pkg/postgres"
	"github.com/Astemirdum/library-loan-service/pkg/sqlite"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "loan")
	defer log.Sync() //nolint:errcheck

	repo, closeDB, err := newRepository(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	publisher, closePublisher := newPublisher(cfg.Kafka, log)
	defer closePublisher()

	svc := service.NewService(
		repo,
		identity.NewClient(log, cfg.IdentityHTTPServer, cfg.RemoteTimeout),
		inventory.NewClient(log, cfg.InventoryHTTPServer, cfg.RemoteTimeout),
		publisher,
		log,
		service.WithPolicy(service.Policy{
			DefaultDurationDays: cfg.Loan.DefaultDurationDays,
			MaxOpen:             cfg.Loan.MaxOpen,
		}),
	)
	stopSweeper := sweeper.New(svc, cfg.Loan.SweepInterval, log).Start(context.Background())

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	stopSweeper()
	log.Info("Graceful shutdown finished")
	return nil
}

func newRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Repository, func(), error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite, migrations.SQLite())
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite init %v", err)
		}
		repo, err := repository.NewSQLiteRepository(db, log)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("repo loans %v", err)
		}
		return repo, func() { db.Close() }, nil
	case config.StoragePostgres, "":
		db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.Postgres())
		if err != nil {
			return nil, nil, fmt.Errorf("db init %v", err)
		}
		repo, err := repository.NewRepository(db, log)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("repo loans %v", err)
		}
		return repo, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

// newPublisher falls back to dropping events when kafka is disabled or unreachable.
func newPublisher(cfg kafka.Config, log *zap.Logger) (service.EventPublisher, func()) {
	if !cfg.Enable {
		return events.Nop(), func() {}
	}
	if err := kafka.CreateTopics(cfg, kafka.LoanTopic); err != nil {
		log.Warn("kafka create topics", zap.Error(err))
	}
	producer, err := kafka.NewAsyncProducer(cfg)
	if err != nil {
		log.Error("kafka producer, loan events disabled", zap.Error(err))
		return events.Nop(), func() {}
	}
	return events.NewLoanLog(producer, kafka.LoanTopic, log), func() {
		if err := producer.Close(); err != nil {
			log.Error("kafka producer close", zap.Error(err))
		}
	}
}
