package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/library-loan-service/loan/config"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("LOAN_HTTP_PORT", "8085")
	t.Setenv("STORAGE", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/loans.db")
	t.Setenv("DB_HOST", "postgres")
	t.Setenv("KAFKA_ADDRS", "kafka1:9092,kafka2:9092")
	t.Setenv("IDENTITY_HTTP_HOST", "identity")
	t.Setenv("LOAN_MAX_OPEN", "5")
	t.Setenv("SWEEP_INTERVAL", "30s")

	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.WarnLevel),
		config.WithWriteTimeout(time.Minute),
	)

	require.Equal(t, "8085", cfg.Server.Port)
	require.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	require.Equal(t, config.StorageSQLite, cfg.Storage)
	require.Equal(t, "/tmp/loans.db", cfg.SQLite.Path)
	require.Equal(t, "postgres", cfg.Database.Host)
	require.Equal(t, "disable", cfg.Database.SSLMode)
	require.Equal(t, []string{"kafka1:9092", "kafka2:9092"}, cfg.Kafka.Addrs)
	require.False(t, cfg.Kafka.Enable)
	require.Equal(t, "identity", cfg.IdentityHTTPServer.Host)
	require.Equal(t, 3*time.Second, cfg.RemoteTimeout)
	require.Equal(t, 14, cfg.Loan.DefaultDurationDays)
	require.Equal(t, 5, cfg.Loan.MaxOpen)
	require.Equal(t, 30*time.Second, cfg.Loan.SweepInterval)
	require.Equal(t, zapcore.WarnLevel, cfg.Log.LogLevel)
}
