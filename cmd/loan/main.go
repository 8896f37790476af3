package main

import (
	"io/fs"
	stdLog "log"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/library-loan-service/loan/app"
	"github.com/Astemirdum/library-loan-service/loan/config"
)

// @title Loan service API
// @version 1.0
// @BasePath /api/v1
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", zap.Error(err))
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	if err := app.Run(&cfg); err != nil {
		stdLog.Fatal("app.Run ", zap.Error(err))
	}
}
