package logger_fx

import (
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tourplan/pkg/logger"
)

var Module = fx.Provide(
	provideLogger)

func provideLogger() (*zap.Logger, error) {
	return logger.New(os.Getenv("LOG_LEVEL"))
}
