package logger

import "go.uber.org/zap"

const logFilePath = "./logs/app.log"

// NewLogger пишет одновременно в stdout и в файл. Уровень Debug:
// сервис внутренний, объем логов небольшой.
func NewLogger() *zap.Logger {
	cfg := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		OutputPaths:      []string{"stdout", logFilePath},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}
