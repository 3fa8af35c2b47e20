/*
@Description: Structured logging wired to the dashboard's log pane
*/

package rtlink

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a zap.Logger that tees every log line to both
// stderr and the dashboard's scrolling log pane (C8), so log.Info
// calls made anywhere in the runtime double as the "scrolling lower
// pane log messages" spec.md §6 requires from the terminal UI.
func NewLogger(dash *Dashboard) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), zapcore.InfoLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(dash), zapcore.InfoLevel),
	)

	return zap.New(core)
}
