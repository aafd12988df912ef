package main

import (
	"os"

	zaplogfmt "github.com/sykesm/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"p224.mleku.dev"
)

var logger = zap.NewNop()

// newLogger builds a logfmt logger writing to w at info level, or debug level
// when verbose is set
func newLogger(w zapcore.WriteSyncer, verbose bool) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zaplogfmt.NewEncoder(encoderConfig), zapcore.Lock(w), level)
	return zap.New(core).Named("p224field")
}

// setupLogging installs the command logger and hands it to the field package
func setupLogging(verbose bool) error {
	logger = newLogger(os.Stderr, verbose)
	p224.SetLogger(logger)
	return nil
}
