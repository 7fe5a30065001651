package logging

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls where log events are written
type Options struct {
	Service      string
	Production   bool   // console output is enabled outside production
	ErrorFile    string // error-level and above; empty disables
	CombinedFile string // info-level and above; empty disables
}

// New builds the process-wide logger. File output is buffered so that a
// slow disk never stalls request handling; call the returned cleanup
// before exit to flush it.
func New(opts Options) (*zap.Logger, func(), error) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonEncoder := zapcore.NewJSONEncoder(encCfg)

	var (
		cores    []zapcore.Core
		closers  []func()
		buffered []*zapcore.BufferedWriteSyncer
	)
	cleanup := func() {
		for _, b := range buffered {
			b.Stop()
		}
		for _, c := range closers {
			c()
		}
	}

	addFile := func(path string, level zapcore.LevelEnabler) error {
		if path == "" {
			return nil
		}
		ws, closeFn, err := zap.Open(path)
		if err != nil {
			return err
		}
		closers = append(closers, closeFn)
		b := &zapcore.BufferedWriteSyncer{WS: ws, FlushInterval: time.Second}
		buffered = append(buffered, b)
		cores = append(cores, zapcore.NewCore(jsonEncoder, b, level))
		return nil
	}

	if err := addFile(opts.ErrorFile, zap.ErrorLevel); err != nil {
		cleanup()
		return nil, nil, err
	}
	if err := addFile(opts.CombinedFile, zap.InfoLevel); err != nil {
		cleanup()
		return nil, nil, err
	}

	if !opts.Production {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(os.Stdout),
			zap.InfoLevel,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	)
	if opts.Service != "" {
		logger = logger.With(zap.String("service", opts.Service))
	}

	return logger, func() {
		_ = logger.Sync()
		cleanup()
	}, nil
}
