package logging

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type entry struct {
	logger *zap.SugaredLogger
	file   *lumberjack.Logger
}

var (
	mu          sync.Mutex
	initialized bool
	logDir      string
	level       = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	loggers     map[string]*entry
)

// Init configures the log directory and level. An empty dir keeps logging on
// stdout only.
func Init(dir, lvl string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	logDir = dir
	initialized = true

	if l, err := zapcore.ParseLevel(lvl); err == nil {
		level.SetLevel(l)
	}

	if logDir == "" {
		return nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		logDir = ""
		return err
	}
	return nil
}

// Get returns the logger for a component, creating it on first use.
func Get(name string) *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()

	if !initialized {
		return consoleLogger(name)
	}

	if e := loggers[name]; e != nil {
		return e.logger
	}

	e := buildLoggerLocked(name)
	loggers[name] = e
	return e.logger
}

// Sync flushes every component logger and closes their files.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	for _, e := range loggers {
		_ = e.logger.Sync()
		if e.file != nil {
			_ = e.file.Close()
		}
	}
	loggers = make(map[string]*entry)
}

func buildLoggerLocked(name string) *entry {
	if logDir == "" {
		return &entry{logger: consoleLogger(name)}
	}

	suffix := time.Now().Format("06.01") // yy.mm
	file := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, suffix+"_"+name+".log"),
		MaxSize:    10,
		MaxBackups: 3,
	}
	core := zapcore.NewTee(
		consoleCore(),
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(file), level),
	)
	return &entry{logger: zap.New(core).Named(name).Sugar(), file: file}
}

func consoleLogger(name string) *zap.SugaredLogger {
	return zap.New(consoleCore()).Named(name).Sugar()
}

func consoleCore() zapcore.Core {
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.Lock(os.Stdout), level)
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}
