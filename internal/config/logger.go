package config

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const appName = "stylegen"

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

// Prepare returns the program logger and the closer of its log file. Console
// output is split: info and debug go to stdout, errors to stderr. When a
// destination is set the same entries are also written there.
func (conf *LoggerConfig) Prepare() (*zap.Logger, io.Closer, error) {
	return conf.prepare(os.Stdout, os.Stderr)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// syncCloser flushes the file before closing it.
type syncCloser struct{ f *os.File }

func (c syncCloser) Close() error {
	return multierr.Append(c.f.Sync(), c.f.Close())
}

func (conf *LoggerConfig) prepare(stdout, stderr io.Writer) (*zap.Logger, io.Closer, error) {
	var minLevel zapcore.Level
	switch conf.Level {
	case "debug":
		minLevel = zapcore.DebugLevel
	case "normal":
		minLevel = zapcore.InfoLevel
	default:
		return zap.NewNop(), nopCloser{}, nil
	}

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return minLevel <= lvl && lvl < zapcore.ErrorLevel
	})
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(stdout), zapcore.AddSync(stdout), lowPriority),
		zapcore.NewCore(consoleEncoder(stderr), zapcore.AddSync(stderr), highPriority),
	}

	var closer io.Closer = nopCloser{}
	if conf.Destination != "" {
		flags := os.O_CREATE | os.O_WRONLY
		if conf.Mode == "append" {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(conf.Destination, flags, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.Destination, err)
		}
		fileEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.Lock(f), zap.NewAtomicLevelAt(minLevel)))
		closer = syncCloser{f: f}
	}

	return zap.New(zapcore.NewTee(cores...)).Named(appName), closer, nil
}

func consoleEncoder(w io.Writer) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if f, ok := w.(*os.File); ok && EnableColorOutput(f) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
