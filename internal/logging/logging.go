// Package logging builds the console logger shared by folio commands.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const appName = "folio"

// New returns a console logger for level "none", "normal" or "debug".
// Info and below go to stdout, errors go to stderr.
func New(level string) (*zap.Logger, error) {
	return newLogger(level, os.Stdout, os.Stderr, isTerminal(os.Stdout), isTerminal(os.Stderr))
}

func newLogger(level string, stdout, stderr io.Writer, colorOut, colorErr bool) (*zap.Logger, error) {
	var min zapcore.Level
	switch level {
	case "none":
		return zap.NewNop(), nil
	case "normal", "":
		min = zapcore.InfoLevel
	case "debug":
		min = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return min <= lvl && lvl < zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder(colorOut), zapcore.AddSync(stdout), lowPriority),
		zapcore.NewCore(consoleEncoder(colorErr), zapcore.AddSync(stderr), highPriority),
	)
	return zap.New(core).Named(appName), nil
}

func consoleEncoder(color bool) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
