package dev

import (
	"fmt"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/i3sv/i3sv/internal/message"
	"go.uber.org/zap"
	"os"
)

var debugSet = os.Getenv("I3SV_DEBUG")
var debugPath = os.Getenv("I3SV_DEBUG_PATH")

var logger = newLogger()

func newLogger() *zap.Logger {
	if debugSet == "" {
		return zap.NewNop()
	}
	if debugPath == "" {
		debugPath = "i3sv.log"
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{debugPath}
	cfg.ErrorOutputPaths = []string{debugPath}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// SetLogger replaces the debug logger, returning a func that restores the previous one
func SetLogger(l *zap.Logger) func() {
	prev := logger
	logger = l
	return func() { logger = prev }
}

func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

func Sync() {
	_ = logger.Sync()
}

func DebugUpdateMsg(component string, msg tea.Msg) {
	switch msg.(type) {
	case message.ScrollTickMsg, cursor.BlinkMsg:
	// skip logging messages that are too frequent
	default:
		fields := []zap.Field{
			zap.String("component", component),
			zap.String("msg", fmt.Sprintf("%T", msg)),
		}
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			fields = append(fields, zap.String("key", keyMsg.String()))
		}
		logger.Debug("update", fields...)
	}
}
