package util

import (
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

// Console receives every line the launcher and the running game produce.
// Implementations must be safe for concurrent use.
type Console interface {
	Info(msg string)
	Error(msg string)
}

type PtermConsole struct{}

func (PtermConsole) Info(msg string) {
	pterm.Info.Println(msg)
}

func (PtermConsole) Error(msg string) {
	pterm.Error.Println(msg)
}

type ZapConsole struct {
	logger *zap.Logger
}

func NewZapConsole(logger *zap.Logger) *ZapConsole {
	return &ZapConsole{logger: logger}
}

func (c *ZapConsole) Info(msg string) {
	c.logger.Info(msg)
}

func (c *ZapConsole) Error(msg string) {
	c.logger.Error(msg)
}
