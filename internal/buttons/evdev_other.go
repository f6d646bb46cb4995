//go:build !linux

package buttons

import (
	"context"
	"errors"
)

const DefaultInputGlob = ""

type Logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EvdevButtons is unavailable outside Linux; Start always fails.
type EvdevButtons struct {
	Glob   string
	Keymap Keymap
	Logger Logger

	ch chan Event
}

func NewEvdevButtons(logger Logger) *EvdevButtons {
	return &EvdevButtons{Keymap: DefaultKeymap(), Logger: logger, ch: make(chan Event)}
}

func (b *EvdevButtons) Start(ctx context.Context) error {
	return errors.New("evdev input is only supported on linux")
}

func (b *EvdevButtons) Events() <-chan Event { return b.ch }

func (b *EvdevButtons) Stop() error {
	if b.ch != nil {
		close(b.ch)
		b.ch = nil
	}
	return nil
}
