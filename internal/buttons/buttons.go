package buttons

import (
	"context"
	"strings"
)

type Event string

const (
	Next Event = "next"
	Prev Event = "prev"
	Exit Event = "exit"
)

const selectPrefix = "select:"

// Select is the event for choosing a palette by name.
func Select(name string) Event { return Event(selectPrefix + name) }

// Palette returns the palette name carried by a Select event.
func (e Event) Palette() (string, bool) {
	name, ok := strings.CutPrefix(string(e), selectPrefix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

type Buttons interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

type NoopButtons struct{ ch chan Event }

func NewNoopButtons() *NoopButtons { return &NoopButtons{ch: make(chan Event)} }

func (n *NoopButtons) Start(ctx context.Context) error { return nil }
func (n *NoopButtons) Stop() error                     { close(n.ch); return nil }
func (n *NoopButtons) Events() <-chan Event            { return n.ch }
