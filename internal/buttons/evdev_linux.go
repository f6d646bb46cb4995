//go:build linux

package buttons

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const DefaultInputGlob = "/dev/input/event*"

type Logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EvdevButtons reads key presses from every device matching Glob and maps
// them through Keymap.
type EvdevButtons struct {
	Glob   string
	Keymap Keymap
	Logger Logger

	ch     chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewEvdevButtons(logger Logger) *EvdevButtons {
	return &EvdevButtons{Glob: DefaultInputGlob, Keymap: DefaultKeymap(), Logger: logger, ch: make(chan Event, 16)}
}

func (b *EvdevButtons) Events() <-chan Event { return b.ch }

// Start opens all matching devices and returns once their readers are
// running. It fails only when no device could be opened.
func (b *EvdevButtons) Start(ctx context.Context) error {
	if b.ch == nil {
		b.ch = make(chan Event, 16)
	}
	if b.Keymap == nil {
		b.Keymap = DefaultKeymap()
	}
	glob := b.Glob
	if glob == "" {
		glob = DefaultInputGlob
	}
	paths, err := filepath.Glob(glob)
	if err != nil {
		return err
	}

	readCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	opened := 0
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			if b.Logger != nil {
				b.Logger.Errorf("input", "open %s: %v", path, err)
			}
			continue
		}
		opened++
		b.wg.Add(1)
		go b.read(readCtx, os.NewFile(uintptr(fd), path), fd, tvSize)
	}
	if opened == 0 {
		cancel()
		return errors.New("no evdev input devices available")
	}
	if b.Logger != nil {
		b.Logger.Infof("input", "listening on %d evdev devices", opened)
	}
	return nil
}

func (b *EvdevButtons) read(ctx context.Context, f *os.File, fd int, tvSize int) {
	defer b.wg.Done()
	defer func() { _ = f.Close() }()

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		for _, ev := range decodeEvents(buf[:n], tvSize, b.Keymap) {
			select {
			case b.ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Stop ends all readers and closes the event channel.
func (b *EvdevButtons) Stop() error {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
	if b.ch != nil {
		close(b.ch)
		b.ch = nil
	}
	return nil
}
