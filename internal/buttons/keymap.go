package buttons

import (
	"encoding/binary"

	"github.com/rook-computer/handheld/internal/palette"
)

const (
	evKey = 0x01

	keyPressed = 1

	// Linux input-event-codes.h
	key1     = 2
	keyP     = 25
	keyN     = 49
	keySpace = 57
	keyF4    = 62
	keyLeft  = 105
	keyRight = 106
)

// Keymap maps evdev key codes to events.
type Keymap map[uint16]Event

// DefaultKeymap binds 1..n to the built-in palettes in display order, space,
// N and the right arrow to the next palette, P and the left arrow to the
// previous one and F4 to exit.
func DefaultKeymap() Keymap {
	km := Keymap{
		keySpace: Next,
		keyN:     Next,
		keyRight: Next,
		keyP:     Prev,
		keyLeft:  Prev,
		keyF4:    Exit,
	}
	for i, name := range palette.Names() {
		if i >= 9 {
			break
		}
		km[uint16(key1+i)] = Select(name)
	}
	return km
}

// decodeEvents parses a buffer of input_event records (timeval, u16 type,
// u16 code, s32 value) and returns the mapped events for key presses.
// Repeats and releases are ignored, as are trailing partial records.
func decodeEvents(buf []byte, tvSize int, km Keymap) []Event {
	eventSize := tvSize + 2 + 2 + 4
	var out []Event
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if typ != evKey || value != keyPressed {
			continue
		}
		if ev, ok := km[code]; ok {
			out = append(out, ev)
		}
	}
	return out
}
