// Package input turns a raw terminal byte stream into discrete key and mouse events.
//
// Terminals never report key releases, so a key is considered held while its
// byte keeps arriving (auto-repeat) and released once it has been quiet for
// keyHoldDuration.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last byte.
const keyHoldDuration = 120 * time.Millisecond

// arrowLookStep is the look delta, in cells, produced by one arrow key byte.
const arrowLookStep = 2

// Key identifies a game key.
type Key int

const (
	KeyNone Key = iota
	KeyA
	KeyD
	KeyW
	KeyS
	KeySpace
	KeyEscape
)

// EventType identifies the kind of Event.
type EventType int

const (
	EventKeyDown         EventType = iota // Key went down
	EventKeyUp                            // Key released (synthesized after hold timeout)
	EventMouseButtonDown                  // Any mouse button pressed
	EventMouseMotion                      // Relative pointer motion in cells
	EventLook                             // Arrow key look, applied even without mouse capture
	EventQuit                             // Host should stop
)

// Event is a single discrete input event.
type Event struct {
	Type EventType
	Key  Key
	XRel float32
	YRel float32
}

// heldKeys are the keys that get synthesized key-up events.
var heldKeys = [...]Key{KeyA, KeyD, KeyW, KeyS, KeySpace}

// Stream delivers input bytes via a channel and tracks key state for key-up synthesis.
type Stream struct {
	ch       chan byte
	lastSeen [KeyEscape + 1]time.Time
	held     [KeyEscape + 1]bool
	pending  []byte // unterminated escape sequence carried to the next read

	mouseX, mouseY int
	haveMouse      bool
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 256)}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadEvents drains all available bytes from the stream (non-blocking) and
// returns the events they produce, followed by key-ups for keys that went quiet.
// A closed stream yields an EventQuit.
func ReadEvents(s *Stream, now time.Time) []Event {
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	events := s.Feed(buf, now)
	if closed {
		events = append(events, Event{Type: EventQuit})
	}
	return events
}

// Feed parses buf as terminal input received at now.
func (s *Stream) Feed(buf []byte, now time.Time) []Event {
	if len(s.pending) > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}

	var events []Event
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			n, evs, complete := s.parseCSI(buf[i+2:])
			if !complete {
				s.pending = append(s.pending, buf[i:]...)
				break
			}
			events = append(events, evs...)
			i += 1 + n
			continue
		}

		// SS3: application-cursor mode arrows.
		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == 'O' {
			if i+2 >= len(buf) {
				s.pending = append(s.pending, buf[i:]...)
				break
			}
			if ev, ok := arrowLook(buf[i+2]); ok {
				events = append(events, ev)
			}
			i += 2
			continue
		}

		events = s.applyByte(events, b, now)
	}

	return s.expire(events, now)
}

// parseCSI handles the bytes following ESC [. It returns how many bytes it consumed.
func (s *Stream) parseCSI(seq []byte) (n int, events []Event, complete bool) {
	if len(seq) == 0 {
		return 0, nil, false
	}

	if ev, ok := arrowLook(seq[0]); ok {
		return 1, []Event{ev}, true
	}
	if seq[0] == '<' {
		return s.parseSGRMouse(seq)
	}

	// Unknown CSI: skip through its final byte.
	for i, c := range seq {
		if c >= 0x40 && c <= 0x7e {
			return i + 1, nil, true
		}
	}
	return 0, nil, false
}

// arrowLook maps an arrow key's final byte to a look event.
func arrowLook(final byte) (Event, bool) {
	switch final {
	case 'A': // Up
		return Event{Type: EventLook, YRel: -arrowLookStep}, true
	case 'B': // Down
		return Event{Type: EventLook, YRel: arrowLookStep}, true
	case 'C': // Right
		return Event{Type: EventLook, XRel: arrowLookStep}, true
	case 'D': // Left
		return Event{Type: EventLook, XRel: -arrowLookStep}, true
	}
	return Event{}, false
}

// parseSGRMouse parses "<b;x;y" terminated by M (press/motion) or m (release).
func (s *Stream) parseSGRMouse(seq []byte) (n int, events []Event, complete bool) {
	var params [3]int
	idx := 0
	for i := 1; i < len(seq); i++ {
		c := seq[i]
		switch {
		case c >= '0' && c <= '9':
			if idx < len(params) {
				params[idx] = params[idx]*10 + int(c-'0')
			}
		case c == ';':
			idx++
		case c == 'M' || c == 'm':
			return i + 1, s.mouseEvent(params[0], params[1], params[2], c == 'M'), true
		default:
			return i + 1, nil, true
		}
	}
	return 0, nil, false
}

func (s *Stream) mouseEvent(button, x, y int, press bool) []Event {
	var events []Event
	switch {
	case button&32 != 0: // motion
		if s.haveMouse && (x != s.mouseX || y != s.mouseY) {
			events = append(events, Event{
				Type: EventMouseMotion,
				XRel: float32(x - s.mouseX),
				YRel: float32(y - s.mouseY),
			})
		}
	case press && button < 64 && button&3 != 3:
		events = append(events, Event{Type: EventMouseButtonDown})
	}
	s.mouseX, s.mouseY = x, y
	s.haveMouse = true
	return events
}

// applyByte updates key state for a single byte and appends resulting events.
func (s *Stream) applyByte(events []Event, b byte, now time.Time) []Event {
	var key Key
	switch b {
	case 'q', 'Q', '\x03':
		return append(events, Event{Type: EventQuit})
	case 'a', 'A':
		key = KeyA
	case 'd', 'D':
		key = KeyD
	case 'w', 'W':
		key = KeyW
	case 's', 'S':
		key = KeyS
	case ' ':
		key = KeySpace
	case '\x1b':
		// Escape has no auto-repeat worth tracking: press and release at once.
		return append(events,
			Event{Type: EventKeyDown, Key: KeyEscape},
			Event{Type: EventKeyUp, Key: KeyEscape})
	default:
		return events
	}

	s.lastSeen[key] = now
	if !s.held[key] {
		s.held[key] = true
		events = append(events, Event{Type: EventKeyDown, Key: key})
	}
	return events
}

// expire releases held keys whose byte has not been seen within keyHoldDuration.
func (s *Stream) expire(events []Event, now time.Time) []Event {
	for _, key := range heldKeys {
		if s.held[key] && now.Sub(s.lastSeen[key]) >= keyHoldDuration {
			s.held[key] = false
			events = append(events, Event{Type: EventKeyUp, Key: key})
		}
	}
	return events
}

// ResetKeyInput releases every held key and returns the matching key-up events.
func ResetKeyInput(s *Stream) []Event {
	var events []Event
	for _, key := range heldKeys {
		if s.held[key] {
			s.held[key] = false
			events = append(events, Event{Type: EventKeyUp, Key: key})
		}
	}
	s.pending = nil
	return events
}
