package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestFeedKeyDownThenSynthesizedKeyUp(t *testing.T) {
	s := newStream()
	t0 := time.Unix(0, 0)

	evs := s.Feed([]byte("w"), t0)
	if len(evs) != 1 || evs[0] != (Event{Type: EventKeyDown, Key: KeyW}) {
		t.Fatalf("first feed = %+v, want single KeyDown W", evs)
	}

	// Auto-repeat inside the hold window produces nothing new.
	evs = s.Feed([]byte("w"), t0.Add(50*time.Millisecond))
	if len(evs) != 0 {
		t.Fatalf("repeat feed = %+v, want none", evs)
	}

	evs = s.Feed(nil, t0.Add(50*time.Millisecond+keyHoldDuration))
	if len(evs) != 1 || evs[0] != (Event{Type: EventKeyUp, Key: KeyW}) {
		t.Fatalf("quiet feed = %+v, want single KeyUp W", evs)
	}
}

func TestFeedSimultaneousKeys(t *testing.T) {
	s := newStream()
	evs := s.Feed([]byte("aw"), time.Unix(0, 0))
	if len(evs) != 2 || evs[0].Key != KeyA || evs[1].Key != KeyW {
		t.Fatalf("events = %+v, want KeyDown A then W", evs)
	}
}

func TestFeedEscapeAndQuit(t *testing.T) {
	s := newStream()
	evs := s.Feed([]byte("\x1bq"), time.Unix(0, 0))
	want := []Event{
		{Type: EventKeyDown, Key: KeyEscape},
		{Type: EventKeyUp, Key: KeyEscape},
		{Type: EventQuit},
	}
	if len(evs) != len(want) {
		t.Fatalf("events = %+v, want %+v", evs, want)
	}
	for i := range want {
		if evs[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, evs[i], want[i])
		}
	}
}

func TestFeedArrowKeysLook(t *testing.T) {
	s := newStream()
	evs := s.Feed([]byte("\x1b[A\x1b[C"), time.Unix(0, 0))
	if len(evs) != 2 {
		t.Fatalf("events = %+v, want 2 look events", evs)
	}
	if evs[0].Type != EventLook || evs[0].YRel != -arrowLookStep {
		t.Fatalf("up arrow = %+v", evs[0])
	}
	if evs[1].Type != EventLook || evs[1].XRel != arrowLookStep {
		t.Fatalf("right arrow = %+v", evs[1])
	}
}

func TestFeedSS3Arrows(t *testing.T) {
	s := newStream()
	now := time.Unix(0, 0)
	evs := s.Feed([]byte("\x1bOA\x1bOD\x1bOP"), now)
	want := []Event{
		{Type: EventLook, YRel: -arrowLookStep},
		{Type: EventLook, XRel: -arrowLookStep},
	}
	if len(evs) != len(want) {
		t.Fatalf("events = %+v, want %+v", evs, want)
	}
	for i := range want {
		if evs[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, evs[i], want[i])
		}
	}

	// A sequence split after "ESC O" completes on the next read.
	if evs := s.Feed([]byte("\x1bO"), now); len(evs) != 0 {
		t.Fatalf("partial = %+v, want none", evs)
	}
	evs = s.Feed([]byte("B"), now)
	if len(evs) != 1 || evs[0] != (Event{Type: EventLook, YRel: arrowLookStep}) {
		t.Fatalf("completed = %+v, want look down", evs)
	}
}

func TestFeedSGRMouse(t *testing.T) {
	s := newStream()
	now := time.Unix(0, 0)

	// First motion report only establishes the pointer position.
	if evs := s.Feed([]byte("\x1b[<35;10;5M"), now); len(evs) != 0 {
		t.Fatalf("first motion = %+v, want none", evs)
	}

	evs := s.Feed([]byte("\x1b[<35;13;4M"), now)
	if len(evs) != 1 || evs[0].Type != EventMouseMotion || evs[0].XRel != 3 || evs[0].YRel != -1 {
		t.Fatalf("motion = %+v, want rel (3,-1)", evs)
	}

	evs = s.Feed([]byte("\x1b[<0;13;4M\x1b[<0;13;4m"), now)
	if len(evs) != 1 || evs[0].Type != EventMouseButtonDown {
		t.Fatalf("click = %+v, want single button down", evs)
	}
}

func TestFeedSplitSequence(t *testing.T) {
	s := newStream()
	now := time.Unix(0, 0)
	if evs := s.Feed([]byte("\x1b[<0;1"), now); len(evs) != 0 {
		t.Fatalf("partial = %+v, want none", evs)
	}
	evs := s.Feed([]byte(";1M"), now)
	if len(evs) != 1 || evs[0].Type != EventMouseButtonDown {
		t.Fatalf("completed = %+v, want button down", evs)
	}
}

func TestResetKeyInputReleasesHeldKeys(t *testing.T) {
	s := newStream()
	s.Feed([]byte("d "), time.Unix(0, 0))
	evs := ResetKeyInput(s)
	if len(evs) != 2 {
		t.Fatalf("reset = %+v, want 2 key ups", evs)
	}
	for _, e := range evs {
		if e.Type != EventKeyUp {
			t.Fatalf("reset event %+v is not a key up", e)
		}
	}
}

func TestReadEventsQuitsOnClosedReader(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("s")))
	deadline := time.Now().Add(time.Second)
	var seen []Event
	for time.Now().Before(deadline) {
		seen = append(seen, ReadEvents(s, time.Unix(0, 0))...)
		if len(seen) > 0 && seen[len(seen)-1].Type == EventQuit {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if len(seen) < 2 || seen[0] != (Event{Type: EventKeyDown, Key: KeyS}) || seen[len(seen)-1].Type != EventQuit {
		t.Fatalf("events = %+v, want KeyDown S ... Quit", seen)
	}
}
