package tape

import (
	"bytes"
	"testing"
)

func newTestTape(data string) *Tape {
	return New(bytes.NewReader([]byte(data)), int64(len(data)))
}

func TestTopBottom(t *testing.T) {
	tp := newTestTape("0123456789")

	tp.Top()
	if got := tp.GetSeek(); got != 0 {
		t.Fatalf("Top: GetSeek() = %d, want 0", got)
	}
	if got := tp.GetForward(); got != Forward {
		t.Fatalf("Top: GetForward() = %v, want Forward", got)
	}

	tp.Bottom()
	if got := tp.GetSeek(); got != 10 {
		t.Fatalf("Bottom: GetSeek() = %d, want 10", got)
	}
	if got := tp.GetForward(); got != Backward {
		t.Fatalf("Bottom: GetForward() = %v, want Backward", got)
	}
}

func TestSeekBounds(t *testing.T) {
	tp := newTestTape("0123456789")

	if err := tp.Seek(5); err != nil {
		t.Fatalf("Seek(5): %v", err)
	}
	if got := tp.GetSeek(); got != 5 {
		t.Fatalf("GetSeek() = %d, want 5", got)
	}

	if err := tp.Seek(-1); err == nil {
		t.Fatal("Seek(-1): want error")
	}
	if err := tp.Seek(11); err == nil {
		t.Fatal("Seek(11): want error")
	}
}

func TestGetForward(t *testing.T) {
	tp := newTestTape("0123456789")
	tp.Top()

	b, err := tp.Get(3)
	if err != nil {
		t.Fatalf("Get(3): %v", err)
	}
	if string(b) != "012" {
		t.Fatalf("Get(3) = %q, want %q", b, "012")
	}
	if got := tp.GetSeek(); got != 3 {
		t.Fatalf("GetSeek() after Get(3) = %d, want 3", got)
	}

	// Short read at EOF.
	if err := tp.Seek(8); err != nil {
		t.Fatal(err)
	}
	b, err = tp.Get(10)
	if err != nil {
		t.Fatalf("Get(10) near EOF: %v", err)
	}
	if string(b) != "89" {
		t.Fatalf("Get(10) near EOF = %q, want %q", b, "89")
	}
	if got := tp.GetSeek(); got != 10 {
		t.Fatalf("GetSeek() after short read = %d, want 10", got)
	}
}

func TestGetBackward(t *testing.T) {
	tp := newTestTape("0123456789")
	tp.Bottom()

	b, err := tp.Get(3)
	if err != nil {
		t.Fatalf("Get(3): %v", err)
	}
	if string(b) != "789" {
		t.Fatalf("Get(3) backward = %q, want %q", b, "789")
	}
	if got := tp.GetSeek(); got != 7 {
		t.Fatalf("GetSeek() after backward Get(3) = %d, want 7", got)
	}

	// Short read at BOF.
	if err := tp.Seek(2); err != nil {
		t.Fatal(err)
	}
	tp.Face(Backward)
	b, err = tp.Get(10)
	if err != nil {
		t.Fatalf("Get(10) near BOF: %v", err)
	}
	if string(b) != "01" {
		t.Fatalf("Get(10) near BOF = %q, want %q", b, "01")
	}
	if got := tp.GetSeek(); got != 0 {
		t.Fatalf("GetSeek() after short backward read = %d, want 0", got)
	}
}

func TestPeekDoesNotMove(t *testing.T) {
	tp := newTestTape("0123456789")
	tp.Top()

	b, err := tp.Peek(4)
	if err != nil {
		t.Fatalf("Peek(4): %v", err)
	}
	if string(b) != "0123" {
		t.Fatalf("Peek(4) = %q, want %q", b, "0123")
	}
	if got := tp.GetSeek(); got != 0 {
		t.Fatalf("GetSeek() after Peek = %d, want 0", got)
	}
}

func TestDiscard(t *testing.T) {
	tp := newTestTape("0123456789")
	tp.Top()

	if err := tp.Discard(4); err != nil {
		t.Fatalf("Discard(4): %v", err)
	}
	if got := tp.GetSeek(); got != 4 {
		t.Fatalf("GetSeek() after Discard(4) = %d, want 4", got)
	}

	b, err := tp.Get(2)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "45" {
		t.Fatalf("Get(2) after Discard = %q, want %q", b, "45")
	}
}
