package buffer

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	b := New(0)
	b.WriteUint8(0xa3)
	b.WriteUint32(0x01020304)
	b.WriteBytes([]byte("abc"))

	want := []byte{0xa3, 0x01, 0x02, 0x03, 0x04, 'a', 'b', 'c'}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("bytes mismatch: got %x want %x", b.Bytes(), want)
	}

	u8, err := b.ReadUint8()
	if err != nil || u8 != 0xa3 {
		t.Fatalf("read u8: %x %v", u8, err)
	}
	u32, err := b.ReadUint32()
	if err != nil || u32 != 0x01020304 {
		t.Fatalf("read u32: %x %v", u32, err)
	}
	p, err := b.Peek(3)
	if err != nil || string(p) != "abc" {
		t.Fatalf("peek: %q %v", p, err)
	}
	if b.Offset() != 5 {
		t.Fatalf("peek moved cursor: offset=%d", b.Offset())
	}
	if err := b.Complete(3); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if b.Len() != 0 || b.Offset() != 8 {
		t.Fatalf("expected drained buffer, len=%d offset=%d", b.Len(), b.Offset())
	}
}

func TestUnderrunDoesNotMoveCursor(t *testing.T) {
	b := Wrap([]byte{0, 0, 1})
	if _, err := b.ReadUint32(); !errors.Is(err, ErrBufferUnderrun) {
		t.Fatalf("expected ErrBufferUnderrun, got %v", err)
	}
	if err := b.Complete(4); !errors.Is(err, ErrBufferUnderrun) {
		t.Fatalf("expected ErrBufferUnderrun, got %v", err)
	}
	if _, err := b.Peek(4); !errors.Is(err, ErrBufferUnderrun) {
		t.Fatalf("expected ErrBufferUnderrun, got %v", err)
	}
	if b.Offset() != 0 || b.Len() != 3 {
		t.Fatalf("cursor moved on failure: offset=%d len=%d", b.Offset(), b.Len())
	}
	if _, err := New(0).ReadUint8(); !errors.Is(err, ErrBufferUnderrun) {
		t.Fatalf("expected ErrBufferUnderrun on empty buffer, got %v", err)
	}
}

func TestNegativeLengthsRejected(t *testing.T) {
	b := Wrap([]byte{1})
	if err := b.Complete(-1); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
	if _, err := b.Peek(-1); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestArrayKeepsConsumedBytes(t *testing.T) {
	b := New(4)
	b.WriteBytes([]byte{1, 2, 3})
	if _, err := b.ReadUint8(); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(b.Array(), []byte{1, 2, 3}) {
		t.Fatalf("array mismatch: %x", b.Array())
	}
	if !bytes.Equal(b.Array()[b.Offset():], b.Bytes()) {
		t.Fatalf("offset does not index Array")
	}
	b.Reset()
	if b.Len() != 0 || b.Offset() != 0 {
		t.Fatalf("reset left state: len=%d offset=%d", b.Len(), b.Offset())
	}
}
