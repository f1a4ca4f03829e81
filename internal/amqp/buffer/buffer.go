// Package buffer provides the cursor-based byte buffer the AMQP codecs read
// from and write to.
//
// Writes append at the write cursor and grow the backing array. Reads consume
// from the read cursor and never move it past the write cursor.
package buffer

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrBufferUnderrun = errors.New("buffer: underrun")
	ErrInvalidLength  = errors.New("buffer: invalid length")
)

// Buffer is not safe for concurrent use.
type Buffer struct {
	buf   []byte
	read  int
	write int
}

func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Wrap returns a buffer whose readable region is b. b is not copied.
func Wrap(b []byte) *Buffer {
	return &Buffer{buf: b, write: len(b)}
}

// Offset is the read cursor position in Array.
func (b *Buffer) Offset() int {
	return b.read
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return b.write - b.read
}

// Bytes returns the unread region without copying.
func (b *Buffer) Bytes() []byte {
	return b.buf[b.read:b.write]
}

// Array returns everything written so far, including consumed bytes.
func (b *Buffer) Array() []byte {
	return b.buf[:b.write]
}

func (b *Buffer) WriteUint8(v uint8) {
	b.buf = append(b.buf[:b.write], v)
	b.write++
}

func (b *Buffer) WriteUint32(v uint32) {
	b.buf = binary.BigEndian.AppendUint32(b.buf[:b.write], v)
	b.write += 4
}

func (b *Buffer) WriteBytes(p []byte) {
	b.buf = append(b.buf[:b.write], p...)
	b.write += len(p)
}

func (b *Buffer) ReadUint8() (uint8, error) {
	if b.Len() < 1 {
		return 0, underrun(1, b.Len())
	}
	v := b.buf[b.read]
	b.read++
	return v, nil
}

func (b *Buffer) ReadUint32() (uint32, error) {
	if b.Len() < 4 {
		return 0, underrun(4, b.Len())
	}
	v := binary.BigEndian.Uint32(b.buf[b.read : b.read+4])
	b.read += 4
	return v, nil
}

// Peek returns the next n unread bytes without advancing the read cursor.
func (b *Buffer) Peek(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	if b.Len() < n {
		return nil, underrun(n, b.Len())
	}
	return b.buf[b.read : b.read+n], nil
}

// Complete advances the read cursor by n bytes after the caller has consumed
// them through Peek or Bytes.
func (b *Buffer) Complete(n int) error {
	if n < 0 {
		return ErrInvalidLength
	}
	if b.Len() < n {
		return underrun(n, b.Len())
	}
	b.read += n
	return nil
}

// Reset empties the buffer and keeps the backing array.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.read = 0
	b.write = 0
}

func underrun(want, have int) error {
	return fmt.Errorf("%w: need %d bytes, have %d", ErrBufferUnderrun, want, have)
}
