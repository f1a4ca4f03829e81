package encoding

import (
	"fmt"

	"github.com/danmuck/amqpsym/internal/amqp/buffer"
)

// FormatCode is the leading byte of an encoded AMQP value.
type FormatCode uint8

const (
	FormatCodeNull     FormatCode = 0x40
	FormatCodeSymbol8  FormatCode = 0xa3
	FormatCodeSymbol32 FormatCode = 0xb3
	FormatCodeArray8   FormatCode = 0xe0
	FormatCodeArray32  FormatCode = 0xf0
)

// Fixed widths in bytes.
const (
	FixedWidthFormatCode  = 1
	FixedWidthUByte       = 1
	FixedWidthUInt        = 4
	FixedWidthNullEncoded = 1
)

const maxShortSize = 0xff

func (c FormatCode) String() string {
	switch c {
	case FormatCodeNull:
		return "null"
	case FormatCodeSymbol8:
		return "sym8"
	case FormatCodeSymbol32:
		return "sym32"
	case FormatCodeArray8:
		return "array8"
	case FormatCodeArray32:
		return "array32"
	default:
		return fmt.Sprintf("0x%02x", uint8(c))
	}
}

// EncodeWidthBySize picks the count width for a value of size bytes.
// 255 is the last size that fits the one byte form.
func EncodeWidthBySize(size int) int {
	if size <= maxShortSize {
		return FixedWidthUByte
	}
	return FixedWidthUInt
}

func EncodeNull(buf *buffer.Buffer) {
	buf.WriteUint8(uint8(FormatCodeNull))
}

// ReadFormatCode consumes one format code byte.
func ReadFormatCode(buf *buffer.Buffer) (FormatCode, error) {
	b, err := buf.ReadUint8()
	if err != nil {
		return 0, err
	}
	return FormatCode(b), nil
}

// ReadCount reads the count that follows code. code8 selects a one byte
// count and code32 a four byte count; any other code is rejected before a
// byte is consumed.
func ReadCount(buf *buffer.Buffer, code, code8, code32 FormatCode) (int, error) {
	switch code {
	case code8:
		v, err := buf.ReadUint8()
		if err != nil {
			return 0, err
		}
		return int(v), nil
	case code32:
		v, err := buf.ReadUint32()
		if err != nil {
			return 0, err
		}
		if uint64(v) > uint64(maxInt) {
			return 0, fmt.Errorf("%w: count %d", ErrInvalidLength, v)
		}
		return int(v), nil
	default:
		return 0, invalidCode(code)
	}
}

const maxInt = int(^uint(0) >> 1)

func invalidCode(code FormatCode) error {
	return fmt.Errorf("%w: %s", ErrInvalidFormatCode, code)
}
