package encoding

import (
	"fmt"

	"github.com/danmuck/amqpsym/internal/amqp/buffer"
)

// Array envelope:
//
//	[array8][size:u8][count:u8][elem code][elements]
//	[array32][size:u32][count:u32][elem code][elements]
//
// size counts every byte after the size field. Elements carry no format code
// and each one is prefixed by a four byte count.

type arrayLayout struct {
	code  FormatCode
	width int
	size  int
}

func layoutArray(enc Encoding, values any, count int) (arrayLayout, error) {
	if count < 0 {
		return arrayLayout{}, fmt.Errorf("%w: count %d", ErrInvalidLength, count)
	}
	content, err := enc.ArraySize(values)
	if err != nil {
		return arrayLayout{}, err
	}
	elements := content + count*FixedWidthUInt
	small := FixedWidthUByte + FixedWidthFormatCode + elements
	if count <= maxShortSize && small <= maxShortSize {
		return arrayLayout{code: FormatCodeArray8, width: FixedWidthUByte, size: small}, nil
	}
	large := FixedWidthUInt + FixedWidthFormatCode + elements
	if uint64(large) > uint64(^uint32(0)) {
		return arrayLayout{}, fmt.Errorf("%w: array body %d bytes", ErrInvalidLength, large)
	}
	return arrayLayout{code: FormatCodeArray32, width: FixedWidthUInt, size: large}, nil
}

// ArrayEncodeSize is the full wire size of values encoded as an array.
func ArrayEncodeSize(enc Encoding, values any, count int) (int, error) {
	l, err := layoutArray(enc, values, count)
	if err != nil {
		return 0, err
	}
	return FixedWidthFormatCode + l.width + l.size, nil
}

// WriteArray writes count values of enc as one array.
func WriteArray(buf *buffer.Buffer, enc Encoding, values any, count int) error {
	l, err := layoutArray(enc, values, count)
	if err != nil {
		return err
	}
	buf.WriteUint8(uint8(l.code))
	if l.width == FixedWidthUByte {
		buf.WriteUint8(uint8(l.size))
		buf.WriteUint8(uint8(count))
	} else {
		buf.WriteUint32(uint32(l.size))
		buf.WriteUint32(uint32(count))
	}
	buf.WriteUint8(uint8(enc.FormatCode()))
	return enc.EncodeArray(values, buf)
}

// ReadArray reads an array, format code included, and decodes its elements
// with the encoding registered for the element code.
func ReadArray(buf *buffer.Buffer, reg *Registry) (any, error) {
	code, err := ReadFormatCode(buf)
	if err != nil {
		return nil, err
	}
	return readArrayBody(buf, code, reg)
}

func readArrayBody(buf *buffer.Buffer, code FormatCode, reg *Registry) (any, error) {
	size, err := ReadCount(buf, code, FormatCodeArray8, FormatCodeArray32)
	if err != nil {
		return nil, err
	}
	if _, err := buf.Peek(size); err != nil {
		return nil, err
	}
	start := buf.Offset()
	count, err := ReadCount(buf, code, FormatCodeArray8, FormatCodeArray32)
	if err != nil {
		return nil, err
	}
	elemCode, err := ReadFormatCode(buf)
	if err != nil {
		return nil, err
	}
	enc, ok := reg.Lookup(elemCode)
	if !ok {
		return nil, invalidCode(elemCode)
	}
	values, err := enc.DecodeArray(buf, count, elemCode)
	if err != nil {
		return nil, err
	}
	if consumed := buf.Offset() - start; consumed != size {
		return nil, fmt.Errorf("%w: array declared %d bytes, read %d", ErrInvalidLength, size, consumed)
	}
	return values, nil
}

// WriteSymbolArray writes syms as a symbol array using the legacy policy.
func WriteSymbolArray(buf *buffer.Buffer, syms []Symbol) error {
	return WriteArray(buf, defaultSymbolCodec, syms, len(syms))
}

func SymbolArrayEncodeSize(syms []Symbol) (int, error) {
	return ArrayEncodeSize(defaultSymbolCodec, syms, len(syms))
}

// ReadSymbolArray reads an array and requires symbol elements.
func ReadSymbolArray(buf *buffer.Buffer) ([]Symbol, error) {
	v, err := ReadArray(buf, DefaultRegistry())
	if err != nil {
		return nil, err
	}
	syms, ok := v.([]Symbol)
	if !ok {
		return nil, fmt.Errorf("%w: array of %T", ErrTypeMismatch, v)
	}
	return syms, nil
}
