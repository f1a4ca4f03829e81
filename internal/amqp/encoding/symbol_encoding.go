package encoding

import (
	"fmt"

	"github.com/danmuck/amqpsym/internal/amqp/buffer"
)

// AbsentSize is the value size reported for the null symbol. It feeds header
// arithmetic and is never a byte count.
const AbsentSize = -1

// SymbolCodec encodes and decodes symbols under one ASCII policy. The zero
// value uses ASCIILegacy.
type SymbolCodec struct {
	Policy ASCIIPolicy
}

var _ Encoding = SymbolCodec{}

var defaultSymbolCodec = SymbolCodec{Policy: ASCIILegacy}

// ValueSize returns the raw content length, or AbsentSize for null.
func (c SymbolCodec) ValueSize(sym Symbol) int {
	if sym.IsNull() {
		return AbsentSize
	}
	return asciiByteCount(sym.value)
}

// EncodeSize returns the full wire size: format code, count and content.
func (c SymbolCodec) EncodeSize(sym Symbol) int {
	if sym.IsNull() {
		return FixedWidthNullEncoded
	}
	size := c.ValueSize(sym)
	return FixedWidthFormatCode + EncodeWidthBySize(size) + size
}

func (c SymbolCodec) Encode(sym Symbol, buf *buffer.Buffer) error {
	if sym.IsNull() {
		EncodeNull(buf)
		return nil
	}
	data, err := c.Policy.appendASCII(nil, sym.value)
	if err != nil {
		return err
	}
	width := EncodeWidthBySize(len(data))
	if width == FixedWidthUByte {
		buf.WriteUint8(uint8(FormatCodeSymbol8))
	} else {
		buf.WriteUint8(uint8(FormatCodeSymbol32))
	}
	return writeCounted(buf, data, width)
}

// Decode reads the format code from buf and then the symbol it introduces.
func (c SymbolCodec) Decode(buf *buffer.Buffer) (Symbol, error) {
	code, err := ReadFormatCode(buf)
	if err != nil {
		return Symbol{}, err
	}
	return c.DecodeWithCode(buf, code)
}

// DecodeWithCode decodes a symbol whose format code has already been read,
// as in array bodies where one code covers every element.
func (c SymbolCodec) DecodeWithCode(buf *buffer.Buffer, code FormatCode) (Symbol, error) {
	if code == FormatCodeNull {
		return NullSymbol(), nil
	}
	count, err := ReadCount(buf, code, FormatCodeSymbol8, FormatCodeSymbol32)
	if err != nil {
		return Symbol{}, err
	}
	raw, err := buf.Peek(count)
	if err != nil {
		return Symbol{}, err
	}
	value, err := c.Policy.decodeASCII(raw)
	if err != nil {
		return Symbol{}, err
	}
	if err := buf.Complete(count); err != nil {
		return Symbol{}, err
	}
	return NewSymbol(value), nil
}

// ElementsSize sums the raw content length of every element. The four byte
// count in front of each element is accounted for by the array envelope.
// Elements EncodeElements would reject are rejected here too, so a caller
// sizing a header first writes nothing for a bad array.
func (c SymbolCodec) ElementsSize(syms []Symbol) (int, error) {
	if err := c.checkElements(syms); err != nil {
		return 0, err
	}
	size := 0
	for _, sym := range syms {
		size += asciiByteCount(sym.value)
	}
	return size, nil
}

func (c SymbolCodec) checkElements(syms []Symbol) error {
	for i, sym := range syms {
		if sym.IsNull() {
			return nullElement(i)
		}
		if c.Policy == ASCIIStrict && !isASCII(sym.value) {
			return fmt.Errorf("%w: element %d", ErrNonASCII, i)
		}
	}
	return nil
}

// EncodeElements writes each element as [len:u32][bytes]. Nothing is written
// when any element is rejected.
func (c SymbolCodec) EncodeElements(syms []Symbol, buf *buffer.Buffer) error {
	if err := c.checkElements(syms); err != nil {
		return err
	}

	var scratch []byte
	for _, sym := range syms {
		// appendASCII grows scratch only past the largest element so far.
		data, err := c.Policy.appendASCII(scratch[:0], sym.value)
		if err != nil {
			return err
		}
		scratch = data
		if err := writeCounted(buf, data, FixedWidthUInt); err != nil {
			return err
		}
	}
	return nil
}

// DecodeElements decodes count elements that share code. Null is not an
// element code: it consumes no bytes, so count would go unbounded.
func (c SymbolCodec) DecodeElements(buf *buffer.Buffer, count int, code FormatCode) ([]Symbol, error) {
	if code != FormatCodeSymbol8 && code != FormatCodeSymbol32 {
		return nil, invalidCode(code)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: count %d", ErrInvalidLength, count)
	}
	// every element occupies at least one byte, so the buffer bounds the
	// allocation for hostile counts
	out := make([]Symbol, 0, min(count, buf.Len()))
	for i := 0; i < count; i++ {
		sym, err := c.DecodeWithCode(buf, code)
		if err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, nil
}

// writeCounted writes len(data) in width bytes followed by data.
func writeCounted(buf *buffer.Buffer, data []byte, width int) error {
	switch width {
	case FixedWidthUByte:
		if len(data) > maxShortSize {
			return fmt.Errorf("%w: %d bytes in a one byte count", ErrInvalidLength, len(data))
		}
		buf.WriteUint8(uint8(len(data)))
	case FixedWidthUInt:
		if uint64(len(data)) > uint64(^uint32(0)) {
			return fmt.Errorf("%w: %d bytes in a four byte count", ErrInvalidLength, len(data))
		}
		buf.WriteUint32(uint32(len(data)))
	default:
		return fmt.Errorf("%w: count width %d", ErrInvalidLength, width)
	}
	buf.WriteBytes(data)
	return nil
}

func nullElement(i int) error {
	return fmt.Errorf("%w: element %d", ErrNullArrayElement, i)
}

// Package level helpers use the legacy ASCII policy.

func SymbolValueSize(sym Symbol) int {
	return defaultSymbolCodec.ValueSize(sym)
}

func SymbolEncodeSize(sym Symbol) int {
	return defaultSymbolCodec.EncodeSize(sym)
}

func EncodeSymbol(sym Symbol, buf *buffer.Buffer) error {
	return defaultSymbolCodec.Encode(sym, buf)
}

func DecodeSymbol(buf *buffer.Buffer) (Symbol, error) {
	return defaultSymbolCodec.Decode(buf)
}

func DecodeSymbolWithCode(buf *buffer.Buffer, code FormatCode) (Symbol, error) {
	return defaultSymbolCodec.DecodeWithCode(buf, code)
}

func SymbolArraySize(syms []Symbol) (int, error) {
	return defaultSymbolCodec.ElementsSize(syms)
}

func EncodeSymbolArray(syms []Symbol, buf *buffer.Buffer) error {
	return defaultSymbolCodec.EncodeElements(syms, buf)
}

func DecodeSymbolArray(buf *buffer.Buffer, count int, code FormatCode) ([]Symbol, error) {
	return defaultSymbolCodec.DecodeElements(buf, count, code)
}
