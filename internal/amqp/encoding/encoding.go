package encoding

import (
	"fmt"

	"github.com/danmuck/amqpsym/internal/amqp/buffer"
)

// Encoding is the capability every primitive codec exposes so a format code
// keyed table can treat them interchangeably. arrayEncoding selects the
// element form used inside an array body.
type Encoding interface {
	// FormatCode is the code written in front of array elements.
	FormatCode() FormatCode
	ObjectSize(v any, arrayEncoding bool) (int, error)
	EncodeObject(v any, arrayEncoding bool, buf *buffer.Buffer) error
	DecodeObject(buf *buffer.Buffer, code FormatCode) (any, error)
	ArraySize(v any) (int, error)
	EncodeArray(v any, buf *buffer.Buffer) error
	DecodeArray(buf *buffer.Buffer, count int, code FormatCode) (any, error)
}

func (c SymbolCodec) FormatCode() FormatCode {
	return FormatCodeSymbol32
}

func (c SymbolCodec) ObjectSize(v any, arrayEncoding bool) (int, error) {
	sym, err := asSymbol(v)
	if err != nil {
		return 0, err
	}
	if !arrayEncoding {
		return c.EncodeSize(sym), nil
	}
	if sym.IsNull() {
		return 0, ErrNullArrayElement
	}
	return FixedWidthUInt + c.ValueSize(sym), nil
}

func (c SymbolCodec) EncodeObject(v any, arrayEncoding bool, buf *buffer.Buffer) error {
	sym, err := asSymbol(v)
	if err != nil {
		return err
	}
	if !arrayEncoding {
		return c.Encode(sym, buf)
	}
	return c.EncodeElements([]Symbol{sym}, buf)
}

func (c SymbolCodec) DecodeObject(buf *buffer.Buffer, code FormatCode) (any, error) {
	sym, err := c.DecodeWithCode(buf, code)
	if err != nil {
		return nil, err
	}
	return sym, nil
}

func (c SymbolCodec) ArraySize(v any) (int, error) {
	syms, err := asSymbols(v)
	if err != nil {
		return 0, err
	}
	return c.ElementsSize(syms)
}

func (c SymbolCodec) EncodeArray(v any, buf *buffer.Buffer) error {
	syms, err := asSymbols(v)
	if err != nil {
		return err
	}
	return c.EncodeElements(syms, buf)
}

func (c SymbolCodec) DecodeArray(buf *buffer.Buffer, count int, code FormatCode) (any, error) {
	syms, err := c.DecodeElements(buf, count, code)
	if err != nil {
		return nil, err
	}
	return syms, nil
}

func asSymbol(v any) (Symbol, error) {
	switch s := v.(type) {
	case Symbol:
		return s, nil
	case *Symbol:
		if s == nil {
			return NullSymbol(), nil
		}
		return *s, nil
	case nil:
		return NullSymbol(), nil
	default:
		return Symbol{}, fmt.Errorf("%w: %T is not a symbol", ErrTypeMismatch, v)
	}
}

func asSymbols(v any) ([]Symbol, error) {
	switch s := v.(type) {
	case []Symbol:
		return s, nil
	case []string:
		return Symbols(s...), nil
	default:
		return nil, fmt.Errorf("%w: %T is not a symbol slice", ErrTypeMismatch, v)
	}
}

// Registry maps format codes to the encoding that decodes them.
type Registry struct {
	byCode map[FormatCode]Encoding
}

func NewRegistry() *Registry {
	return &Registry{byCode: make(map[FormatCode]Encoding)}
}

// DefaultRegistry serves the symbol codes with the legacy ASCII policy.
func DefaultRegistry() *Registry {
	return RegistryWithPolicy(ASCIILegacy)
}

func RegistryWithPolicy(policy ASCIIPolicy) *Registry {
	r := NewRegistry()
	r.Register(SymbolCodec{Policy: policy}, FormatCodeSymbol8, FormatCodeSymbol32)
	return r
}

// Register binds enc to each code, replacing earlier bindings.
func (r *Registry) Register(enc Encoding, codes ...FormatCode) {
	for _, code := range codes {
		r.byCode[code] = enc
	}
}

func (r *Registry) Lookup(code FormatCode) (Encoding, bool) {
	enc, ok := r.byCode[code]
	return enc, ok
}
