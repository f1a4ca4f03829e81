package inspect

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/danmuck/amqpsym/internal/amqp/buffer"
	"github.com/danmuck/amqpsym/internal/amqp/encoding"
	"github.com/danmuck/amqpsym/internal/observability"
)

const (
	OpEncode      = "encode"
	OpEncodeArray = "encode_array"
	OpDecode      = "decode"
)

// EncodeRequest carries symbols to encode. A JSON null entry is the null
// symbol. Array selects the array envelope instead of a run of scalars.
type EncodeRequest struct {
	Symbols []*string `json:"symbols"`
	Array   bool      `json:"array"`
}

type EncodeResult struct {
	Hex  string `json:"hex"`
	Size int    `json:"size"`
}

type DecodeRequest struct {
	Hex string `json:"hex"`
}

// DecodeResult holds one entry per top-level value: a string, nil for null,
// or a []string for a symbol array.
type DecodeResult struct {
	Values   []any `json:"values"`
	Consumed int   `json:"consumed"`
}

// Codec is the HTTP-independent half of the service.
type Codec struct {
	symbols  encoding.SymbolCodec
	registry *encoding.Registry
}

func NewCodec(policy encoding.ASCIIPolicy) *Codec {
	return &Codec{
		symbols:  encoding.SymbolCodec{Policy: policy},
		registry: encoding.RegistryWithPolicy(policy),
	}
}

func (c *Codec) Encode(req EncodeRequest) (EncodeResult, error) {
	syms := make([]encoding.Symbol, len(req.Symbols))
	for i, s := range req.Symbols {
		if s != nil {
			syms[i] = encoding.NewSymbol(*s)
		}
	}

	buf := buffer.New(0)
	op := OpEncode
	var err error
	if req.Array {
		op = OpEncodeArray
		err = encoding.WriteArray(buf, c.symbols, syms, len(syms))
	} else {
		for _, sym := range syms {
			if err = c.symbols.Encode(sym, buf); err != nil {
				break
			}
		}
	}
	observability.RecordCodec(op, buf.Len(), err)
	if err != nil {
		return EncodeResult{}, err
	}
	return EncodeResult{Hex: hex.EncodeToString(buf.Bytes()), Size: buf.Len()}, nil
}

func (c *Codec) DecodeHex(raw string) (DecodeResult, error) {
	data, err := hex.DecodeString(strings.Join(strings.Fields(raw), ""))
	if err != nil {
		return DecodeResult{}, fmt.Errorf("invalid hex: %w", err)
	}
	return c.Decode(data)
}

func (c *Codec) Decode(data []byte) (DecodeResult, error) {
	buf := buffer.Wrap(data)
	values, err := encoding.DecodeValues(buf, c.registry)
	observability.RecordCodec(OpDecode, buf.Offset(), err)
	if err != nil {
		return DecodeResult{}, err
	}
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, presentValue(v))
	}
	return DecodeResult{Values: out, Consumed: buf.Offset()}, nil
}

func presentValue(v any) any {
	switch t := v.(type) {
	case encoding.Symbol:
		if s, ok := t.Value(); ok {
			return s
		}
		return nil
	case []encoding.Symbol:
		out := make([]string, len(t))
		for i, sym := range t {
			out[i] = sym.String()
		}
		return out
	default:
		return v
	}
}
