package encoding

import "github.com/danmuck/amqpsym/internal/amqp/buffer"

// DecodeValue reads one encoded value. Null decodes to nil, arrays to the
// element codec's slice type, and scalars through the registry.
func DecodeValue(buf *buffer.Buffer, reg *Registry) (any, error) {
	code, err := ReadFormatCode(buf)
	if err != nil {
		return nil, err
	}
	switch code {
	case FormatCodeNull:
		return nil, nil
	case FormatCodeArray8, FormatCodeArray32:
		return readArrayBody(buf, code, reg)
	}
	enc, ok := reg.Lookup(code)
	if !ok {
		return nil, invalidCode(code)
	}
	return enc.DecodeObject(buf, code)
}

// DecodeValues decodes values until buf is drained.
func DecodeValues(buf *buffer.Buffer, reg *Registry) ([]any, error) {
	var out []any
	for buf.Len() > 0 {
		v, err := DecodeValue(buf, reg)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
