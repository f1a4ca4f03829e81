package encoding

import "errors"

var (
	ErrInvalidFormatCode = errors.New("encoding: invalid format code")
	ErrInvalidLength     = errors.New("encoding: invalid length")
	ErrNonASCII          = errors.New("encoding: non-ascii symbol content")
	ErrNullArrayElement  = errors.New("encoding: null array element")
	ErrTypeMismatch      = errors.New("encoding: value type mismatch")
)
