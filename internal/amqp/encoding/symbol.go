package encoding

// Symbol is an AMQP symbol value. The zero value is the null symbol, which
// is distinct from the empty symbol.
type Symbol struct {
	value   string
	present bool
}

func NewSymbol(s string) Symbol {
	return Symbol{value: s, present: true}
}

func NullSymbol() Symbol {
	return Symbol{}
}

func (s Symbol) IsNull() bool {
	return !s.present
}

// Value returns the content and false for the null symbol.
func (s Symbol) Value() (string, bool) {
	return s.value, s.present
}

func (s Symbol) String() string {
	if !s.present {
		return "<null>"
	}
	return s.value
}

func (s Symbol) Equal(other Symbol) bool {
	return s.present == other.present && s.value == other.value
}

// Symbols wraps each string as a non-null symbol.
func Symbols(values ...string) []Symbol {
	out := make([]Symbol, len(values))
	for i, v := range values {
		out[i] = NewSymbol(v)
	}
	return out
}
