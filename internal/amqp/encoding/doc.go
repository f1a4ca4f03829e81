// Package encoding owns the AMQP 1.0 primitive wire codecs.
//
// Ownership boundary:
// - format codes and fixed widths
// - format code and count readers
// - the symbol codec (scalar and array element forms)
// - the format-code keyed dispatch table and the array envelope
package encoding
