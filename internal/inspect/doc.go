// Package inspect serves the symbol codec over HTTP for debugging peers:
// callers post symbols to see their wire bytes, or post wire bytes to see
// the values they carry.
package inspect
