// Package uid provides ID generators behind small interfaces so callers can
// swap implementations in tests.
package uid

// NumberID generates int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
