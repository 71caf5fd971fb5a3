// Package emit writes resource bytes as integer-literal array initializers.
//
// Output is one line per ValuesPerLine bytes, each value followed by a
// comma, every line prefixed with the configured indent:
//
//	\t0, 127, -128, -1,
//
// The same text is a valid initializer body in Go composite literals and
// C++ brace-initializers. How a byte maps to a literal is fixed by the
// Signedness of the generated element type.
package emit
