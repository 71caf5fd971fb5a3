// Package gen renders a resource plan into an artifact pair: a
// declaration unit and a definition unit that together embed every
// resource and expose Get(key).
//
// Generation approach uses text/template for the fixed parts of each unit
// and streams resource bytes through the emit package, so memory use does
// not grow with resource size. Go output is gofmt-clean.
//
// Targets:
//   - go: two files of one Go package, importing nothing
//   - cpp: a header with a non-instantiable class and its source file
//
// Both units are written to temporary siblings and renamed into place
// only after both are complete; a failed run leaves the previous pair
// untouched.
package gen
