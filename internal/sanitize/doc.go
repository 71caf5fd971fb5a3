// Package sanitize derives identifiers from resource paths.
//
// A resource's identifier doubles as its symbol-name suffix in generated
// code and as its runtime lookup key, so both must come from the same
// call to Sanitize.
package sanitize
