// Package diagnostic provides structured warnings, errors, and notes
// collected while planning a resource bundle.
//
// Key capabilities:
//   - Identifier collision reports with every colliding path
//   - Disambiguation notices when a key is renamed
//   - Notes about skipped or empty resources
package diagnostic
