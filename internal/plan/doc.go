// Package plan resolves the discovered resources into the ordered list of
// bundle entries that both the staleness check and code generation consume.
//
// Each resource is sanitized exactly once; the resulting key is reused for
// the generated symbol name and the lookup-table entry.
//
// # Collisions
//
// Sanitization is lossy, so two paths can share a key. The planner never
// lets that through silently:
//
//   - CollisionReject (default) fails the plan with a *CollisionError
//   - CollisionSuffix keeps the first path's key and renames later ones
//     to key_2, key_3, ... in discovery order, recording a warning
package plan
