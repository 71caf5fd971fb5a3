package plan

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"

	"resource-bundler/internal/diagnostic"
	"resource-bundler/internal/discover"
)

// Entry is one resource as it appears in the generated artifacts.
type Entry struct {
	Resource discover.Resource
	// Key is the runtime lookup key, Sanitize(Resource.RelPath) unless renamed.
	Key string
	// Symbol is the generated constant's name: SymbolPrefix + Key.
	Symbol string
}

// Plan is the ordered set of entries for one generation run.
type Plan struct {
	Entries     []Entry
	Diagnostics diagnostic.Diagnostics
}

// Keys returns the entry keys in plan order.
func (p *Plan) Keys() []string {
	keys := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		keys[i] = e.Key
	}

	return keys
}

// Resources returns the entry resources in plan order.
func (p *Plan) Resources() []discover.Resource {
	resources := make([]discover.Resource, len(p.Entries))
	for i, e := range p.Entries {
		resources[i] = e.Resource
	}

	return resources
}

// Lookup returns the entry registered under key.
func (p *Plan) Lookup(key string) (Entry, bool) {
	for _, e := range p.Entries {
		if e.Key == key {
			return e, true
		}
	}

	return Entry{}, false
}

// Digest identifies the resource set of the plan.
func (p *Plan) Digest() string {
	return ResourceSetDigest(discover.RelPaths(p.Resources()))
}

// DigestMarker precedes the resource-set digest in the header comment of
// generated artifacts: "// resource-set: <hex>".
const DigestMarker = "resource-set: "

// ResourceSetDigest returns the hex BLAKE3 digest of the ordered relative
// paths. Adding, removing, or renaming a resource changes it; editing a
// resource's contents does not.
func ResourceSetDigest(relPaths []string) string {
	h := blake3.New()
	for _, p := range relPaths {
		_, _ = h.WriteString(p)
		_, _ = h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}

//go:generate go tool stringer -type=CollisionPolicy -linecomment -output=collisionpolicy_string.go

// CollisionPolicy decides what happens when two paths share a key.
type CollisionPolicy int

const (
	CollisionReject CollisionPolicy = iota // reject
	CollisionSuffix                        // suffix
)

// ParseCollisionPolicy parses a configuration name ("reject" or "suffix").
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	for policy := CollisionReject; policy <= CollisionSuffix; policy++ {
		if strings.EqualFold(strings.TrimSpace(s), policy.String()) {
			return policy, nil
		}
	}

	return 0, fmt.Errorf("unknown collision policy %q (want reject or suffix)", s)
}

// Collision groups the paths that sanitize to one key.
type Collision struct {
	Key   string
	Paths []string
}

// CollisionError reports keys shared by more than one resource.
type CollisionError struct {
	Collisions []Collision
}

func (e *CollisionError) Error() string {
	parts := make([]string, len(e.Collisions))
	for i, c := range e.Collisions {
		parts[i] = fmt.Sprintf("%s <- %s", c.Key, strings.Join(c.Paths, ", "))
	}

	return "resource identifier collision: " + strings.Join(parts, "; ")
}
