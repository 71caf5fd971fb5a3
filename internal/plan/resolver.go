package plan

import (
	"fmt"
	"strconv"

	"resource-bundler/internal/diagnostic"
	"resource-bundler/internal/discover"
	"resource-bundler/internal/sanitize"
)

// Config holds planner configuration.
type Config struct {
	// Collisions selects the collision policy.
	Collisions CollisionPolicy
	// SymbolPrefix is prepended to each key to form the generated symbol.
	SymbolPrefix string
}

// DefaultConfig returns the default planner configuration.
func DefaultConfig() Config {
	return Config{
		Collisions:   CollisionReject,
		SymbolPrefix: "res_",
	}
}

// Resolver turns discovered resources into a Plan.
type Resolver struct {
	config Config
}

// NewResolver creates a new Resolver.
func NewResolver(config Config) *Resolver {
	return &Resolver{config: config}
}

// Resolve assigns a key and symbol to every resource, preserving order.
// Under CollisionReject a shared key fails the whole plan.
func (r *Resolver) Resolve(resources []discover.Resource) (*Plan, error) {
	p := &Plan{Entries: make([]Entry, 0, len(resources))}

	if len(resources) == 0 {
		p.Diagnostics.AddInfo(diagnostic.CodeNoResources, "resource root contains no resources", "")
	}

	natural := make([]string, len(resources))
	groups := make(map[string][]string, len(resources))

	var order []string

	for i, res := range resources {
		key := sanitize.Sanitize(res.RelPath)
		natural[i] = key

		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}

		groups[key] = append(groups[key], res.RelPath)

		if res.Size == 0 {
			p.Diagnostics.AddInfo(diagnostic.CodeEmptyResource, "resource is empty", key, res.RelPath)
		}
	}

	var collisions []Collision

	for _, key := range order {
		if paths := groups[key]; len(paths) > 1 {
			collisions = append(collisions, Collision{Key: key, Paths: paths})
		}
	}

	if len(collisions) > 0 && r.config.Collisions == CollisionReject {
		for _, c := range collisions {
			p.Diagnostics.AddError(diagnostic.CodeKeyCollision,
				"multiple resources sanitize to the same identifier", c.Key, c.Paths...)
		}

		return p, &CollisionError{Collisions: collisions}
	}

	taken := make(map[string]bool, len(resources))

	for i, res := range resources {
		key := natural[i]

		if taken[key] {
			renamed := r.disambiguate(key, groups, taken)
			p.Diagnostics.AddWarning(diagnostic.CodeKeyDisambiguated,
				fmt.Sprintf("identifier %s already used; registered as %s", key, renamed),
				renamed, res.RelPath)
			key = renamed
		}

		taken[key] = true

		p.Entries = append(p.Entries, Entry{
			Resource: res,
			Key:      key,
			Symbol:   r.config.SymbolPrefix + key,
		})
	}

	return p, nil
}

// disambiguate picks the first key_N (N >= 2) that is neither assigned nor
// the natural key of any resource, so unrelated resources keep their keys.
func (r *Resolver) disambiguate(key string, natural map[string][]string, taken map[string]bool) string {
	for n := 2; ; n++ {
		candidate := key + "_" + strconv.Itoa(n)
		if taken[candidate] {
			continue
		}

		if _, ok := natural[candidate]; ok {
			continue
		}

		return candidate
	}
}
