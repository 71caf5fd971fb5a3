// Package catalog serves resources straight from a plan with the same
// contract as the generated accessor: Get(key) returns the bytes of the
// resource registered under key, or a *NotFoundError naming the key.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"resource-bundler/internal/match"
	"resource-bundler/internal/plan"
)

// ErrResourceNotFound matches every *NotFoundError via errors.Is.
var ErrResourceNotFound = errors.New("resource does not exist")

const suggestionLimit = 3

// NotFoundError reports a key with no registered resource.
type NotFoundError struct {
	Key string
	// Suggestions lists registered keys similar to Key, best first.
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := "resource does not exist: " + e.Key
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}

	return msg
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrResourceNotFound
}

// Catalog is a key-indexed view of a plan.
type Catalog struct {
	plan *plan.Plan
}

// New wraps p.
func New(p *plan.Plan) *Catalog {
	return &Catalog{plan: p}
}

// Keys returns the registered keys in plan order.
func (c *Catalog) Keys() []string {
	return c.plan.Keys()
}

// Entry returns the plan entry registered under key.
func (c *Catalog) Entry(key string) (plan.Entry, error) {
	e, ok := c.plan.Lookup(key)
	if !ok {
		return plan.Entry{}, &NotFoundError{
			Key:         key,
			Suggestions: match.SuggestKeys(key, c.plan.Keys(), suggestionLimit),
		}
	}

	return e, nil
}

// Get reads the resource registered under key.
func (c *Catalog) Get(key string) ([]byte, error) {
	e, err := c.Entry(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(e.Resource.Path)
	if err != nil {
		return nil, fmt.Errorf("reading resource %s: %w", e.Resource.RelPath, err)
	}

	return data, nil
}
