// Package stale decides whether a generated artifact pair must be rebuilt.
//
// The check is timestamp based and whole-tree: one resource newer than the
// newest artifact forces regeneration of every resource. A resource that
// was removed leaves every remaining timestamp unchanged, so removals are
// only noticed when TrackRemovals compares the resource-set digest stored
// in the declaration unit.
package stale

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"resource-bundler/internal/discover"
	"resource-bundler/internal/plan"
)

// digestScanLines bounds how far into the declaration unit the digest is
// looked for.
const digestScanLines = 16

// Options configures an Oracle.
type Options struct {
	// Force makes every decision a regeneration.
	Force bool
	// TrackRemovals also regenerates when the recorded resource set
	// differs from the discovered one.
	TrackRemovals bool
}

// Decision is the outcome of a staleness check.
type Decision struct {
	Regenerate bool
	Reason     Reason
	// Trigger names what caused the decision: an artifact path or a
	// resource's relative path.
	Trigger string
}

// Oracle evaluates staleness for one artifact pair.
type Oracle struct {
	opts Options
}

// NewOracle creates a new Oracle.
func NewOracle(opts Options) *Oracle {
	return &Oracle{opts: opts}
}

// NeedsRegeneration decides whether the artifacts at declPath and defPath
// must be rebuilt from resources:
//  1. either artifact missing: regenerate, resources are not inspected
//  2. any resource modified after the newer artifact: regenerate
//  3. otherwise the artifacts are fresh
func (o *Oracle) NeedsRegeneration(declPath, defPath string, resources []discover.Resource) (Decision, error) {
	if o.opts.Force {
		return Decision{Regenerate: true, Reason: ReasonForced}, nil
	}

	latest := time.Time{}

	for _, path := range []string{declPath, defPath} {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return Decision{Regenerate: true, Reason: ReasonMissingArtifact, Trigger: path}, nil
		}

		if err != nil {
			return Decision{}, fmt.Errorf("stat artifact %s: %w", path, err)
		}

		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}

	for _, res := range resources {
		if res.ModTime.After(latest) {
			return Decision{Regenerate: true, Reason: ReasonResourceNewer, Trigger: res.RelPath}, nil
		}
	}

	if o.opts.TrackRemovals {
		recorded, err := ReadDigest(declPath)
		if err != nil {
			return Decision{}, err
		}

		if recorded != plan.ResourceSetDigest(discover.RelPaths(resources)) {
			return Decision{Regenerate: true, Reason: ReasonResourceSetChanged, Trigger: declPath}, nil
		}
	}

	return Decision{Reason: ReasonFresh}, nil
}

// NeedsRegeneration applies the default policy.
func NeedsRegeneration(declPath, defPath string, resources []discover.Resource) (bool, error) {
	d, err := NewOracle(Options{}).NeedsRegeneration(declPath, defPath, resources)

	return d.Regenerate, err
}

// ReadDigest returns the resource-set digest recorded in the header of a
// generated artifact, or "" when none is present.
func ReadDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("reading artifact header %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	for i := 0; i < digestScanLines && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "// "+plan.DigestMarker); ok {
			return strings.TrimSpace(rest), nil
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, bufio.ErrTooLong) {
		return "", fmt.Errorf("reading artifact header %s: %w", path, err)
	}

	return "", nil
}
