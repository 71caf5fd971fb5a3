package stale

//go:generate go tool stringer -type=Reason -linecomment -output=reason_string.go

// Reason explains a staleness decision.
type Reason int

const (
	ReasonFresh              Reason = iota // fresh
	ReasonMissingArtifact                  // missing artifact
	ReasonResourceNewer                    // resource newer
	ReasonResourceSetChanged               // resource set changed
	ReasonForced                           // forced
)
