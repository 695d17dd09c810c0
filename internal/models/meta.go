package models

// CallPath records which execution path produced a result. Useful for tests
// and diagnostics; callers do not need it for correctness.
type CallPath string

const (
	// PathDirect is a plain single-endpoint call.
	PathDirect CallPath = "direct"
	// PathCombined means the combined endpoint answered with everything in
	// one round trip.
	PathCombined CallPath = "combined"
	// PathMerged means the combined endpoint answered but ignored one or
	// more include flags, and the missing pieces were fetched separately
	// and merged in.
	PathMerged CallPath = "merged"
	// PathDecomposed means the combined endpoint was unavailable and the
	// operation was performed as the equivalent sequence of individual
	// calls.
	PathDecomposed CallPath = "decomposed"
)

// CallMeta describes how a result was obtained.
type CallMeta struct {
	FromCache bool     `json:"-"`
	Path      CallPath `json:"-"`
}
