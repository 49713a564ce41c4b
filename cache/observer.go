package cache

// AdvisoryKind identifies the condition an Advisory reports.
type AdvisoryKind string

// AdvisoryUnstableKeySegment reports a key segment that appears to embed
// an identity-based representation, such as a memory address. A key built
// from such a segment will not match across process restarts, so the
// cache degrades to a per-run cache for that call.
const AdvisoryUnstableKeySegment AdvisoryKind = "unstable_key_segment"

// Advisory describes a non-fatal condition noticed while encoding a key.
// Advisories never alter behavior; they exist so callers can surface
// likely misuse through whatever logging facility they run.
type Advisory struct {
	Kind    AdvisoryKind
	Segment string
}

// Observer receives advisories from a KeyEncoder. A nil Observer is
// valid and discards them.
type Observer func(Advisory)
