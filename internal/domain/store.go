package domain

// ReviewStore is the canonical owner of the in-memory review collection.
// Consumers operate on snapshots, without any knowledge of how the
// collection is guarded or where it was loaded from.
type ReviewStore interface {
	// Snapshot returns the full collection in load order as an independent
	// copy; later mutations never alter a value a caller already observed.
	Snapshot() []Review

	// Apply applies a single mutation to the review with the given id and
	// returns the new full snapshot. An unknown id is a no-op that still
	// returns the (unchanged) snapshot; callers detect it by observing no
	// change, not by an error.
	Apply(id int, m Mutation) []Review
}
