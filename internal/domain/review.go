package domain

import (
	"errors"
	"time"
)

// --- Domain Specific Errors ---

var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidInput indicates that the provided input data is invalid.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrCorpus indicates that the review corpus could not be loaded.
	// This is fatal at startup; reviews are never reloaded afterwards.
	ErrCorpus = errors.New("review corpus unreadable")
)

// Placeholder images used when no review for a listing carries a photo.
const (
	PlaceholderCardImage = "https://picsum.photos/id/1018/800/400"
	PlaceholderHeroImage = "https://picsum.photos/id/1018/1200/500"
)

// CategoryRating is a guest sub-score for one review category. Sub-scores are
// surfaced as-is and never aggregated by the service.
type CategoryRating struct {
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

// Review represents a single guest review for a rental listing.
//
// Identity and guest-authored fields are immutable for the lifetime of the
// process. Only Approved and Reply are mutable, through Mutation. Ratings are
// propagated exactly as loaded; values outside [0, 5] are not clamped.
type Review struct {
	ID          int              `json:"id"`
	ListingID   int              `json:"listingId"`
	ListingName string           `json:"listingName"`
	GuestName   string           `json:"guestName"`
	Rating      float64          `json:"rating"`
	Channel     string           `json:"channel"` // open-ended: "Airbnb", "Booking.com", ...
	SubmittedAt string           `json:"submittedAt"`
	Approved    bool             `json:"approved"`
	Categories  []CategoryRating `json:"categories"`
	Text        string           `json:"text"`
	Type        string           `json:"type"`
	Image       string           `json:"image,omitempty"`
	Reply       string           `json:"reply"` // empty means no reply has been written
}

// submittedAtLayouts are the timestamp shapes seen in review corpora. The
// Hostaway export uses "2006-01-02 15:04:05".
var submittedAtLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// SubmittedTime parses SubmittedAt for recency ordering. An unparseable
// timestamp yields the zero time so the review still sorts deterministically
// instead of failing the whole pipeline.
func (r Review) SubmittedTime() time.Time {
	for _, layout := range submittedAtLayouts {
		if t, err := time.Parse(layout, r.SubmittedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// --- Mutations ---

// MutationKind names the moderation operations a reviewer can apply.
type MutationKind string

const (
	MutationToggleApproved MutationKind = "toggle_approved"
	MutationSetReply       MutationKind = "set_reply"
)

// Mutation is an explicit, tagged moderation operation. Exactly one kind is
// applied per call; the kind is never inferred from field presence at this
// layer, the transport adapter resolves that before it gets here.
type Mutation struct {
	Kind  MutationKind
	Reply string // only meaningful for MutationSetReply; empty string is a valid reply value
}

// ToggleApproved flips the approval flag of a review. Applying it twice
// returns the review to its original state.
func ToggleApproved() Mutation {
	return Mutation{Kind: MutationToggleApproved}
}

// SetReply sets the operator reply to exactly value, including the empty
// string. Applying the same value twice is idempotent.
func SetReply(value string) Mutation {
	return Mutation{Kind: MutationSetReply, Reply: value}
}
