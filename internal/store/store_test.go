package store

import (
	"sync"
	"testing"

	"github.com/flexliving/reviews-service/internal/domain"
	"github.com/flexliving/reviews-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureReviews() []domain.Review {
	return []domain.Review{
		{
			ID:          1,
			ListingID:   101,
			ListingName: "29 Shoreditch Heights",
			GuestName:   "Shane",
			Rating:      5,
			Channel:     "Airbnb",
			SubmittedAt: "2024-08-21 22:45:14",
			Approved:    true,
			Categories:  []domain.CategoryRating{{Category: "cleanliness", Rating: 5}},
			Text:        "Amazing stay.",
			Type:        "guest-to-host",
		},
		{
			ID:          2,
			ListingID:   101,
			ListingName: "29 Shoreditch Heights",
			GuestName:   "Priya",
			Rating:      3,
			Channel:     "Booking.com",
			SubmittedAt: "2024-09-02 09:12:33",
			Approved:    false,
			Text:        "Decent but noisy.",
			Type:        "guest-to-host",
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(fixtureReviews(), logger.NewLogger())
}

func TestSnapshotPreservesLoadOrder(t *testing.T) {
	s := newTestStore(t)

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, 1, snapshot[0].ID)
	assert.Equal(t, 2, snapshot[1].ID)
}

func TestToggleApprovedIsSelfInverse(t *testing.T) {
	s := newTestStore(t)
	original := s.Snapshot()[0]

	after := s.Apply(1, domain.ToggleApproved())
	assert.Equal(t, !original.Approved, after[0].Approved)

	restored := s.Apply(1, domain.ToggleApproved())
	assert.Equal(t, original, restored[0])
}

func TestSetReplyIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	first := s.Apply(2, domain.SetReply("thanks for staying"))
	second := s.Apply(2, domain.SetReply("thanks for staying"))
	assert.Equal(t, first, second)
	assert.Equal(t, "thanks for staying", second[1].Reply)
}

func TestSetReplyAcceptsEmptyString(t *testing.T) {
	s := newTestStore(t)

	s.Apply(1, domain.SetReply("draft"))
	after := s.Apply(1, domain.SetReply(""))
	assert.Equal(t, "", after[0].Reply)
}

func TestUnknownIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	before := s.Snapshot()

	after := s.Apply(9999, domain.SetReply("nobody home"))
	assert.Equal(t, before, after)
	assert.Equal(t, before, s.Snapshot())
}

func TestMutationNeverTouchesImmutableFields(t *testing.T) {
	s := newTestStore(t)
	original := s.Snapshot()[0]

	after := s.Apply(1, domain.ToggleApproved())
	mutated := after[0]

	assert.Equal(t, original.ID, mutated.ID)
	assert.Equal(t, original.ListingID, mutated.ListingID)
	assert.Equal(t, original.ListingName, mutated.ListingName)
	assert.Equal(t, original.GuestName, mutated.GuestName)
	assert.Equal(t, original.Rating, mutated.Rating)
	assert.Equal(t, original.Text, mutated.Text)
	assert.Equal(t, original.SubmittedAt, mutated.SubmittedAt)
}

func TestSnapshotIsIsolatedFromLaterMutations(t *testing.T) {
	s := newTestStore(t)

	observed := s.Snapshot()
	approvedBefore := observed[0].Approved

	s.Apply(1, domain.ToggleApproved())
	s.Apply(1, domain.SetReply("updated later"))

	assert.Equal(t, approvedBefore, observed[0].Approved)
	assert.Equal(t, "", observed[0].Reply)
}

func TestConcurrentTogglesSerialize(t *testing.T) {
	s := newTestStore(t)
	original := s.Snapshot()[0].Approved

	const toggles = 100 // even count must restore the original value
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Apply(1, domain.ToggleApproved())
		}()
	}
	wg.Wait()

	assert.Equal(t, original, s.Snapshot()[0].Approved)
}
