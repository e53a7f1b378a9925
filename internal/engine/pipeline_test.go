package engine

import (
	"testing"

	"github.com/flexliving/reviews-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipelineFixture() []domain.Review {
	return []domain.Review{
		{ID: 1, ListingID: 101, ListingName: "Beta House", Channel: "Airbnb", Type: "guest-to-host", Rating: 4.5, SubmittedAt: "2024-08-21 22:45:14"},
		{ID: 2, ListingID: 101, ListingName: "Beta House", Channel: "Booking.com", Type: "guest-to-host", Rating: 3.0, SubmittedAt: "2024-09-02 09:12:33"},
		{ID: 3, ListingID: 102, ListingName: "Alpha Flat", Channel: "Airbnb", Type: "host-to-guest", Rating: 5.0, SubmittedAt: "2024-07-30 14:05:47"},
		{ID: 4, ListingID: 102, ListingName: "Alpha Flat", Channel: "Airbnb", Type: "guest-to-host", Rating: 4.0, SubmittedAt: "2024-09-02 09:12:33"},
	}
}

func minRating(v float64) *float64 { return &v }

func TestZeroFilterMatchesEverything(t *testing.T) {
	reviews := pipelineFixture()
	assert.Equal(t, reviews, Filter{}.Apply(reviews))
}

func TestFilterStagesConjoin(t *testing.T) {
	reviews := pipelineFixture()

	got := Filter{Channel: "Airbnb", MinRating: minRating(4.5)}.Apply(reviews)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

func TestFilterOrderIndependence(t *testing.T) {
	reviews := pipelineFixture()

	channelThenRating := Filter{MinRating: minRating(4.0)}.Apply(Filter{Channel: "Airbnb"}.Apply(reviews))
	ratingThenChannel := Filter{Channel: "Airbnb"}.Apply(Filter{MinRating: minRating(4.0)}.Apply(reviews))

	assert.Equal(t, channelThenRating, ratingThenChannel)
}

func TestFilterByTypeAndListing(t *testing.T) {
	reviews := pipelineFixture()

	got := Filter{ListingName: "Alpha Flat", Type: "guest-to-host"}.Apply(reviews)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].ID)
}

func TestSortNewest(t *testing.T) {
	got := SortReviews(pipelineFixture(), SortNewest)
	ids := []int{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	assert.Equal(t, []int{2, 4, 1, 3}, ids)
}

func TestSortNewestIsStableOnEqualTimestamps(t *testing.T) {
	// Reviews 2 and 4 share a timestamp; the earlier input entry must stay
	// first.
	got := SortReviews(pipelineFixture(), SortNewest)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 4, got[1].ID)
}

func TestSortOldest(t *testing.T) {
	got := SortReviews(pipelineFixture(), SortOldest)
	assert.Equal(t, 3, got[0].ID)
}

func TestSortByRating(t *testing.T) {
	desc := SortReviews(pipelineFixture(), SortRatingDesc)
	assert.Equal(t, 3, desc[0].ID)
	assert.Equal(t, 2, desc[3].ID)

	asc := SortReviews(pipelineFixture(), SortRatingAsc)
	assert.Equal(t, 2, asc[0].ID)
	assert.Equal(t, 3, asc[3].ID)
}

func TestSortByListingName(t *testing.T) {
	asc := SortReviews(pipelineFixture(), SortNameAsc)
	assert.Equal(t, "Alpha Flat", asc[0].ListingName)
	assert.Equal(t, "Beta House", asc[3].ListingName)

	desc := SortReviews(pipelineFixture(), SortNameDesc)
	assert.Equal(t, "Beta House", desc[0].ListingName)
}

func TestSortDoesNotReorderInput(t *testing.T) {
	reviews := pipelineFixture()
	_ = SortReviews(reviews, SortRatingDesc)

	ids := []int{reviews[0].ID, reviews[1].ID, reviews[2].ID, reviews[3].ID}
	assert.Equal(t, []int{1, 2, 3, 4}, ids)
}

func TestParseSortKeyDefaultsToNewest(t *testing.T) {
	assert.Equal(t, SortNewest, ParseSortKey(""))
	assert.Equal(t, SortNewest, ParseSortKey("bogus"))
	assert.Equal(t, SortRatingDesc, ParseSortKey("rating-desc"))
}

func TestRollupFilterChannelMembership(t *testing.T) {
	rollups := Rollups(pipelineFixture())

	got := RollupFilter{Channel: "Booking.com"}.Apply(rollups)
	require.Len(t, got, 1)
	assert.Equal(t, 101, got[0].ListingID)
}

func TestRollupFilterMinRatingKeepsUnratedListings(t *testing.T) {
	avg := 3.2
	rollups := []ListingRollup{
		{ListingID: 1, Name: "Rated", AverageRating: &avg},
		{ListingID: 2, Name: "Unrated", AverageRating: nil},
	}

	got := RollupFilter{MinRating: minRating(4.0)}.Apply(rollups)
	require.Len(t, got, 1)
	assert.Equal(t, "Unrated", got[0].Name)
}

func TestSortRollupsTreatsMissingAverageAsZero(t *testing.T) {
	high := 4.8
	rollups := []ListingRollup{
		{ListingID: 1, Name: "Unrated"},
		{ListingID: 2, Name: "Top", AverageRating: &high},
	}

	got := SortRollups(rollups, SortRatingDesc)
	assert.Equal(t, "Top", got[0].Name)
	assert.Equal(t, "Unrated", got[1].Name)
}
