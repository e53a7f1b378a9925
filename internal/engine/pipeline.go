package engine

import (
	"sort"

	"github.com/flexliving/reviews-service/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter is a conjunction of independently optional predicates over reviews.
// A zero-value field means "match everything" for that stage, so stages can
// be added or removed without changing the semantics of the others, and
// evaluation order never affects the result.
type Filter struct {
	Channel     string
	ListingName string
	Type        string
	MinRating   *float64
}

// Match reports whether a review passes every set predicate.
func (f Filter) Match(r domain.Review) bool {
	if f.Channel != "" && r.Channel != f.Channel {
		return false
	}
	if f.ListingName != "" && r.ListingName != f.ListingName {
		return false
	}
	if f.MinRating != nil && r.Rating < *f.MinRating {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	return true
}

// Apply returns the subsequence of reviews matching the filter, preserving
// input order.
func (f Filter) Apply(reviews []domain.Review) []domain.Review {
	out := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortKey selects the display order of a filtered subsequence.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortRatingDesc SortKey = "rating-desc"
	SortRatingAsc  SortKey = "rating-asc"
	SortNameAsc    SortKey = "name-asc"
	SortNameDesc   SortKey = "name-desc"
)

// ParseSortKey maps a query value to a SortKey, defaulting to newest.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortOldest, SortRatingDesc, SortRatingAsc, SortNameAsc, SortNameDesc:
		return SortKey(s)
	default:
		return SortNewest
	}
}

// newCollator returns the collator used for listing-name ordering. English
// collation matches the dashboard's locale-aware name sorts.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

// SortReviews returns a new slice ordered by the given key. The sort is
// stable: reviews comparing equal retain their relative input order. The
// input slice is never reordered in place.
func SortReviews(reviews []domain.Review, key SortKey) []domain.Review {
	out := make([]domain.Review, len(reviews))
	copy(out, reviews)

	switch key {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SubmittedTime().After(out[j].SubmittedTime())
		})
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SubmittedTime().Before(out[j].SubmittedTime())
		})
	case SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	case SortRatingAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating < out[j].Rating
		})
	case SortNameAsc:
		c := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].ListingName, out[j].ListingName) < 0
		})
	case SortNameDesc:
		c := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].ListingName, out[j].ListingName) > 0
		})
	}

	return out
}

// RollupFilter narrows listing rollups on the properties overview.
type RollupFilter struct {
	Channel   string
	MinRating *float64
}

// Apply returns the rollups matching the filter. A listing matches a channel
// when any of its reviews came through that channel. The minimum-rating gate
// only applies to listings that have an average at all; listings with no
// approved reviews pass through so the operator still sees them.
func (f RollupFilter) Apply(rollups []ListingRollup) []ListingRollup {
	out := make([]ListingRollup, 0, len(rollups))
	for _, p := range rollups {
		if f.Channel != "" && !containsString(p.Channels, f.Channel) {
			continue
		}
		if f.MinRating != nil && p.AverageRating != nil && *p.AverageRating < *f.MinRating {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortRollups returns a new slice of rollups ordered by the given key.
// Rating sorts treat a missing average as zero so unrated listings sink to
// the bottom of a high-to-low ordering.
func SortRollups(rollups []ListingRollup, key SortKey) []ListingRollup {
	out := make([]ListingRollup, len(rollups))
	copy(out, rollups)

	avg := func(p ListingRollup) float64 {
		if p.AverageRating == nil {
			return 0
		}
		return *p.AverageRating
	}

	switch key {
	case SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool { return avg(out[i]) > avg(out[j]) })
	case SortRatingAsc:
		sort.SliceStable(out, func(i, j int) bool { return avg(out[i]) < avg(out[j]) })
	case SortNameAsc:
		c := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortNameDesc:
		c := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) > 0
		})
	}

	return out
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
