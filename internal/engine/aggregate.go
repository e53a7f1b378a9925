package engine

import "github.com/flexliving/reviews-service/internal/domain"

// Derived views are pure functions of a snapshot, recomputed from scratch on
// every call. There is no cached aggregate state to invalidate: a mutation
// followed by a read always reflects the mutation.

// ApprovalBreakdown counts approved vs pending reviews over a snapshot.
type ApprovalBreakdown struct {
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
}

// Breakdown computes the approval breakdown for the given reviews.
func Breakdown(reviews []domain.Review) ApprovalBreakdown {
	var b ApprovalBreakdown
	for _, r := range reviews {
		if r.Approved {
			b.Approved++
		} else {
			b.Pending++
		}
	}
	return b
}

// ChannelDistribution counts reviews per distinct channel. Only the counts
// matter; map iteration order is irrelevant to consumers.
func ChannelDistribution(reviews []domain.Review) map[string]int {
	counts := make(map[string]int)
	for _, r := range reviews {
		counts[r.Channel]++
	}
	return counts
}

// ListingRollup is the per-listing aggregate shown on the properties
// overview. AverageRating is computed over approved reviews only and is nil
// when the listing has no approved reviews; consumers render that as
// "not available", never as zero.
type ListingRollup struct {
	ListingID     int      `json:"id"`
	Name          string   `json:"name"`
	Image         string   `json:"image"`
	Channels      []string `json:"channels"`
	Total         int      `json:"total"`
	ApprovedCount int      `json:"approved"`
	AverageRating *float64 `json:"avgRating"`
}

// Rollups groups a snapshot by listing id, preserving first-seen listing
// order. The display name is taken from the first review of each group, the
// image from the first review with a non-empty one.
func Rollups(reviews []domain.Review) []ListingRollup {
	index := make(map[int]int)
	var rollups []ListingRollup
	ratingSums := make(map[int]float64)
	channelSeen := make(map[int]map[string]bool)

	for _, r := range reviews {
		i, ok := index[r.ListingID]
		if !ok {
			i = len(rollups)
			index[r.ListingID] = i
			rollups = append(rollups, ListingRollup{
				ListingID: r.ListingID,
				Name:      r.ListingName,
			})
			channelSeen[r.ListingID] = make(map[string]bool)
		}

		rollups[i].Total++
		if rollups[i].Image == "" && r.Image != "" {
			rollups[i].Image = r.Image
		}
		if !channelSeen[r.ListingID][r.Channel] {
			channelSeen[r.ListingID][r.Channel] = true
			rollups[i].Channels = append(rollups[i].Channels, r.Channel)
		}
		if r.Approved {
			rollups[i].ApprovedCount++
			ratingSums[r.ListingID] += r.Rating
		}
	}

	for i := range rollups {
		if rollups[i].Image == "" {
			rollups[i].Image = domain.PlaceholderCardImage
		}
		if rollups[i].ApprovedCount > 0 {
			avg := ratingSums[rollups[i].ListingID] / float64(rollups[i].ApprovedCount)
			rollups[i].AverageRating = &avg
		}
	}

	return rollups
}

// PropertyRating is one bar of the property comparison chart: the mean
// rating over ALL reviews of a listing, approved or not. This deliberately
// differs from the rollup average; it answers "how is this listing trending
// overall" rather than "what can the public see".
type PropertyRating struct {
	Name          string  `json:"name"`
	AverageRating float64 `json:"avgRating"`
}

// PropertyComparison computes the all-reviews mean per listing name, in
// first-seen order.
func PropertyComparison(reviews []domain.Review) []PropertyRating {
	index := make(map[string]int)
	var out []PropertyRating
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, r := range reviews {
		if _, ok := index[r.ListingName]; !ok {
			index[r.ListingName] = len(out)
			out = append(out, PropertyRating{Name: r.ListingName})
		}
		sums[r.ListingName] += r.Rating
		counts[r.ListingName]++
	}

	for i := range out {
		out[i].AverageRating = sums[out[i].Name] / float64(counts[out[i].Name])
	}

	return out
}
