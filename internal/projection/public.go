package projection

import (
	"fmt"

	"github.com/flexliving/reviews-service/internal/domain"
)

// PublicReview is the field-filtered shape of an approved review as seen by
// guests. It deliberately has no Reply and no Approved field: membership in
// the public feed already implies approval, and moderation drafts never leave
// the dashboard.
type PublicReview struct {
	ID          int                     `json:"id"`
	ListingID   int                     `json:"listingId"`
	ListingName string                  `json:"listingName"`
	GuestName   string                  `json:"guestName"`
	Rating      float64                 `json:"rating"`
	Channel     string                  `json:"channel"`
	Type        string                  `json:"type"`
	SubmittedAt string                  `json:"submittedAt"`
	Categories  []domain.CategoryRating `json:"categories"`
	Text        string                  `json:"text"`
	Image       string                  `json:"image,omitempty"`
}

// PublicListing is the public page for one listing: its approved reviews plus
// the derived display name and hero image.
type PublicListing struct {
	ListingID int            `json:"listingId"`
	Name      string         `json:"name"`
	HeroImage string         `json:"heroImage"`
	Reviews   []PublicReview `json:"reviews"`
}

// ForListing derives the public view of a listing from a snapshot. The
// display name comes from the first approved review, or a synthesized
// "Property {id}" label when the listing has no approved reviews — an empty
// state, not an error. The hero image is the first non-empty image among the
// approved subsequence, else a fixed placeholder.
func ForListing(listingID int, reviews []domain.Review) PublicListing {
	page := PublicListing{
		ListingID: listingID,
		Name:      fmt.Sprintf("Property %d", listingID),
		HeroImage: domain.PlaceholderHeroImage,
		Reviews:   []PublicReview{},
	}

	named := false
	for _, r := range reviews {
		if r.ListingID != listingID || !r.Approved {
			continue
		}
		if !named {
			page.Name = r.ListingName
			named = true
		}
		if page.HeroImage == domain.PlaceholderHeroImage && r.Image != "" {
			page.HeroImage = r.Image
		}
		page.Reviews = append(page.Reviews, PublicReview{
			ID:          r.ID,
			ListingID:   r.ListingID,
			ListingName: r.ListingName,
			GuestName:   r.GuestName,
			Rating:      r.Rating,
			Channel:     r.Channel,
			Type:        r.Type,
			SubmittedAt: r.SubmittedAt,
			Categories:  r.Categories,
			Text:        r.Text,
			Image:       r.Image,
		})
	}

	return page
}
