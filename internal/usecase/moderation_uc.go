package usecase

import (
	"context"
	"time"

	"github.com/flexliving/reviews-service/internal/domain"
	"github.com/flexliving/reviews-service/internal/engine"
	"github.com/flexliving/reviews-service/internal/platform/logger"
	"github.com/flexliving/reviews-service/internal/platform/metrics"
	"github.com/flexliving/reviews-service/internal/projection"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher emits moderation events. Nil means messaging is disabled.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// ModerationUsecase implements the business logic of the review dashboard:
// moderation mutations against the store plus every derived read view.
type ModerationUsecase struct {
	store   domain.ReviewStore
	events  EventPublisher
	metrics *metrics.Manager
	logger  *logger.Logger
}

// NewModerationUsecase creates a new ModerationUsecase. events and mm may be
// nil when messaging or metrics are disabled.
func NewModerationUsecase(st domain.ReviewStore, events EventPublisher, mm *metrics.Manager, log *logger.Logger) *ModerationUsecase {
	return &ModerationUsecase{
		store:   st,
		events:  events,
		metrics: mm,
		logger:  log.Named("ModerationUsecase"),
	}
}

// ListReviews returns the snapshot narrowed by the filter and ordered by the
// sort key.
func (uc *ModerationUsecase) ListReviews(ctx context.Context, f engine.Filter, key engine.SortKey) []domain.Review {
	return engine.SortReviews(f.Apply(uc.store.Snapshot()), key)
}

// ApplyMutation applies one moderation operation to the review with the
// given id and returns the new full snapshot. An unknown id leaves the
// collection unchanged; the caller sees that as "no change observed" rather
// than an error.
func (uc *ModerationUsecase) ApplyMutation(ctx context.Context, id int, m domain.Mutation) []domain.Review {
	uc.logger.Info("Applying mutation",
		zap.Int("review_id", id),
		zap.String("kind", string(m.Kind)))

	snapshot := uc.store.Apply(id, m)

	var mutated *domain.Review
	for i := range snapshot {
		if snapshot[i].ID == id {
			mutated = &snapshot[i]
			break
		}
	}
	if mutated == nil {
		uc.logger.Warn("Mutation was a no-op: review id not found", zap.Int("review_id", id))
		if uc.metrics != nil {
			uc.metrics.UnknownMutationsTotal.Inc()
		}
		return snapshot
	}

	switch m.Kind {
	case domain.MutationToggleApproved:
		if uc.metrics != nil {
			uc.metrics.ApprovalTogglesTotal.Inc()
		}
		uc.publish(ctx, "review.approval_toggled", map[string]interface{}{
			"event_id":   uuid.NewString(),
			"review_id":  mutated.ID,
			"listing_id": mutated.ListingID,
			"approved":   mutated.Approved,
			"applied_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
	case domain.MutationSetReply:
		if uc.metrics != nil {
			uc.metrics.RepliesSetTotal.Inc()
		}
		uc.publish(ctx, "review.reply_set", map[string]interface{}{
			"event_id":     uuid.NewString(),
			"review_id":    mutated.ID,
			"listing_id":   mutated.ListingID,
			"reply_length": len(mutated.Reply),
			"applied_at":   time.Now().UTC().Format(time.RFC3339Nano),
		})
	}

	return snapshot
}

// publish emits an event when messaging is enabled. Publish failures are
// logged and swallowed: the mutation has already been applied and must not
// be reported as failed.
func (uc *ModerationUsecase) publish(ctx context.Context, subject string, data map[string]interface{}) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, subject, data); err != nil {
		uc.logger.Warn("Failed to publish moderation event", zap.String("subject", subject), zap.Error(err))
	}
}

// Rollups returns the per-listing aggregates, narrowed and ordered for the
// properties overview.
func (uc *ModerationUsecase) Rollups(f engine.RollupFilter, key engine.SortKey) []engine.ListingRollup {
	return engine.SortRollups(f.Apply(engine.Rollups(uc.store.Snapshot())), key)
}

// ListingReviews returns the moderation view of one listing, newest first.
func (uc *ModerationUsecase) ListingReviews(listingID int) []domain.Review {
	snapshot := uc.store.Snapshot()
	own := make([]domain.Review, 0, len(snapshot))
	for _, r := range snapshot {
		if r.ListingID == listingID {
			own = append(own, r)
		}
	}
	return engine.SortReviews(own, engine.SortNewest)
}

// Analytics bundles the platform-wide derived views for the analytics page.
type Analytics struct {
	Approval   engine.ApprovalBreakdown `json:"approval"`
	Channels   map[string]int           `json:"channels"`
	Properties []engine.PropertyRating  `json:"properties"`
}

// PlatformAnalytics recomputes every platform-wide aggregate from the
// current snapshot.
func (uc *ModerationUsecase) PlatformAnalytics() Analytics {
	snapshot := uc.store.Snapshot()
	return Analytics{
		Approval:   engine.Breakdown(snapshot),
		Channels:   engine.ChannelDistribution(snapshot),
		Properties: engine.PropertyComparison(snapshot),
	}
}

// PublicListing derives the approved-only public page for one listing.
func (uc *ModerationUsecase) PublicListing(listingID int) projection.PublicListing {
	return projection.ForListing(listingID, uc.store.Snapshot())
}
