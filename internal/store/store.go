package store

import (
	"sync"

	"github.com/flexliving/reviews-service/internal/domain"
	"github.com/flexliving/reviews-service/internal/platform/logger"
	"go.uber.org/zap"
)

// Store holds the canonical review collection for the lifetime of the
// process. Mutations execute as exclusive critical sections; snapshot reads
// share a read lock, so a snapshot never observes a partially-applied
// mutation. Reviews are never created or deleted here, only Approved and
// Reply change.
type Store struct {
	mu      sync.RWMutex
	reviews []domain.Review
	logger  *logger.Logger
}

// New creates a Store seeded with the loaded corpus, preserving load order.
func New(reviews []domain.Review, log *logger.Logger) *Store {
	owned := make([]domain.Review, len(reviews))
	copy(owned, reviews)
	return &Store{
		reviews: owned,
		logger:  log.Named("ReviewStore"),
	}
}

// Snapshot returns the full current collection as an independent copy.
func (s *Store) Snapshot() []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Apply locates the review with the given id and applies the mutation,
// returning the new full snapshot. If no review carries the id the call is a
// no-op and the unchanged snapshot is returned.
func (s *Store) Apply(id int, m domain.Mutation) []domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.reviews {
		if s.reviews[i].ID != id {
			continue
		}
		found = true
		switch m.Kind {
		case domain.MutationSetReply:
			s.reviews[i].Reply = m.Reply
		case domain.MutationToggleApproved:
			s.reviews[i].Approved = !s.reviews[i].Approved
		default:
			s.logger.Warn("Ignoring mutation with unknown kind",
				zap.Int("review_id", id),
				zap.String("kind", string(m.Kind)))
		}
		break
	}

	if !found {
		s.logger.Warn("Mutation targeted unknown review id, collection unchanged",
			zap.Int("review_id", id),
			zap.String("kind", string(m.Kind)))
	}

	return s.copyLocked()
}

// copyLocked clones the collection under the caller's lock. Reviews are
// copied by value; the Categories backing array is shared because sub-scores
// are immutable for the lifetime of the process.
func (s *Store) copyLocked() []domain.Review {
	out := make([]domain.Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}
