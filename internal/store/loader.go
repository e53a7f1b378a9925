package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/flexliving/reviews-service/internal/domain"
	"github.com/flexliving/reviews-service/internal/platform/logger"
	"go.uber.org/zap"
)

// LoadCorpus reads the review corpus from a JSON file. The corpus is trusted:
// no schema validation happens beyond decoding, out-of-range ratings and
// inconsistent listing names pass through as-is. A missing reply field
// decodes to the empty string, which the rest of the system treats as
// "no reply written yet".
func LoadCorpus(path string, log *logger.Logger) ([]domain.Review, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrCorpus, path, err)
	}

	var reviews []domain.Review
	if err := json.Unmarshal(raw, &reviews); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", domain.ErrCorpus, path, err)
	}

	log.Info("Review corpus loaded",
		zap.String("path", path),
		zap.Int("reviews", len(reviews)))
	return reviews, nil
}
