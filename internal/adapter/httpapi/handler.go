package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/flexliving/reviews-service/internal/domain"
	"github.com/flexliving/reviews-service/internal/engine"
	"github.com/flexliving/reviews-service/internal/platform/logger"
	"github.com/flexliving/reviews-service/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the dashboard's HTTP API.
type Handler struct {
	usecase *usecase.ModerationUsecase
	logger  *logger.Logger
}

// NewHandler creates a new HTTP handler for the review dashboard.
func NewHandler(uc *usecase.ModerationUsecase, log *logger.Logger) *Handler {
	return &Handler{
		usecase: uc,
		logger:  log.Named("ReviewHTTPHandler"),
	}
}

// reviewsResponse is the envelope both review endpoints return.
type reviewsResponse struct {
	Status  string          `json:"status"`
	Reviews []domain.Review `json:"reviews"`
}

// mutateRequest carries a moderation request. Reply stays raw so the handler
// can distinguish "a JSON string, possibly empty" from everything else:
// anything that is not a string (absent, null, number, object) is treated as
// absent and falls through to an approval toggle.
type mutateRequest struct {
	ID    int             `json:"id"`
	Reply json.RawMessage `json:"reply"`
}

// mutation resolves the request into the explicit tagged operation.
func (req mutateRequest) mutation() domain.Mutation {
	if len(req.Reply) > 0 {
		var reply string
		if err := json.Unmarshal(req.Reply, &reply); err == nil {
			return domain.SetReply(reply)
		}
	}
	return domain.ToggleApproved()
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// reviewFilterFromQuery builds the review filter from query parameters.
// Unset or unparseable parameters default to match-everything.
func reviewFilterFromQuery(r *http.Request) engine.Filter {
	q := r.URL.Query()
	f := engine.Filter{
		Channel:     q.Get("channel"),
		ListingName: q.Get("listing"),
		Type:        q.Get("type"),
	}
	if v := q.Get("minRating"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinRating = &min
		}
	}
	return f
}

// HandleListReviews returns the full moderation snapshot, optionally
// narrowed by query filters and ordered by the sort key.
func (h *Handler) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews := h.usecase.ListReviews(r.Context(),
		reviewFilterFromQuery(r),
		engine.ParseSortKey(r.URL.Query().Get("sort")))

	respondWithJSON(w, http.StatusOK, reviewsResponse{Status: "success", Reviews: reviews})
}

// HandleMutateReview applies one moderation operation and returns the new
// full snapshot. A request with a string reply sets the reply; any other
// shape toggles approval. An unknown id still answers 200 with the
// unchanged snapshot.
func (h *Handler) HandleMutateReview(w http.ResponseWriter, r *http.Request) {
	var req mutateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for mutation", zap.Error(err))
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	reviews := h.usecase.ApplyMutation(r.Context(), req.ID, req.mutation())
	respondWithJSON(w, http.StatusOK, reviewsResponse{Status: "success", Reviews: reviews})
}

// rollupFilterFromQuery builds the listing-level filter from query
// parameters.
func rollupFilterFromQuery(r *http.Request) engine.RollupFilter {
	q := r.URL.Query()
	f := engine.RollupFilter{Channel: q.Get("channel")}
	if v := q.Get("minRating"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinRating = &min
		}
	}
	return f
}

// HandleListRollups returns the per-listing rollups for the properties
// overview.
func (h *Handler) HandleListRollups(w http.ResponseWriter, r *http.Request) {
	rollups := h.usecase.Rollups(
		rollupFilterFromQuery(r),
		engine.ParseSortKey(r.URL.Query().Get("sort")))

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"listings": rollups})
}

func listingIDParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "listingID"))
	return id, err == nil
}

// HandleListingReviews returns the moderation view of one listing, newest
// first.
func (h *Handler) HandleListingReviews(w http.ResponseWriter, r *http.Request) {
	listingID, ok := listingIDParam(r)
	if !ok {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	reviews := h.usecase.ListingReviews(listingID)
	respondWithJSON(w, http.StatusOK, reviewsResponse{Status: "success", Reviews: reviews})
}

// HandlePublicListing returns the approved-only public projection for one
// listing. A listing with no approved reviews answers an empty feed with a
// synthesized name, not an error.
func (h *Handler) HandlePublicListing(w http.ResponseWriter, r *http.Request) {
	listingID, ok := listingIDParam(r)
	if !ok {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	respondWithJSON(w, http.StatusOK, h.usecase.PublicListing(listingID))
}

// HandleAnalytics returns the platform-wide derived views.
func (h *Handler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.usecase.PlatformAnalytics())
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
