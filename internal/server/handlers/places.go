package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rgreinho/request-yo-racks-api/internal/metrics"
	"github.com/rgreinho/request-yo-racks-api/internal/server/cache"
	"github.com/rgreinho/request-yo-racks-api/internal/server/response"
	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/logging"
	"github.com/rgreinho/request-yo-racks-api/pkg/places"
	"github.com/rgreinho/request-yo-racks-api/pkg/reconcile"
)

// PlaceRequest is the body of POST {prefix}/place. PlaceID is the Google
// place identifier, as returned by the nearby search.
type PlaceRequest struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// HandleCollectPlace handles POST {prefix}/place. The merged record is
// returned; with ?explain=true the per-provider records and field
// provenance are included.
func (h *Handlers) HandleCollectPlace(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodyBytes)

	var req PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}
	if req.PlaceID == "" && (req.Name == "" || req.Address == "") {
		response.ErrorFromType(w, errors.NewValidationError("place_id", nil, "a place_id or both a name and an address are required"))
		return
	}

	q := reconcile.Query{Name: req.Name, Address: req.Address}
	if req.PlaceID != "" {
		q.PlaceIDs = map[string]string{constants.ProviderGoogle: req.PlaceID}
	}

	logger := logging.FromContext(r.Context())
	res, err := h.collector.CollectResult(r.Context(), q)
	if err != nil {
		logger.Warn().Err(err).Msg("Place collection failed")
		response.ErrorFromType(w, err)
		return
	}

	if explain, _ := strconv.ParseBool(r.URL.Query().Get("explain")); explain {
		response.OK(w, res)
		return
	}
	response.OK(w, res.Record)
}

// HandleNearby handles GET {prefix}/places?location=lat,lng[&radius=m].
// Answers are cached per location and radius.
func (h *Handlers) HandleNearby(w http.ResponseWriter, r *http.Request) {
	if h.nearby == nil {
		response.ErrorFromType(w, errors.NotImplemented(constants.ProviderGoogle, "nearby search"))
		return
	}

	location := r.URL.Query().Get("location")
	if location == "" {
		response.BadRequest(w, "Missing location", "location must be formatted as lat,lng")
		return
	}

	radius := uint64(constants.DefaultNearbyRadius)
	if raw := r.URL.Query().Get("radius"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			response.BadRequest(w, "Invalid radius", "radius must be a positive number of meters")
			return
		}
		radius = parsed
	}

	key := cache.Key("nearby", location, strconv.FormatUint(radius, 10))
	payload, hit, err := h.cache.GetOrLoad(key, func() (places.Payload, error) {
		return h.nearby(r.Context(), location, places.WithRadius(uint(radius)))
	})
	metrics.CacheHit(hit)
	if err != nil {
		logging.FromContext(r.Context()).Warn().Err(err).Str(logging.FieldLocation, location).Msg("Nearby search failed")
		response.ErrorFromType(w, err)
		return
	}

	w.Header().Set("X-Cache", cacheStatus(hit))
	response.OK(w, payload)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
