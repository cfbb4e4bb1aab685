package handlers

import (
	"net/http"
	"strconv"

	"github.com/fnitalia/community-hub/services"
)

type PredictionHandler struct {
	predictionService services.PredictionService
}

func NewPredictionHandler(predictionService services.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictionService: predictionService}
}

// Submit accepts a public prediction submission. No authentication: the
// viewer identity travels in the body and is validated by the service.
func (h *PredictionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input services.SubmitPredictionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	prediction, err := h.predictionService.Submit(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"prediction": prediction}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Feed lists predictions, newest first. An optional campaign_id query
// parameter restricts the feed to one campaign.
func (h *PredictionHandler) Feed(w http.ResponseWriter, r *http.Request) {
	campaignID := 0
	if raw := r.URL.Query().Get("campaign_id"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			badRequestResponse(w, r, strconvError("campaign_id", raw))
			return
		}
		campaignID = v
	}
	limit, offset := paginationParams(r, 50)

	predictions, err := h.predictionService.ListFeed(r.Context(), campaignID, limit, offset)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"predictions": predictions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PredictionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "predictionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.predictionService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
