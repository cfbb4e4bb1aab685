package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fnitalia/community-hub/services"
)

type CampaignHandler struct {
	campaignService services.CampaignService
}

func NewCampaignHandler(campaignService services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CampaignInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	campaign, err := h.campaignService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"campaign": campaign}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CampaignHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "campaignID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	campaign, err := h.campaignService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"campaign": campaign}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetActive returns the campaign currently accepting predictions for the
// tournament in the query string, or 404 when none is open.
func (h *CampaignHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("tournament_id")
	tournamentID, err := strconv.Atoi(raw)
	if err != nil || tournamentID <= 0 {
		badRequestResponse(w, r, errors.New("tournament_id query parameter must be a positive integer"))
		return
	}

	campaign, err := h.campaignService.GetActiveForTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"campaign": campaign}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaignService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"campaigns": campaigns}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "campaignID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CampaignInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	campaign, err := h.campaignService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"campaign": campaign}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "campaignID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.campaignService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
