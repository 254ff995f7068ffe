package handlers

import (
	"net/http"

	"github.com/Davie521/LeagueSwissStageProbability/services"
)

type ProbabilityHandler struct {
	probabilityService services.ProbabilityService
}

func NewProbabilityHandler(probabilityService services.ProbabilityService) *ProbabilityHandler {
	return &ProbabilityHandler{probabilityService: probabilityService}
}

// ComputeMatchup answers one matchup probability query. A cross-group query
// that still needs win probabilities comes back 200 with kind "need_input"
// and the list of required matches; the client repeats the request with the
// completed win_probabilities map.
func (h *ProbabilityHandler) ComputeMatchup(w http.ResponseWriter, r *http.Request) {
	var query services.ProbabilityQuery

	if err := readJSON(w, r, &query); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.probabilityService.MatchupProbability(r.Context(), query)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
