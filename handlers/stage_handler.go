package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Davie521/LeagueSwissStageProbability/services"
)

type StageHandler struct {
	stageService services.StageService
}

func NewStageHandler(stageService services.StageService) *StageHandler {
	return &StageHandler{stageService: stageService}
}

func (h *StageHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.stageService.Standings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StageHandler) GetGroupsPreview(w http.ResponseWriter, r *http.Request) {
	groups, err := h.stageService.GroupsPreview(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StageHandler) GetGroupPairings(w http.ResponseWriter, r *http.Request) {
	record := chi.URLParam(r, "record")

	pairings, err := h.stageService.GroupPairings(r.Context(), record)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"group": pairings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
