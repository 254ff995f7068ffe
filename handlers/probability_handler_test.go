package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davie521/LeagueSwissStageProbability/engine"
	"github.com/Davie521/LeagueSwissStageProbability/services"
)

type fakeProbabilityService struct {
	lastQuery services.ProbabilityQuery
	result    *engine.Result
	err       error
}

func (s *fakeProbabilityService) MatchupProbability(_ context.Context, query services.ProbabilityQuery) (*engine.Result, error) {
	s.lastQuery = query
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestProbabilityHandlerComputeMatchup(t *testing.T) {
	svc := &fakeProbabilityService{result: &engine.Result{
		Kind:        engine.KindSameGroup,
		Probability: 1.0 / 3.0,
	}}
	handler := NewProbabilityHandler(svc)

	body := `{"team_a": "ALD", "team_b": "BRX", "win_probabilities": {"EEL|FOX": 0.7}}`
	req := httptest.NewRequest(http.MethodPost, "/probability", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ComputeMatchup(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALD", svc.lastQuery.TeamA)
	assert.Equal(t, map[string]float64{"EEL|FOX": 0.7}, svc.lastQuery.WinProbabilities)

	var resp struct {
		Result *engine.Result `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.Equal(t, engine.KindSameGroup, resp.Result.Kind)
	assert.InDelta(t, 1.0/3.0, resp.Result.Probability, 1e-12)
}

func TestProbabilityHandlerNeedInputPassesThrough(t *testing.T) {
	svc := &fakeProbabilityService{result: &engine.Result{
		Kind:            engine.KindNeedInput,
		RequiredMatches: []string{"EEL|FOX", "MOT|NIX"},
	}}
	handler := NewProbabilityHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/probability",
		strings.NewReader(`{"team_a": "XRAY", "team_b": "YETI"}`))
	rec := httptest.NewRecorder()

	handler.ComputeMatchup(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "needing input is a valid answer, not an error")
	var resp struct {
		Result *engine.Result `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, engine.KindNeedInput, resp.Result.Kind)
	assert.Equal(t, []string{"EEL|FOX", "MOT|NIX"}, resp.Result.RequiredMatches)
}

func TestProbabilityHandlerRejectsMalformedJSON(t *testing.T) {
	handler := NewProbabilityHandler(&fakeProbabilityService{})

	req := httptest.NewRequest(http.MethodPost, "/probability", strings.NewReader(`{"team_a":`))
	rec := httptest.NewRecorder()

	handler.ComputeMatchup(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProbabilityHandlerMapsServiceErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown team", services.ErrTeamNotFound, http.StatusNotFound},
		{"same team", services.ErrSameTeam, http.StatusBadRequest},
		{"probability range", services.ErrInvalidProbability, http.StatusBadRequest},
		{"enumeration bound", services.ErrEnumerationTooLarge, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewProbabilityHandler(&fakeProbabilityService{err: tc.err})
			req := httptest.NewRequest(http.MethodPost, "/probability",
				strings.NewReader(`{"team_a": "ALD", "team_b": "BRX"}`))
			rec := httptest.NewRecorder()

			handler.ComputeMatchup(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
