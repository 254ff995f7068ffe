package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Davie521/LeagueSwissStageProbability/engine"
	"github.com/Davie521/LeagueSwissStageProbability/models"
	"github.com/Davie521/LeagueSwissStageProbability/repositories"
)

// StandingsView is the presentation shape of the current stage.
type StandingsView struct {
	Round     int            `json:"round"`
	WinTarget int            `json:"win_target"`
	LossLimit int            `json:"loss_limit"`
	Teams     []TeamStanding `json:"teams"`
}

type TeamStanding struct {
	Name    string                `json:"name"`
	Wins    int                   `json:"wins"`
	Losses  int                   `json:"losses"`
	Status  models.TeamStatus     `json:"status"`
	History []models.HistoryEntry `json:"history,omitempty"`
}

// GroupPreview shows an upcoming record group: the teams already settled
// there plus the teams that enter it depending on a pending match.
type GroupPreview struct {
	Record string      `json:"record"`
	Slots  []GroupSlot `json:"slots"`
}

type GroupSlot struct {
	Team      string `json:"team"`
	Confirmed bool   `json:"confirmed"`
	Condition string `json:"condition,omitempty"`
}

// GroupPairingsView lists every valid pairing of a record group under the
// no-repeat-opponent constraint.
type GroupPairingsView struct {
	Record         string     `json:"record"`
	Members        []string   `json:"members"`
	TotalMatchings int        `json:"total_matchings"`
	Pairings       [][]string `json:"pairings"`
}

type StageService interface {
	CurrentStage(ctx context.Context) (*models.SwissStage, error)
	Standings(ctx context.Context) (*StandingsView, error)
	GroupsPreview(ctx context.Context) ([]GroupPreview, error)
	GroupPairings(ctx context.Context, record string) (*GroupPairingsView, error)
}

type stageService struct {
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	winTarget int
	lossLimit int
}

func NewStageService(teamRepo repositories.TeamRepository, matchRepo repositories.MatchRepository, winTarget, lossLimit int) StageService {
	return &stageService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		winTarget: winTarget,
		lossLimit: lossLimit,
	}
}

// CurrentStage loads teams and matches concurrently and assembles the stage
// snapshot. Records, opponent sets and histories come from the match list, so
// the database never stores derived state.
func (s *stageService) CurrentStage(ctx context.Context) (*models.SwissStage, error) {
	var (
		teams   []*models.Team
		matches []*models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load matches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stage, err := models.NewSwissStage(teams, matches, s.winTarget, s.lossLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble stage: %w", err)
	}
	return stage, nil
}

func (s *stageService) Standings(ctx context.Context) (*StandingsView, error) {
	stage, err := s.CurrentStage(ctx)
	if err != nil {
		return nil, err
	}
	return buildStandings(stage), nil
}

func buildStandings(stage *models.SwissStage) *StandingsView {
	view := &StandingsView{
		Round:     stage.Round,
		WinTarget: stage.WinTarget,
		LossLimit: stage.LossLimit,
		Teams:     make([]TeamStanding, 0, len(stage.Teams)),
	}
	for _, t := range stage.Teams {
		view.Teams = append(view.Teams, TeamStanding{
			Name:    t.Name,
			Wins:    t.Wins,
			Losses:  t.Losses,
			Status:  stage.StatusOf(t),
			History: t.History,
		})
	}
	sort.Slice(view.Teams, func(i, j int) bool {
		a, b := view.Teams[i], view.Teams[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Losses != b.Losses {
			return a.Losses < b.Losses
		}
		return a.Name < b.Name
	})
	return view
}

// GroupsPreview projects every active team onto the record groups of the next
// round. A team with a pending match appears twice, once per outcome, with
// the condition spelled out; a team with no pending match is a confirmed
// member of its current group.
func (s *stageService) GroupsPreview(ctx context.Context) ([]GroupPreview, error) {
	stage, err := s.CurrentStage(ctx)
	if err != nil {
		return nil, err
	}

	slots := make(map[models.GroupKey][]GroupSlot)
	add := func(key models.GroupKey, slot GroupSlot) {
		if key.Wins >= stage.WinTarget || key.Losses >= stage.LossLimit {
			return
		}
		slots[key] = append(slots[key], slot)
	}

	for _, t := range stage.ActiveTeams() {
		m, pending := stage.EarliestPending(t.Name)
		if !pending {
			add(t.Record(), GroupSlot{Team: t.Name, Confirmed: true})
			continue
		}
		opp, _ := m.Opponent(t.Name)
		add(models.GroupKey{Wins: t.Wins + 1, Losses: t.Losses},
			GroupSlot{Team: t.Name, Condition: fmt.Sprintf("beats %s", opp)})
		add(models.GroupKey{Wins: t.Wins, Losses: t.Losses + 1},
			GroupSlot{Team: t.Name, Condition: fmt.Sprintf("loses to %s", opp)})
	}

	keys := make([]models.GroupKey, 0, len(slots))
	for k := range slots {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Wins != keys[j].Wins {
			return keys[i].Wins > keys[j].Wins
		}
		return keys[i].Losses < keys[j].Losses
	})

	previews := make([]GroupPreview, 0, len(keys))
	for _, k := range keys {
		group := slots[k]
		sort.Slice(group, func(i, j int) bool {
			if group[i].Confirmed != group[j].Confirmed {
				return group[i].Confirmed
			}
			return group[i].Team < group[j].Team
		})
		previews = append(previews, GroupPreview{Record: k.String(), Slots: group})
	}
	return previews, nil
}

func (s *stageService) GroupPairings(ctx context.Context, record string) (*GroupPairingsView, error) {
	key, err := models.ParseGroupKey(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecord, record)
	}

	stage, err := s.CurrentStage(ctx)
	if err != nil {
		return nil, err
	}

	members := stage.RecordGroup(key)
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, key)
	}

	matchings, err := engine.EnumeratePairings(members, stage.HavePlayed)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrOddGroupSize):
			return nil, fmt.Errorf("%w: %s", ErrOddGroup, key)
		case errors.Is(err, engine.ErrGroupSizeExceeded):
			return nil, fmt.Errorf("%w: %s", ErrEnumerationTooLarge, key)
		}
		return nil, err
	}

	view := &GroupPairingsView{
		Record:         key.String(),
		Members:        members,
		TotalMatchings: len(matchings),
		Pairings:       make([][]string, 0, len(matchings)),
	}
	for _, m := range matchings {
		pairs := make([]string, 0, len(m))
		for _, p := range m {
			pairs = append(pairs, p.Key())
		}
		view.Pairings = append(view.Pairings, pairs)
	}
	return view, nil
}
