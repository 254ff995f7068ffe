package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/Davie521/LeagueSwissStageProbability/models"
)

var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchTeamInvalid    = errors.New("match references unknown team")
	ErrMatchAlreadyDecided = errors.New("match already has a recorded result")
)

type MatchRepository interface {
	List(ctx context.Context) ([]*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	Create(ctx context.Context, match *models.Match) error
	RecordResult(ctx context.Context, id int, winner string) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	query := `
		SELECT id, round, team_a, team_b, winner, status
		FROM matches
		ORDER BY round ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows.Scan)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, round, team_a, team_b, winner, status
		FROM matches
		WHERE id = $1`

	m, err := scanMatch(func(dst ...interface{}) error {
		return r.db.QueryRowContext(ctx, query, id).Scan(dst...)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (round, team_a, team_b, winner, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		match.Round,
		match.TeamA,
		match.TeamB,
		match.Winner,
		match.Status,
	).Scan(&match.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrMatchTeamInvalid
		}
		return err
	}
	return nil
}

// RecordResult decides a pending match. The WHERE clause keeps the update
// from overwriting an already recorded winner; the two failure modes are told
// apart with a follow-up lookup.
func (r *postgresMatchRepository) RecordResult(ctx context.Context, id int, winner string) error {
	query := `
		UPDATE matches
		SET winner = $1, status = $2
		WHERE id = $3 AND winner IS NULL`

	result, err := r.db.ExecContext(ctx, query, winner, models.MatchStatusCompleted, id)
	if err != nil {
		return err
	}

	if err := checkAffectedRows(result, ErrMatchNotFound); err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return ErrMatchAlreadyDecided
			}
		}
		return err
	}
	return nil
}

func scanMatch(scan func(dst ...interface{}) error) (*models.Match, error) {
	var m models.Match
	var winner sql.NullString
	if err := scan(&m.ID, &m.Round, &m.TeamA, &m.TeamB, &winner, &m.Status); err != nil {
		return nil, err
	}
	if winner.Valid {
		w := winner.String
		m.Winner = &w
	}
	return &m, nil
}
