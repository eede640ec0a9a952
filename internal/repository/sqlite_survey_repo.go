package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"surveypulse/internal/model"
)

type sqliteSurveyRepo struct {
	db *sql.DB
}

// NewSQLiteSurveyRepo creates a survey repository over an open SQLite handle
func NewSQLiteSurveyRepo(db *sql.DB) SurveyRepo {
	return &sqliteSurveyRepo{db: db}
}

func (r *sqliteSurveyRepo) Create(ctx context.Context, survey *model.Survey) (string, error) {
	questions, err := json.Marshal(survey.Questions)
	if err != nil {
		return "", fmt.Errorf("encode questions: %w", err)
	}
	now := time.Now().UTC()
	survey.ID = uuid.NewString()
	survey.CreatedAt = now
	survey.UpdatedAt = now

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO surveys (id, title, description, questions_json, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		survey.ID, survey.Title, survey.Description, string(questions), survey.IsActive,
		now.UnixNano(), now.UnixNano())
	if err != nil {
		return "", err
	}
	return survey.ID, nil
}

func (r *sqliteSurveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, questions_json, is_active, created_at, updated_at
		 FROM surveys WHERE id = ?`, id)
	survey, err := scanSurvey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return survey, err
}

func (r *sqliteSurveyRepo) List(ctx context.Context, includeInactive bool) ([]*model.Survey, error) {
	query := `SELECT id, title, description, questions_json, is_active, created_at, updated_at FROM surveys`
	if !includeInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	surveys := []*model.Survey{}
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		surveys = append(surveys, s)
	}
	return surveys, rows.Err()
}

func (r *sqliteSurveyRepo) Update(ctx context.Context, survey *model.Survey) error {
	questions, err := json.Marshal(survey.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	survey.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`UPDATE surveys SET title = ?, description = ?, questions_json = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		survey.Title, survey.Description, string(questions), survey.IsActive,
		survey.UpdatedAt.UnixNano(), survey.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSurvey(row rowScanner) (*model.Survey, error) {
	var (
		s                model.Survey
		questions        string
		created, updated int64
	)
	if err := row.Scan(&s.ID, &s.Title, &s.Description, &questions, &s.IsActive, &created, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(questions), &s.Questions); err != nil {
		return nil, fmt.Errorf("decode questions of survey %s: %w", s.ID, err)
	}
	s.CreatedAt = time.Unix(0, created).UTC()
	s.UpdatedAt = time.Unix(0, updated).UTC()
	return &s, nil
}
