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

type sqliteResponseRepo struct {
	db *sql.DB
}

// NewSQLiteResponseRepo creates a response repository over an open SQLite handle
func NewSQLiteResponseRepo(db *sql.DB) ResponseRepo {
	return &sqliteResponseRepo{db: db}
}

func (r *sqliteResponseRepo) Create(ctx context.Context, response *model.ResponseRecord) error {
	answers, err := json.Marshal(response.Responses)
	if err != nil {
		return fmt.Errorf("encode responses: %w", err)
	}
	var audio sql.NullString
	if len(response.AudioData) > 0 {
		b, err := json.Marshal(response.AudioData)
		if err != nil {
			return fmt.Errorf("encode audio: %w", err)
		}
		audio = sql.NullString{String: string(b), Valid: true}
	}
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now().UTC()
	}
	response.ID = uuid.NewString()

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO responses (id, survey_id, responses_json, audio_json, submitted_at) VALUES (?, ?, ?, ?, ?)`,
		response.ID, response.SurveyID, string(answers), audio, response.SubmittedAt.UnixNano())
	return err
}

func (r *sqliteResponseRepo) GetByID(ctx context.Context, surveyID, id string) (*model.ResponseRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, survey_id, responses_json, audio_json, submitted_at
		 FROM responses WHERE id = ? AND survey_id = ?`, id, surveyID)
	rec, err := scanResponse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

// ListBySurvey returns responses oldest first
func (r *sqliteResponseRepo) ListBySurvey(ctx context.Context, surveyID string) ([]model.ResponseRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, survey_id, responses_json, audio_json, submitted_at
		 FROM responses WHERE survey_id = ? ORDER BY submitted_at ASC`, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []model.ResponseRecord{}
	for rows.Next() {
		rec, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *rec)
	}
	return responses, rows.Err()
}

func (r *sqliteResponseRepo) CountBySurvey(ctx context.Context, surveyID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM responses WHERE survey_id = ?`, surveyID).Scan(&n)
	return n, err
}

func (r *sqliteResponseRepo) CountSince(ctx context.Context, surveyID string, since time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM responses WHERE survey_id = ? AND submitted_at >= ?`,
		surveyID, since.UnixNano()).Scan(&n)
	return n, err
}

func scanResponse(row rowScanner) (*model.ResponseRecord, error) {
	var (
		rec       model.ResponseRecord
		answers   string
		audio     sql.NullString
		submitted int64
	)
	if err := row.Scan(&rec.ID, &rec.SurveyID, &answers, &audio, &submitted); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(answers), &rec.Responses); err != nil {
		return nil, fmt.Errorf("decode response %s: %w", rec.ID, err)
	}
	if audio.Valid {
		if err := json.Unmarshal([]byte(audio.String), &rec.AudioData); err != nil {
			return nil, fmt.Errorf("decode audio of response %s: %w", rec.ID, err)
		}
	}
	rec.SubmittedAt = time.Unix(0, submitted).UTC()
	return &rec, nil
}
