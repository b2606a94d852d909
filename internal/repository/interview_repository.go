package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const interviewColumns = "id, job_title, job_requirements, key_skills, questions, hr_access_code, created_at"

type sqlxInterviewRepository struct {
	db *sqlx.DB
}

func NewSQLXInterviewRepository(db *sqlx.DB) domain.InterviewRepository {
	return &sqlxInterviewRepository{db: db}
}

func toDomainInterview(m *models.Interview) *domain.Interview {
	if m == nil {
		return nil
	}
	questions := make([]domain.Question, 0, len(m.Questions))
	for _, q := range m.Questions {
		questions = append(questions, domain.Question{ID: q.ID, Text: q.Text, ExpectedFocus: q.ExpectedFocus})
	}
	return &domain.Interview{
		ID:              m.ID,
		JobTitle:        m.JobTitle,
		JobRequirements: m.JobRequirements,
		KeySkills:       []string(m.KeySkills),
		Questions:       questions,
		HRAccessCode:    m.HRAccessCode,
		CreatedAt:       m.CreatedAt,
	}
}

func fromDomainInterview(d *domain.Interview) *models.Interview {
	if d == nil {
		return nil
	}
	questions := make(models.JSONList[models.Question], 0, len(d.Questions))
	for _, q := range d.Questions {
		questions = append(questions, models.Question{ID: q.ID, Text: q.Text, ExpectedFocus: q.ExpectedFocus})
	}
	return &models.Interview{
		ID:              d.ID,
		JobTitle:        d.JobTitle,
		JobRequirements: d.JobRequirements,
		KeySkills:       models.StringSlice(d.KeySkills),
		Questions:       questions,
		HRAccessCode:    d.HRAccessCode,
		CreatedAt:       d.CreatedAt,
	}
}

func (r *sqlxInterviewRepository) Create(ctx context.Context, interview *domain.Interview) error {
	m := fromDomainInterview(interview)
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO interviews (` + interviewColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query,
		m.ID, m.JobTitle, m.JobRequirements, m.KeySkills, m.Questions, m.HRAccessCode, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert interview %s: %w", m.ID, err)
	}
	return nil
}

func (r *sqlxInterviewRepository) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	var m models.Interview
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT ` + interviewColumns + ` FROM interviews WHERE id = ?`)
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview %s: %w", id, err)
	}
	return toDomainInterview(&m), nil
}
