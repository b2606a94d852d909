package repository

import (
	"context"
	"fmt"

	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/repository/models"
	"ai-interviewer/internal/util"

	"github.com/jmoiron/sqlx"
)

const submissionColumns = "id, interview_id, candidate_name, candidate_email, answers, scores, overall_score, recommendation, ai_summary, submitted_at"

type sqlxSubmissionRepository struct {
	db *sqlx.DB
}

func NewSQLXSubmissionRepository(db *sqlx.DB) domain.SubmissionRepository {
	return &sqlxSubmissionRepository{db: db}
}

func toDomainSubmission(m *models.Submission) *domain.Submission {
	if m == nil {
		return nil
	}
	answers := make([]domain.Answer, 0, len(m.Answers))
	for _, a := range m.Answers {
		answers = append(answers, domain.Answer{QuestionID: a.QuestionID, Answer: a.Answer})
	}
	scores := make([]domain.QuestionScore, 0, len(m.Scores))
	for _, s := range m.Scores {
		scores = append(scores, domain.QuestionScore{QuestionID: s.QuestionID, Score: s.Score, Comment: s.Comment})
	}
	return &domain.Submission{
		ID:             m.ID,
		InterviewID:    m.InterviewID,
		CandidateName:  m.CandidateName,
		CandidateEmail: m.CandidateEmail,
		Answers:        answers,
		Scores:         scores,
		OverallScore:   m.OverallScore,
		Recommendation: domain.Recommendation(m.Recommendation),
		AISummary:      util.OrEmpty(m.AISummary),
		SubmittedAt:    m.SubmittedAt,
	}
}

func fromDomainSubmission(d *domain.Submission) *models.Submission {
	if d == nil {
		return nil
	}
	answers := make(models.JSONList[models.Answer], 0, len(d.Answers))
	for _, a := range d.Answers {
		answers = append(answers, models.Answer{QuestionID: a.QuestionID, Answer: a.Answer})
	}
	scores := make(models.JSONList[models.QuestionScore], 0, len(d.Scores))
	for _, s := range d.Scores {
		scores = append(scores, models.QuestionScore{QuestionID: s.QuestionID, Score: s.Score, Comment: s.Comment})
	}
	return &models.Submission{
		ID:             d.ID,
		InterviewID:    d.InterviewID,
		CandidateName:  d.CandidateName,
		CandidateEmail: domain.NormalizeEmail(d.CandidateEmail),
		Answers:        answers,
		Scores:         scores,
		OverallScore:   d.OverallScore,
		Recommendation: string(d.Recommendation),
		AISummary:      util.NullIfEmpty(d.AISummary),
		SubmittedAt:    d.SubmittedAt,
	}
}

func (r *sqlxSubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	m := fromDomainSubmission(submission)
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO submissions (` + submissionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query,
		m.ID, m.InterviewID, m.CandidateName, m.CandidateEmail, m.Answers, m.Scores,
		m.OverallScore, m.Recommendation, m.AISummary, m.SubmittedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSubmission
		}
		return fmt.Errorf("failed to insert submission for interview %s: %w", m.InterviewID, err)
	}
	return nil
}

func (r *sqlxSubmissionRepository) ExistsForCandidate(ctx context.Context, interviewID, candidateEmail string) (bool, error) {
	var count int
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT COUNT(*) FROM submissions WHERE interview_id = ? AND candidate_email = ?`)
	if err := exec.GetContext(ctx, &count, query, interviewID, domain.NormalizeEmail(candidateEmail)); err != nil {
		return false, fmt.Errorf("failed to check submission for interview %s: %w", interviewID, err)
	}
	return count > 0, nil
}

func (r *sqlxSubmissionRepository) ListByInterview(ctx context.Context, interviewID string) ([]*domain.Submission, error) {
	var rows []models.Submission
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT ` + submissionColumns + ` FROM submissions WHERE interview_id = ? ORDER BY overall_score DESC, submitted_at ASC`)
	if err := exec.SelectContext(ctx, &rows, query, interviewID); err != nil {
		return nil, fmt.Errorf("failed to list submissions for interview %s: %w", interviewID, err)
	}
	submissions := make([]*domain.Submission, 0, len(rows))
	for i := range rows {
		submissions = append(submissions, toDomainSubmission(&rows[i]))
	}
	return submissions, nil
}
