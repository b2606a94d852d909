package models

import (
	"database/sql"
	"time"
)

// Question is the stored shape of one interview question.
type Question struct {
	ID            int    `json:"id"`
	Text          string `json:"text"`
	ExpectedFocus string `json:"expected_focus"`
}

type Interview struct {
	ID              string             `db:"id"`
	JobTitle        string             `db:"job_title"`
	JobRequirements string             `db:"job_requirements"`
	KeySkills       StringSlice        `db:"key_skills"`
	Questions       JSONList[Question] `db:"questions"`
	HRAccessCode    string             `db:"hr_access_code"`
	CreatedAt       time.Time          `db:"created_at"`
}

type Answer struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

type QuestionScore struct {
	QuestionID int    `json:"question_id"`
	Score      int    `json:"score"`
	Comment    string `json:"comment"`
}

type Submission struct {
	ID             string                  `db:"id"`
	InterviewID    string                  `db:"interview_id"`
	CandidateName  string                  `db:"candidate_name"`
	CandidateEmail string                  `db:"candidate_email"`
	Answers        JSONList[Answer]        `db:"answers"`
	Scores         JSONList[QuestionScore] `db:"scores"`
	OverallScore   float64                 `db:"overall_score"`
	Recommendation string                  `db:"recommendation"`
	AISummary      sql.NullString          `db:"ai_summary"`
	SubmittedAt    time.Time               `db:"submitted_at"`
}
