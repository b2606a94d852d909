package domain

import (
	"strings"
	"time"
)

// QuestionCount is the fixed size of every generated question set.
const QuestionCount = 6

// Question is one interview question. ExpectedFocus is evaluator-only.
type Question struct {
	ID            int    `json:"id"`
	Text          string `json:"text"`
	ExpectedFocus string `json:"expected_focus"`
}

// Interview is created once per job posting and never modified.
type Interview struct {
	ID              string
	JobTitle        string
	JobRequirements string
	KeySkills       []string
	Questions       []Question
	HRAccessCode    string
	CreatedAt       time.Time
}

// Answer is a candidate's response to a single question.
type Answer struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

// QuestionScore is the evaluator's rating of one answer.
type QuestionScore struct {
	QuestionID int    `json:"question_id"`
	Score      int    `json:"score"`
	Comment    string `json:"comment"`
}

type Recommendation string

const (
	RecommendationRecommend      Recommendation = "recommend"
	RecommendationMaybe          Recommendation = "maybe"
	RecommendationNotRecommended Recommendation = "not_recommended"
	RecommendationPending        Recommendation = "pending"
)

func (r Recommendation) Valid() bool {
	switch r {
	case RecommendationRecommend, RecommendationMaybe, RecommendationNotRecommended, RecommendationPending:
		return true
	}
	return false
}

// RecommendationForScore maps an aggregate score to its tier.
func RecommendationForScore(score float64) Recommendation {
	switch {
	case score >= 4.0:
		return RecommendationRecommend
	case score >= 3.0:
		return RecommendationMaybe
	default:
		return RecommendationNotRecommended
	}
}

// Submission is a candidate's evaluated answer set. One per (interview, email).
type Submission struct {
	ID             string
	InterviewID    string
	CandidateName  string
	CandidateEmail string
	Answers        []Answer
	Scores         []QuestionScore
	OverallScore   float64
	Recommendation Recommendation
	AISummary      string
	SubmittedAt    time.Time
}

// Evaluation is what the evaluation gateway returns for a submission.
// OverallScore and Recommendation are nil when the evaluator omitted them.
type Evaluation struct {
	Scores         []QuestionScore
	OverallScore   *float64
	Recommendation *Recommendation
	Summary        string
}

// Tally counts submissions per recommendation tier.
type Tally struct {
	Total          int
	Recommended    int
	Maybe          int
	NotRecommended int
}

func TallySubmissions(submissions []*Submission) Tally {
	t := Tally{Total: len(submissions)}
	for _, s := range submissions {
		switch s.Recommendation {
		case RecommendationRecommend:
			t.Recommended++
		case RecommendationMaybe:
			t.Maybe++
		case RecommendationNotRecommended:
			t.NotRecommended++
		}
	}
	return t
}

// NormalizeEmail is the canonical form used for the one-submission-per-email rule.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
