package dto

import "time"

// CreateInterviewRequest represents the body of POST /interviews
// @Description Job posting used to generate interview questions
type CreateInterviewRequest struct {
	JobTitle        string   `json:"job_title" example:"Backend Engineer"`
	JobRequirements string   `json:"job_requirements" example:"3+ years of Go, PostgreSQL, Redis"`
	KeySkills       []string `json:"key_skills" example:"Go,SQL"`
}

// QuestionResponse is a full question including the evaluator hint
type QuestionResponse struct {
	ID            int    `json:"id"`
	Text          string `json:"text"`
	ExpectedFocus string `json:"expected_focus"`
}

// CandidateQuestionResponse is the candidate-safe question view
type CandidateQuestionResponse struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// CreateInterviewResponse is returned to the interview creator
// @Description Created interview with share links and HR access code
type CreateInterviewResponse struct {
	ID           string             `json:"id"`
	HRAccessCode string             `json:"hr_access_code"`
	InterviewURL string             `json:"interview_url"` // 지원자에게 공유하는 링크
	ResultsURL   string             `json:"results_url"`   // HR 전용 결과 링크
	Questions    []QuestionResponse `json:"questions"`
}

// CandidateInterviewResponse is what a candidate sees before answering
type CandidateInterviewResponse struct {
	ID        string                      `json:"id"`
	JobTitle  string                      `json:"job_title"`
	Questions []CandidateQuestionResponse `json:"questions"`
}

// AnswerRequest is one answer inside a submission
type AnswerRequest struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

// SubmitAnswersRequest represents the body of POST /interviews/{id}/submit
// @Description Candidate answers
type SubmitAnswersRequest struct {
	CandidateName  string          `json:"candidate_name" example:"Jane Doe"`
	CandidateEmail string          `json:"candidate_email" example:"jane@example.com"`
	Answers        []AnswerRequest `json:"answers"`
}

// SubmitAnswersResponse acknowledges a submission
type SubmitAnswersResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// InterviewDetailResponse is the HR view of an interview
type InterviewDetailResponse struct {
	ID              string             `json:"id"`
	JobTitle        string             `json:"job_title"`
	JobRequirements string             `json:"job_requirements"`
	KeySkills       []string           `json:"key_skills"`
	Questions       []QuestionResponse `json:"questions"`
	CreatedAt       time.Time          `json:"created_at"`
}

// ScoreResponse is the evaluation of a single answer
type ScoreResponse struct {
	QuestionID int    `json:"question_id"`
	Score      int    `json:"score"`
	Comment    string `json:"comment"`
}

// SubmissionResponse is one evaluated candidate submission
type SubmissionResponse struct {
	ID             string          `json:"id"`
	CandidateName  string          `json:"candidate_name"`
	CandidateEmail string          `json:"candidate_email"`
	Answers        []AnswerRequest `json:"answers"`
	Scores         []ScoreResponse `json:"scores"`
	OverallScore   float64         `json:"overall_score"`
	Recommendation string          `json:"recommendation"`
	AISummary      string          `json:"ai_summary"`
	SubmittedAt    time.Time       `json:"submitted_at"`
}

// ResultsSummary counts submissions per recommendation tier
type ResultsSummary struct {
	Total          int `json:"total"`
	Recommended    int `json:"recommended"`
	Maybe          int `json:"maybe"`
	NotRecommended int `json:"not_recommended"`
}

// ResultsResponse is the HR results report
// @Description Interview detail with all submissions, best score first
type ResultsResponse struct {
	Interview   InterviewDetailResponse `json:"interview"`
	Submissions []SubmissionResponse    `json:"submissions"`
	Summary     ResultsSummary          `json:"summary"`
}
