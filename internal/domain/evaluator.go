package domain

import "context"

// EvaluationGateway generates question sets and scores answer sets.
// Implementations never fail: upstream problems are masked with fallback content.
type EvaluationGateway interface {
	// GenerateQuestions returns exactly QuestionCount questions with ids 1..QuestionCount.
	GenerateQuestions(ctx context.Context, jobTitle, jobRequirements string, keySkills []string) []Question

	// EvaluateSubmission scores answers against the interview's questions.
	EvaluateSubmission(ctx context.Context, interview *Interview, answers []Answer) *Evaluation
}
