package domain

import "fmt"

const (
	FallbackScore          = 3
	FallbackScoreComment   = "Evaluation pending"
	FallbackOverallScore   = 3.0
	FallbackSummary        = "Unable to fully evaluate responses. Please review manually."
	FallbackRecommendation = RecommendationMaybe
)

// FallbackQuestions is the generic question set used when generation fails.
func FallbackQuestions(jobTitle string) []Question {
	return []Question{
		{ID: 1, Text: fmt.Sprintf("Tell me about your experience relevant to %s.", jobTitle), ExpectedFocus: "Relevant experience"},
		{ID: 2, Text: "What interests you about this position?", ExpectedFocus: "Motivation and fit"},
		{ID: 3, Text: "Describe a challenging project you've worked on.", ExpectedFocus: "Problem-solving skills"},
		{ID: 4, Text: "How do you handle tight deadlines?", ExpectedFocus: "Time management"},
		{ID: 5, Text: "What are your key strengths?", ExpectedFocus: "Self-awareness"},
		{ID: 6, Text: "Do you have any questions about the role?", ExpectedFocus: "Engagement and curiosity"},
	}
}

// FallbackEvaluation scores every answer as average and asks for manual review.
func FallbackEvaluation(answers []Answer) *Evaluation {
	scores := make([]QuestionScore, 0, len(answers))
	for _, a := range answers {
		scores = append(scores, QuestionScore{QuestionID: a.QuestionID, Score: FallbackScore, Comment: FallbackScoreComment})
	}
	overall := FallbackOverallScore
	recommendation := FallbackRecommendation
	return &Evaluation{
		Scores:         scores,
		OverallScore:   &overall,
		Recommendation: &recommendation,
		Summary:        FallbackSummary,
	}
}
