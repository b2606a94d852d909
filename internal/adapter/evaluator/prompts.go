package evaluator

import (
	"fmt"
	"strings"

	"ai-interviewer/internal/domain"
)

const questionsPrompt = `You are an expert HR interviewer. Generate 6 screening interview questions for the following position:

Job Title: %s
Requirements: %s
Key Skills: %s

Generate questions that:
1. Assess relevant experience and skills
2. Include behavioral questions (STAR method suitable)
3. Include one technical/practical scenario
4. Are answerable in text format (no video/audio required)

Return a JSON array with exactly 6 questions. Each question should have:
- "id": number (1-6)
- "text": the question text
- "expected_focus": what a good answer should address

Example format:
[
  {"id": 1, "text": "Tell me about...", "expected_focus": "Looking for specific examples of..."}
]

Return ONLY valid JSON, no markdown or explanation.`

const evaluationPrompt = `You are an expert HR interviewer evaluating a candidate's screening interview responses.

Position: %s
Requirements: %s

Questions and Expected Focus:
%s

Candidate's Answers:
%s

Evaluate each answer on a scale of 1-5:
- 5: Excellent - comprehensive, specific examples, clear communication
- 4: Good - solid response with relevant details
- 3: Average - acceptable but lacks depth
- 2: Below Average - vague or partially relevant
- 1: Poor - irrelevant or very weak response

Return a JSON object with:
- "scores": array of {"question_id": number, "score": 1-5, "comment": "brief feedback"}
- "overall_score": weighted average (number 1-5)
- "recommendation": "recommend" (>=4.0), "maybe" (3.0-3.9), or "not_recommended" (<3.0)
- "summary": 2-3 sentence overall assessment

Return ONLY valid JSON.`

func buildQuestionsPrompt(jobTitle, jobRequirements string, keySkills []string) string {
	skills := "general skills"
	if len(keySkills) > 0 {
		skills = strings.Join(keySkills, ", ")
	}
	return fmt.Sprintf(questionsPrompt, jobTitle, jobRequirements, skills)
}

func buildEvaluationPrompt(interview *domain.Interview, answers []domain.Answer) string {
	questionLines := make([]string, 0, len(interview.Questions))
	for _, q := range interview.Questions {
		questionLines = append(questionLines, fmt.Sprintf("Q%d: %s (Focus: %s)", q.ID, q.Text, q.ExpectedFocus))
	}
	answerLines := make([]string, 0, len(answers))
	for _, a := range answers {
		answerLines = append(answerLines, fmt.Sprintf("A%d: %s", a.QuestionID, a.Answer))
	}
	return fmt.Sprintf(evaluationPrompt,
		interview.JobTitle, interview.JobRequirements,
		strings.Join(questionLines, "\n"), strings.Join(answerLines, "\n"))
}
