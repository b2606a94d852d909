package evaluator

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"ai-interviewer/internal/domain"
)

// cleanResponse strips reasoning blocks and markdown fences around the model output.
func cleanResponse(raw string) string {
	s := strings.TrimSpace(raw)

	for {
		start := strings.Index(s, "<think>")
		if start == -1 {
			break
		}
		end := strings.Index(s[start:], "</think>")
		if end == -1 {
			s = s[:start]
			break
		}
		s = s[:start] + s[start+end+len("</think>"):]
	}

	if i := strings.Index(s, "```json"); i != -1 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j != -1 {
			s = s[:j]
		}
	} else if i := strings.Index(s, "```"); i != -1 {
		s = s[i+len("```"):]
		if j := strings.Index(s, "```"); j != -1 {
			s = s[:j]
		}
	}
	return strings.TrimSpace(s)
}

// extractJSON returns the outermost open..close span of s.
func extractJSON(s string, open, close byte) (string, error) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON %c...%c found in response", open, close)
	}
	return s[start : end+1], nil
}

type questionPayload struct {
	Text          string `json:"text"`
	ExpectedFocus string `json:"expected_focus"`
}

// parseQuestions accepts exactly domain.QuestionCount non-empty questions and renumbers them 1..N.
func parseQuestions(raw string) ([]domain.Question, error) {
	body, err := extractJSON(cleanResponse(raw), '[', ']')
	if err != nil {
		return nil, err
	}
	var payload []questionPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
	}
	if len(payload) != domain.QuestionCount {
		return nil, fmt.Errorf("expected %d questions, got %d", domain.QuestionCount, len(payload))
	}

	questions := make([]domain.Question, 0, len(payload))
	for i, p := range payload {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			return nil, fmt.Errorf("question %d has no text", i+1)
		}
		questions = append(questions, domain.Question{
			ID:            i + 1,
			Text:          text,
			ExpectedFocus: strings.TrimSpace(p.ExpectedFocus),
		})
	}
	return questions, nil
}

type evaluationPayload struct {
	Scores []struct {
		QuestionID int     `json:"question_id"`
		Score      float64 `json:"score"`
		Comment    string  `json:"comment"`
	} `json:"scores"`
	OverallScore   *float64 `json:"overall_score"`
	Recommendation *string  `json:"recommendation"`
	Summary        string   `json:"summary"`
}

func clampScore(score float64) int {
	return int(math.Max(1, math.Min(5, math.Round(score))))
}

// parseEvaluation keeps omitted fields nil so the caller can apply its defaults.
func parseEvaluation(raw string) (*domain.Evaluation, error) {
	body, err := extractJSON(cleanResponse(raw), '{', '}')
	if err != nil {
		return nil, err
	}
	var payload evaluationPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluation: %w", err)
	}

	eval := &domain.Evaluation{
		Scores:  make([]domain.QuestionScore, 0, len(payload.Scores)),
		Summary: strings.TrimSpace(payload.Summary),
	}
	for _, s := range payload.Scores {
		eval.Scores = append(eval.Scores, domain.QuestionScore{
			QuestionID: s.QuestionID,
			Score:      clampScore(s.Score),
			Comment:    s.Comment,
		})
	}

	if payload.OverallScore != nil {
		overall := math.Max(0, math.Min(5, *payload.OverallScore))
		eval.OverallScore = &overall
	}
	if payload.Recommendation != nil {
		rec := domain.Recommendation(strings.ToLower(strings.TrimSpace(*payload.Recommendation)))
		if !rec.Valid() && eval.OverallScore != nil {
			rec = domain.RecommendationForScore(*eval.OverallScore)
		}
		if rec.Valid() {
			eval.Recommendation = &rec
		}
	}
	return eval, nil
}
