package evaluator

import (
	"context"
	"errors"
	"time"

	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const (
	questionsTemperature  = 0.7
	questionsMaxTokens    = 2000
	evaluationTemperature = 0.3
	evaluationMaxTokens   = 1500
	defaultTimeout        = 60 * time.Second
)

var errModelUnavailable = errors.New("llm model not configured")

// llmGateway implements domain.EvaluationGateway on top of a langchaingo model.
type llmGateway struct {
	model   llms.Model
	timeout time.Duration
}

// NewLLMGateway wraps model. A nil model makes every call return fallback content.
func NewLLMGateway(model llms.Model, timeout time.Duration) domain.EvaluationGateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &llmGateway{model: model, timeout: timeout}
}

func (g *llmGateway) GenerateQuestions(ctx context.Context, jobTitle, jobRequirements string, keySkills []string) []domain.Question {
	l := logger.Get()
	prompt := buildQuestionsPrompt(jobTitle, jobRequirements, keySkills)

	raw, err := g.call(ctx, prompt, questionsTemperature, questionsMaxTokens)
	if err != nil {
		l.Warn("Question generation failed, using fallback questions", zap.String("job_title", jobTitle), zap.Error(err))
		return domain.FallbackQuestions(jobTitle)
	}

	questions, err := parseQuestions(raw)
	if err != nil {
		l.Warn("Malformed question set from LLM, using fallback questions",
			zap.String("job_title", jobTitle),
			zap.Error(err),
			zap.String("raw_response", raw))
		return domain.FallbackQuestions(jobTitle)
	}

	l.Debug("Generated interview questions", zap.String("job_title", jobTitle), zap.Int("count", len(questions)))
	return questions
}

func (g *llmGateway) EvaluateSubmission(ctx context.Context, interview *domain.Interview, answers []domain.Answer) *domain.Evaluation {
	l := logger.Get()
	prompt := buildEvaluationPrompt(interview, answers)

	raw, err := g.call(ctx, prompt, evaluationTemperature, evaluationMaxTokens)
	if err != nil {
		l.Warn("Submission evaluation failed, using fallback evaluation", zap.String("interview_id", interview.ID), zap.Error(err))
		return domain.FallbackEvaluation(answers)
	}

	eval, err := parseEvaluation(raw)
	if err != nil {
		l.Warn("Malformed evaluation from LLM, using fallback evaluation",
			zap.String("interview_id", interview.ID),
			zap.Error(err),
			zap.String("raw_response", raw))
		return domain.FallbackEvaluation(answers)
	}
	return eval
}

func (g *llmGateway) call(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	if g.model == nil {
		return "", domain.NewUpstreamError("evaluation gateway unavailable", errModelUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", domain.NewUpstreamError("LLM request timed out", err)
		}
		return "", domain.NewUpstreamError("LLM call failed", err)
	}
	return response, nil
}
