package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/dto"
	"ai-interviewer/internal/logger"
	"ai-interviewer/internal/metrics"
	"ai-interviewer/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	NoInterviewsRemainingMessage = "No interviews remaining. Please purchase more interviews."
	SubmissionThankYouMessage    = "Thank you for completing the interview. The hiring team will review your responses."
	InvalidAccessCodeMessage     = "Invalid access code"
)

// InterviewService defines the interface for interview-related operations
type InterviewService interface {
	CreateInterview(ctx context.Context, deviceID string, req *dto.CreateInterviewRequest) (*dto.CreateInterviewResponse, error)
	GetInterview(ctx context.Context, interviewID string) (*dto.CandidateInterviewResponse, error)
	SubmitAnswers(ctx context.Context, interviewID string, req *dto.SubmitAnswersRequest) (*dto.SubmitAnswersResponse, error)
	GetResults(ctx context.Context, interviewID, accessCode string) (*dto.ResultsResponse, error)
}

// InterviewServiceDeps groups the collaborators of the interview flow.
type InterviewServiceDeps struct {
	Interviews  domain.InterviewRepository
	Submissions domain.SubmissionRepository
	TxManager   domain.TransactionManager
	Ledger      CreditLedger
	Gateway     domain.EvaluationGateway
	Locker      domain.DeviceLocker // optional
	ViewCache   InterviewViewCache  // optional
	Metrics     *metrics.Metrics
	// PublicBaseURL prefixes the share links; empty keeps them relative.
	PublicBaseURL string
}

type interviewService struct {
	interviews    domain.InterviewRepository
	submissions   domain.SubmissionRepository
	txManager     domain.TransactionManager
	ledger        CreditLedger
	gateway       domain.EvaluationGateway
	locker        domain.DeviceLocker
	viewCache     InterviewViewCache
	metrics       *metrics.Metrics
	publicBaseURL string
	sfGroup       singleflight.Group
	now           func() time.Time
}

// NewInterviewService creates a new instance of interviewService
func NewInterviewService(deps InterviewServiceDeps) InterviewService {
	viewCache := deps.ViewCache
	if viewCache == nil {
		viewCache = noopInterviewViewCache{}
	}
	return &interviewService{
		interviews:    deps.Interviews,
		submissions:   deps.Submissions,
		txManager:     deps.TxManager,
		ledger:        deps.Ledger,
		gateway:       deps.Gateway,
		locker:        deps.Locker,
		viewCache:     viewCache,
		metrics:       deps.Metrics,
		publicBaseURL: strings.TrimRight(deps.PublicBaseURL, "/"),
		now:           time.Now,
	}
}

// lockDevice serialises credit-gated work per device. When the lock cannot be taken
// the flow continues unlocked and the conditional consume remains the guard.
func (s *interviewService) lockDevice(ctx context.Context, deviceID string) func() {
	if s.locker == nil {
		return func() {}
	}
	release, err := s.locker.Lock(ctx, deviceID)
	if err != nil {
		logger.Get().Warn("Proceeding without device lock", zap.String("device_id", deviceID), zap.Error(err))
		return func() {}
	}
	return release
}

func (s *interviewService) CreateInterview(ctx context.Context, deviceID string, req *dto.CreateInterviewRequest) (*dto.CreateInterviewResponse, error) {
	release := s.lockDevice(ctx, deviceID)
	defer release()

	allowance, err := s.ledger.CheckAllowance(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !allowance.Allowed {
		return nil, domain.NewPaymentRequiredError(NoInterviewsRemainingMessage)
	}

	keySkills := make([]string, 0, len(req.KeySkills))
	for _, skill := range req.KeySkills {
		keySkills = append(keySkills, strings.TrimSpace(skill))
	}
	jobTitle := strings.TrimSpace(req.JobTitle)

	questions := s.gateway.GenerateQuestions(ctx, jobTitle, req.JobRequirements, keySkills)

	interview := &domain.Interview{
		ID:              util.NewULID(),
		JobTitle:        jobTitle,
		JobRequirements: req.JobRequirements,
		KeySkills:       keySkills,
		Questions:       questions,
		HRAccessCode:    util.NewAccessCode(),
		CreatedAt:       s.now().UTC(),
	}

	// 인터뷰 저장과 크레딧 차감은 같은 트랜잭션에서 커밋된다
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.interviews.Create(txCtx, interview); err != nil {
			return domain.NewInternalError("Failed to create interview", err)
		}
		return s.ledger.Consume(txCtx, deviceID, allowance.Kind)
	})
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		return nil, domain.NewInternalError("Failed to create interview", err)
	}

	s.metrics.InterviewCreated()
	logger.Get().Info("Interview created",
		zap.String("interview_id", interview.ID),
		zap.String("device_id", deviceID),
		zap.String("credit_kind", string(allowance.Kind)))

	return &dto.CreateInterviewResponse{
		ID:           interview.ID,
		HRAccessCode: interview.HRAccessCode,
		InterviewURL: fmt.Sprintf("%s/interview/%s", s.publicBaseURL, interview.ID),
		ResultsURL:   fmt.Sprintf("%s/results/%s?code=%s", s.publicBaseURL, interview.ID, interview.HRAccessCode),
		Questions:    toQuestionResponses(interview.Questions),
	}, nil
}

func (s *interviewService) GetInterview(ctx context.Context, interviewID string) (*dto.CandidateInterviewResponse, error) {
	cached, err := s.viewCache.Get(ctx, interviewID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrInterviewViewNotCached) {
		logger.Get().Warn("Interview view cache read failed, loading from store",
			zap.String("interview_id", interviewID), zap.Error(err))
	}

	res, err, shared := s.sfGroup.Do(interviewID, func() (interface{}, error) {
		interview, err := s.interviews.GetByID(ctx, interviewID)
		if err != nil {
			return nil, domain.NewInternalError("Failed to get interview", err)
		}
		if interview == nil {
			return nil, domain.NewInterviewNotFoundError(interviewID)
		}

		view := toCandidateView(interview)
		if err := s.viewCache.Put(ctx, view); err != nil {
			logger.Get().Warn("Failed to cache interview view", zap.String("interview_id", interviewID), zap.Error(err))
		}
		return view, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Interview view load was shared", zap.String("interview_id", interviewID))
	}

	view, ok := res.(*dto.CandidateInterviewResponse)
	if !ok {
		return nil, domain.NewInternalError(fmt.Sprintf("unexpected type from singleflight for interview view: %T", res), nil)
	}
	return view, nil
}

func (s *interviewService) SubmitAnswers(ctx context.Context, interviewID string, req *dto.SubmitAnswersRequest) (*dto.SubmitAnswersResponse, error) {
	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get interview", err)
	}
	if interview == nil {
		return nil, domain.NewInterviewNotFoundError(interviewID)
	}

	email := domain.NormalizeEmail(req.CandidateEmail)
	exists, err := s.submissions.ExistsForCandidate(ctx, interviewID, email)
	if err != nil {
		return nil, domain.NewInternalError("Failed to check existing submission", err)
	}
	if exists {
		return nil, domain.NewAlreadySubmittedError(nil)
	}

	answers := make([]domain.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, domain.Answer{QuestionID: a.QuestionID, Answer: a.Answer})
	}

	evaluation := s.gateway.EvaluateSubmission(ctx, interview, answers)

	submission := &domain.Submission{
		ID:             util.NewULID(),
		InterviewID:    interviewID,
		CandidateName:  strings.TrimSpace(req.CandidateName),
		CandidateEmail: email,
		Answers:        answers,
		Scores:         evaluation.Scores,
		OverallScore:   0,
		Recommendation: domain.RecommendationPending,
		AISummary:      evaluation.Summary,
		SubmittedAt:    s.now().UTC(),
	}
	if evaluation.OverallScore != nil {
		submission.OverallScore = *evaluation.OverallScore
	}
	if evaluation.Recommendation != nil {
		submission.Recommendation = *evaluation.Recommendation
	}

	if err := s.submissions.Create(ctx, submission); err != nil {
		if errors.Is(err, domain.ErrDuplicateSubmission) {
			return nil, domain.NewAlreadySubmittedError(err)
		}
		return nil, domain.NewInternalError("Failed to save submission", err)
	}

	s.metrics.SubmissionReceived()
	logger.Get().Info("Submission received",
		zap.String("interview_id", interviewID),
		zap.String("submission_id", submission.ID),
		zap.String("recommendation", string(submission.Recommendation)))

	return &dto.SubmitAnswersResponse{Success: true, Message: SubmissionThankYouMessage}, nil
}

func (s *interviewService) GetResults(ctx context.Context, interviewID, accessCode string) (*dto.ResultsResponse, error) {
	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get interview", err)
	}
	if interview == nil {
		return nil, domain.NewInterviewNotFoundError(interviewID)
	}
	if !util.AccessCodeMatches(interview.HRAccessCode, accessCode) {
		logger.Get().Warn("Rejected results request with invalid access code", zap.String("interview_id", interviewID))
		return nil, domain.NewForbiddenError(InvalidAccessCodeMessage)
	}

	submissions, err := s.submissions.ListByInterview(ctx, interviewID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list submissions", err)
	}

	tally := domain.TallySubmissions(submissions)
	resp := &dto.ResultsResponse{
		Interview: dto.InterviewDetailResponse{
			ID:              interview.ID,
			JobTitle:        interview.JobTitle,
			JobRequirements: interview.JobRequirements,
			KeySkills:       nonNilStrings(interview.KeySkills),
			Questions:       toQuestionResponses(interview.Questions),
			CreatedAt:       interview.CreatedAt,
		},
		Submissions: make([]dto.SubmissionResponse, 0, len(submissions)),
		Summary: dto.ResultsSummary{
			Total:          tally.Total,
			Recommended:    tally.Recommended,
			Maybe:          tally.Maybe,
			NotRecommended: tally.NotRecommended,
		},
	}
	for _, sub := range submissions {
		resp.Submissions = append(resp.Submissions, toSubmissionResponse(sub))
	}
	return resp, nil
}

func toQuestionResponses(questions []domain.Question) []dto.QuestionResponse {
	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.QuestionResponse{ID: q.ID, Text: q.Text, ExpectedFocus: q.ExpectedFocus})
	}
	return out
}

// toCandidateView drops expected_focus, which is for the evaluator and HR only.
func toCandidateView(interview *domain.Interview) *dto.CandidateInterviewResponse {
	questions := make([]dto.CandidateQuestionResponse, 0, len(interview.Questions))
	for _, q := range interview.Questions {
		questions = append(questions, dto.CandidateQuestionResponse{ID: q.ID, Text: q.Text})
	}
	return &dto.CandidateInterviewResponse{ID: interview.ID, JobTitle: interview.JobTitle, Questions: questions}
}

func toSubmissionResponse(sub *domain.Submission) dto.SubmissionResponse {
	answers := make([]dto.AnswerRequest, 0, len(sub.Answers))
	for _, a := range sub.Answers {
		answers = append(answers, dto.AnswerRequest{QuestionID: a.QuestionID, Answer: a.Answer})
	}
	scores := make([]dto.ScoreResponse, 0, len(sub.Scores))
	for _, sc := range sub.Scores {
		scores = append(scores, dto.ScoreResponse{QuestionID: sc.QuestionID, Score: sc.Score, Comment: sc.Comment})
	}
	return dto.SubmissionResponse{
		ID:             sub.ID,
		CandidateName:  sub.CandidateName,
		CandidateEmail: sub.CandidateEmail,
		Answers:        answers,
		Scores:         scores,
		OverallScore:   sub.OverallScore,
		Recommendation: string(sub.Recommendation),
		AISummary:      sub.AISummary,
		SubmittedAt:    sub.SubmittedAt,
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
