package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pulsepoll/internal/model"
	"pulsepoll/internal/repository"
)

const (
	recentWindow = 7 * 24 * time.Hour

	completionHighFloor   = 50.0
	completionMediumFloor = 70.0
	slowResponseRecentMax = 5
	slowResponseTotalMin  = 10
	dropoffRateThreshold  = 0.3
)

var severityWeights = map[model.IssueSeverity]int{
	model.SeverityHigh:   40,
	model.SeverityMedium: 25,
	model.SeverityLow:    10,
}

var issueRecommendations = map[model.AttentionIssueType][]string{
	model.IssueLowCompletion: {
		"Shorten the survey or mark fewer questions as required",
		"Move the most important questions to the top",
	},
	model.IssueNoResponses: {
		"Share the survey link again with your audience",
		"Check that the survey is still visible to respondents",
	},
	model.IssueHighDropoff: {
		"Simplify or split the question where respondents drop off",
	},
	model.IssueSlowResponse: {
		"Send a reminder to invited respondents",
	},
}

// AttentionService scores how urgently a survey needs its owner's attention.
// Detection is a pure function of the responses and the supplied "now".
type AttentionService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
}

// NewAttentionService creates a new attention service
func NewAttentionService(surveyRepo repository.SurveyRepo, responseRepo repository.ResponseRepo) *AttentionService {
	return &AttentionService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
	}
}

// Analyze runs every issue rule over one survey's responses and produces the
// bounded score, the issue list and de-duplicated recommendations.
func (s *AttentionService) Analyze(survey *model.SurveyDefinition, responses []*model.ResponseRecord, now time.Time) *model.AttentionReport {
	report := &model.AttentionReport{
		SurveyID:        survey.ID,
		Title:           survey.Title,
		Issues:          []model.AttentionIssue{},
		Recommendations: []string{},
	}

	if issue := s.checkCompletion(survey.Questions, responses); issue != nil {
		report.Issues = append(report.Issues, *issue)
	}
	if issue := s.checkRecency(responses, now); issue != nil {
		report.Issues = append(report.Issues, *issue)
	}
	if issue := s.checkDropoff(survey.Questions, responses); issue != nil {
		report.Issues = append(report.Issues, *issue)
	}

	score := 0
	seen := map[string]bool{}
	for _, issue := range report.Issues {
		score += severityWeights[issue.Severity]
		for _, rec := range issueRecommendations[issue.Type] {
			if !seen[rec] {
				seen[rec] = true
				report.Recommendations = append(report.Recommendations, rec)
			}
		}
	}
	if score > 100 {
		score = 100
	}
	report.Score = score
	return report
}

// SurveysNeedingAttention scores every survey owned by ownerID and returns
// those at or above the threshold, highest score first.
func (s *AttentionService) SurveysNeedingAttention(ctx context.Context, ownerID string, threshold int, now time.Time) ([]*model.AttentionReport, error) {
	surveys, err := s.surveyRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	reports := []*model.AttentionReport{}
	for _, survey := range surveys {
		responses, err := s.responseRepo.ListBySurvey(ctx, survey.ID, repository.ResponseFilter{})
		if err != nil {
			return nil, err
		}
		report := s.Analyze(survey, responses, now)
		if report.Score >= threshold {
			reports = append(reports, report)
		}
	}

	sort.SliceStable(reports, func(i, j int) bool { return reports[i].Score > reports[j].Score })
	return reports, nil
}

// checkCompletion measures how many of the possible question slots across all
// responses actually hold an answer.
func (s *AttentionService) checkCompletion(questions []model.QuestionDefinition, responses []*model.ResponseRecord) *model.AttentionIssue {
	if len(questions) == 0 || len(responses) == 0 {
		return nil
	}
	answered := 0
	for _, r := range responses {
		for _, q := range questions {
			if r.HasAnswer(q.ID) {
				answered++
			}
		}
	}
	rate := float64(answered) / float64(len(questions)*len(responses)) * 100
	switch {
	case rate < completionHighFloor:
		return &model.AttentionIssue{
			Type:     model.IssueLowCompletion,
			Severity: model.SeverityHigh,
			Message:  fmt.Sprintf("Only %.0f%% of questions are being answered", rate),
		}
	case rate < completionMediumFloor:
		return &model.AttentionIssue{
			Type:     model.IssueLowCompletion,
			Severity: model.SeverityMedium,
			Message:  fmt.Sprintf("%.0f%% of questions are being answered", rate),
		}
	default:
		return nil
	}
}

// checkRecency flags surveys that have gone quiet or slowed down.
func (s *AttentionService) checkRecency(responses []*model.ResponseRecord, now time.Time) *model.AttentionIssue {
	total := len(responses)
	if total == 0 {
		return nil
	}
	cutoff := now.UTC().Add(-recentWindow)
	recent := 0
	for _, r := range responses {
		if r.SubmittedAt.UTC().After(cutoff) {
			recent++
		}
	}
	if recent == 0 {
		return &model.AttentionIssue{
			Type:     model.IssueNoResponses,
			Severity: model.SeverityHigh,
			Message:  "No responses received in the last 7 days",
		}
	}
	if recent < slowResponseRecentMax && total > slowResponseTotalMin {
		return &model.AttentionIssue{
			Type:     model.IssueSlowResponse,
			Severity: model.SeverityMedium,
			Message:  fmt.Sprintf("Only %d responses in the last 7 days", recent),
		}
	}
	return nil
}

// checkDropoff walks consecutive question pairs in definition order and
// reports the first pair where answering falls off sharply. Later drops are
// usually downstream effects of the first, so only one is reported.
func (s *AttentionService) checkDropoff(questions []model.QuestionDefinition, responses []*model.ResponseRecord) *model.AttentionIssue {
	if len(questions) < 2 || len(responses) == 0 {
		return nil
	}
	counts := make([]int, len(questions))
	for i, q := range questions {
		for _, r := range responses {
			if r.HasAnswer(q.ID) {
				counts[i]++
			}
		}
	}
	for i := 0; i < len(counts)-1; i++ {
		if counts[i] == 0 {
			continue
		}
		drop := float64(counts[i]-counts[i+1]) / float64(counts[i])
		if drop > dropoffRateThreshold {
			return &model.AttentionIssue{
				Type:     model.IssueHighDropoff,
				Severity: model.SeverityHigh,
				Message: fmt.Sprintf("%.0f%% of respondents stop after %q",
					drop*100, questions[i].Text),
			}
		}
	}
	return nil
}
