package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/models"
)

type DailyReportRepository interface {
	GetByID(ctx context.Context, id string) (*models.DailyReport, error)
	ListForAthlete(ctx context.Context, athleteID string, from, to time.Time) ([]*models.DailyReport, error)
	Create(ctx context.Context, report *models.DailyReport) (*models.DailyReport, error)
}

// ReportService handles daily reports and their KPI aggregates. A coach may
// read an athlete's reports only through a currently-valid delegation link;
// list scoping of catalog resources never consults the link gate, this is the
// one surface that does.
type ReportService struct {
	repo     DailyReportRepository
	linkGate *access.LinkGate
	gate     *access.RecordGate
	logger   *slog.Logger
}

func NewReportService(repo DailyReportRepository, linkGate *access.LinkGate, gate *access.RecordGate, logger *slog.Logger) *ReportService {
	return &ReportService{
		repo:     repo,
		linkGate: linkGate,
		gate:     gate,
		logger:   logger,
	}
}

// GetKPISummary aggregates an athlete's daily reports over a date range.
func (s *ReportService) GetKPISummary(ctx context.Context, actor models.Actor, athleteID string, from, to time.Time) (*models.KPISummary, error) {
	switch actor.Role {
	case models.RoleAdmin:
		// unconditional bypass
	case models.RoleAthlete:
		if athleteID != actor.ID {
			return nil, models.ErrGetDailyReportForbidden
		}
	case models.RoleCoach:
		linked, err := s.linkGate.IsLinked(ctx, actor.ID, athleteID)
		if err != nil {
			logExecFailure(s.logger, "GetKPISummaryUsecase", err)
			return nil, models.ErrGetDailyReportFailed
		}
		if !linked {
			return nil, models.ErrGetDailyReportForbidden
		}
	default:
		return nil, models.ErrGetDailyReportForbidden
	}

	reports, err := s.repo.ListForAthlete(ctx, athleteID, from, to)
	if err != nil {
		logExecFailure(s.logger, "GetKPISummaryUsecase", err)
		return nil, models.ErrGetDailyReportFailed
	}

	return summarize(athleteID, from, to, reports), nil
}

func (s *ReportService) GetDailyReport(ctx context.Context, actor models.Actor, id string) (*models.DailyReport, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		logExecFailure(s.logger, "GetDailyReportUsecase", err)
		return nil, models.ErrGetDailyReportFailed
	}

	ok, err := s.gate.CanAccess(ctx, actor, access.RecordRef{
		CreatedBy: report.CreatedBy,
		SubjectID: report.UserID,
	}, access.IntentRead)
	if err != nil {
		logExecFailure(s.logger, "GetDailyReportUsecase", err)
		return nil, models.ErrGetDailyReportFailed
	}
	if !ok {
		return nil, models.ErrGetDailyReportForbidden
	}

	return report, nil
}

func (s *ReportService) CreateDailyReport(ctx context.Context, actor models.Actor, report *models.DailyReport) (*models.DailyReport, error) {
	report.CreatedBy = actor.ID
	if actor.Role == models.RoleAthlete {
		report.UserID = actor.ID
	}

	created, err := s.repo.Create(ctx, report)
	if err != nil {
		logExecFailure(s.logger, "CreateDailyReportUsecase", err)
		return nil, models.ErrInternalServer
	}

	return created, nil
}

func summarize(athleteID string, from, to time.Time, reports []*models.DailyReport) *models.KPISummary {
	summary := &models.KPISummary{
		AthleteID:   athleteID,
		From:        from,
		To:          to,
		ReportCount: len(reports),
	}

	var weightSum, sleepSum, moodSum float64
	var weightN, sleepN, moodN int
	for _, r := range reports {
		if r.Weight != nil {
			weightSum += *r.Weight
			weightN++
		}
		if r.Sleep != nil {
			sleepSum += *r.Sleep
			sleepN++
		}
		if r.Mood != nil {
			moodSum += float64(*r.Mood)
			moodN++
		}
	}

	if weightN > 0 {
		avg := weightSum / float64(weightN)
		summary.AvgWeight = &avg
	}
	if sleepN > 0 {
		avg := sleepSum / float64(sleepN)
		summary.AvgSleep = &avg
	}
	if moodN > 0 {
		avg := moodSum / float64(moodN)
		summary.AvgMood = &avg
	}

	return summary
}
