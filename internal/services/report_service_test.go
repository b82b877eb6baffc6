package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/models"
	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func newTestReportService(repo DailyReportRepository, links ...*models.CoachAthleteLink) (*ReportService, *logCapture) {
	logger, capture := newCaptureLogger()
	if repo == nil {
		repo = &MockDailyReportRepository{}
	}
	linkGate := access.NewLinkGate(&staticLinkReader{links: links})
	return NewReportService(repo, linkGate, access.NewRecordGate(linkGate), logger), capture
}

func TestReportService_LinkedCoachGetsKPISummary(t *testing.T) {
	repo := &MockDailyReportRepository{
		ListForAthleteFunc: func(ctx context.Context, athleteID string, from, to time.Time) ([]*models.DailyReport, error) {
			return []*models.DailyReport{
				{UserID: athleteID, Weight: floatPtr(80), Sleep: floatPtr(7), Mood: intPtr(4)},
				{UserID: athleteID, Weight: floatPtr(82), Sleep: floatPtr(8)},
			}, nil
		},
	}

	svc, _ := newTestReportService(repo, activeLink("coach-1", "athlete-1"))
	summary, err := svc.GetKPISummary(context.Background(), testCoach, "athlete-1",
		time.Now().AddDate(0, 0, -7), time.Now())

	assert.NoError(t, err)
	assert.Equal(t, 2, summary.ReportCount)
	assert.Equal(t, 81.0, *summary.AvgWeight)
	assert.Equal(t, 7.5, *summary.AvgSleep)
	assert.Equal(t, 4.0, *summary.AvgMood)
}

func TestReportService_UnlinkedCoachForbidden(t *testing.T) {
	svc, capture := newTestReportService(nil)

	summary, err := svc.GetKPISummary(context.Background(), testCoach, "athlete-1",
		time.Now().AddDate(0, 0, -7), time.Now())

	assert.Nil(t, summary)
	assert.Equal(t, models.ErrGetDailyReportForbidden, err)
	assert.Empty(t, capture.errorMessages())
}

func TestReportService_ExpiredLinkForbidden(t *testing.T) {
	past := time.Now().AddDate(0, 0, -1)
	link := activeLink("coach-1", "athlete-1")
	link.EndDate = &past

	svc, _ := newTestReportService(nil, link)
	summary, err := svc.GetKPISummary(context.Background(), testCoach, "athlete-1",
		time.Now().AddDate(0, 0, -7), time.Now())

	assert.Nil(t, summary)
	assert.Equal(t, models.ErrGetDailyReportForbidden, err)
}

func TestReportService_AthleteReadsOwnSummaryOnly(t *testing.T) {
	svc, _ := newTestReportService(nil)

	_, err := svc.GetKPISummary(context.Background(), testAthlete, "athlete-1",
		time.Now().AddDate(0, 0, -7), time.Now())
	assert.NoError(t, err)

	summary, err := svc.GetKPISummary(context.Background(), testAthlete, "athlete-2",
		time.Now().AddDate(0, 0, -7), time.Now())
	assert.Nil(t, summary)
	assert.Equal(t, models.ErrGetDailyReportForbidden, err)
}

func TestReportService_LinkLookupErrorLoggedAndWrapped(t *testing.T) {
	logger, capture := newCaptureLogger()
	linkGate := access.NewLinkGate(&staticLinkReader{err: errors.New("DB Error")})
	svc := NewReportService(&MockDailyReportRepository{}, linkGate, access.NewRecordGate(linkGate), logger)

	summary, err := svc.GetKPISummary(context.Background(), testCoach, "athlete-1",
		time.Now().AddDate(0, 0, -7), time.Now())

	assert.Nil(t, summary)
	assert.Equal(t, models.ErrGetDailyReportFailed, err)
	assert.Equal(t, []string{"GetKPISummaryUsecase#execute => DB Error"}, capture.errorMessages())
}

func TestReportService_GetDailyReportThroughLink(t *testing.T) {
	repo := &MockDailyReportRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.DailyReport, error) {
			return &models.DailyReport{ID: id, UserID: "athlete-1", CreatedBy: "athlete-1"}, nil
		},
	}

	svc, _ := newTestReportService(repo, activeLink("coach-1", "athlete-1"))
	report, err := svc.GetDailyReport(context.Background(), testCoach, "rep-1")

	assert.NoError(t, err)
	assert.Equal(t, "rep-1", report.ID)

	svcUnlinked, _ := newTestReportService(repo)
	report, err = svcUnlinked.GetDailyReport(context.Background(), testCoach, "rep-1")
	assert.Nil(t, report)
	assert.Equal(t, models.ErrGetDailyReportForbidden, err)
}

func TestReportService_CreateForcesAthleteSubjectToSelf(t *testing.T) {
	svc, _ := newTestReportService(nil)

	created, err := svc.CreateDailyReport(context.Background(), testAthlete,
		&models.DailyReport{UserID: "athlete-2"})

	assert.NoError(t, err)
	assert.Equal(t, "athlete-1", created.UserID)
	assert.Equal(t, "athlete-1", created.CreatedBy)
}
