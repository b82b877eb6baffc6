package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/models"
)

// logCapture is an slog.Handler that records every log line so tests can
// assert exact messages and levels.
type logCapture struct {
	mu      sync.Mutex
	records []slog.Record
}

func (c *logCapture) Enabled(context.Context, slog.Level) bool { return true }

func (c *logCapture) Handle(_ context.Context, r slog.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, r)
	return nil
}

func (c *logCapture) WithAttrs([]slog.Attr) slog.Handler { return c }
func (c *logCapture) WithGroup(string) slog.Handler      { return c }

func (c *logCapture) errorMessages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var msgs []string
	for _, r := range c.records {
		if r.Level >= slog.LevelError {
			msgs = append(msgs, r.Message)
		}
	}
	return msgs
}

func newCaptureLogger() (*slog.Logger, *logCapture) {
	capture := &logCapture{}
	return slog.New(capture), capture
}

// staticAdminLister implements access.AdminLister with a fixed set
type staticAdminLister struct {
	ids map[string]struct{}
	err error
}

func (s *staticAdminLister) ListAdminIdentities(ctx context.Context) (map[string]struct{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ids, nil
}

// staticLinkReader implements access.LinkReader with fixed links
type staticLinkReader struct {
	links []*models.CoachAthleteLink
	err   error
}

func (s *staticLinkReader) ActiveLinksForCoach(ctx context.Context, coachID string) ([]*models.CoachAthleteLink, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.links, nil
}

func newTestResolver(adminIDs ...string) *access.ScopeResolver {
	ids := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		ids[id] = struct{}{}
	}
	return access.NewScopeResolver(access.NewRelationshipIndex(&staticAdminLister{ids: ids}))
}

func newTestRecordGate(links ...*models.CoachAthleteLink) *access.RecordGate {
	return access.NewRecordGate(access.NewLinkGate(&staticLinkReader{links: links}))
}

func activeLink(coachID, athleteID string) *models.CoachAthleteLink {
	start := time.Now().AddDate(0, -1, 0)
	return &models.CoachAthleteLink{
		ID:        "link-1",
		CoachID:   coachID,
		AthleteID: athleteID,
		StartDate: &start,
		IsActive:  true,
	}
}

// MockMealPlanRepository implements MealPlanRepository for testing
type MockMealPlanRepository struct {
	ListFunc    func(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.MealPlan], error)
	GetByIDFunc func(ctx context.Context, id string) (*models.MealPlan, error)
	CreateFunc  func(ctx context.Context, plan *models.MealPlan) (*models.MealPlan, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockMealPlanRepository) List(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.MealPlan], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, page, limit)
	}
	return &models.Page[models.MealPlan]{}, nil
}

func (m *MockMealPlanRepository) GetByID(ctx context.Context, id string) (*models.MealPlan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockMealPlanRepository) Create(ctx context.Context, plan *models.MealPlan) (*models.MealPlan, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, plan)
	}
	return plan, nil
}

func (m *MockMealPlanRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockProgramRepository implements ProgramRepository for testing
type MockProgramRepository struct {
	ListFunc    func(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.Program], error)
	GetByIDFunc func(ctx context.Context, id string) (*models.Program, error)
	CreateFunc  func(ctx context.Context, program *models.Program) (*models.Program, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockProgramRepository) List(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.Program], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, page, limit)
	}
	return &models.Page[models.Program]{}, nil
}

func (m *MockProgramRepository) GetByID(ctx context.Context, id string) (*models.Program, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockProgramRepository) Create(ctx context.Context, program *models.Program) (*models.Program, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, program)
	}
	return program, nil
}

func (m *MockProgramRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockProgramRecordRepository implements ProgramRecordRepository for testing
type MockProgramRecordRepository struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.ProgramRecord, error)
	UpdateFunc  func(ctx context.Context, id string, record *models.ProgramRecord) (*models.ProgramRecord, error)
}

func (m *MockProgramRecordRepository) GetByID(ctx context.Context, id string) (*models.ProgramRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockProgramRecordRepository) Update(ctx context.Context, id string, record *models.ProgramRecord) (*models.ProgramRecord, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, record)
	}
	return record, nil
}

// MockMealDayRepository implements MealDayRepository for testing
type MockMealDayRepository struct {
	ListFunc    func(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.MealDay], error)
	GetByIDFunc func(ctx context.Context, id string) (*models.MealDay, error)
	CreateFunc  func(ctx context.Context, day *models.MealDay) (*models.MealDay, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockMealDayRepository) List(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.MealDay], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, page, limit)
	}
	return &models.Page[models.MealDay]{}, nil
}

func (m *MockMealDayRepository) GetByID(ctx context.Context, id string) (*models.MealDay, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockMealDayRepository) Create(ctx context.Context, day *models.MealDay) (*models.MealDay, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, day)
	}
	return day, nil
}

func (m *MockMealDayRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockDailyReportRepository implements DailyReportRepository for testing
type MockDailyReportRepository struct {
	GetByIDFunc        func(ctx context.Context, id string) (*models.DailyReport, error)
	ListForAthleteFunc func(ctx context.Context, athleteID string, from, to time.Time) ([]*models.DailyReport, error)
	CreateFunc         func(ctx context.Context, report *models.DailyReport) (*models.DailyReport, error)
}

func (m *MockDailyReportRepository) GetByID(ctx context.Context, id string) (*models.DailyReport, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockDailyReportRepository) ListForAthlete(ctx context.Context, athleteID string, from, to time.Time) ([]*models.DailyReport, error) {
	if m.ListForAthleteFunc != nil {
		return m.ListForAthleteFunc(ctx, athleteID, from, to)
	}
	return []*models.DailyReport{}, nil
}

func (m *MockDailyReportRepository) Create(ctx context.Context, report *models.DailyReport) (*models.DailyReport, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, report)
	}
	return report, nil
}

// MockLinkRepository implements LinkRepository for testing
type MockLinkRepository struct {
	GetByIDFunc      func(ctx context.Context, id string) (*models.CoachAthleteLink, error)
	ListForCoachFunc func(ctx context.Context, coachID string, page, limit int) (*models.Page[models.CoachAthleteLink], error)
	CreateFunc       func(ctx context.Context, link *models.CoachAthleteLink) (*models.CoachAthleteLink, error)
	SetActiveFunc    func(ctx context.Context, id string, active bool) (*models.CoachAthleteLink, error)
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *MockLinkRepository) GetByID(ctx context.Context, id string) (*models.CoachAthleteLink, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockLinkRepository) ListForCoach(ctx context.Context, coachID string, page, limit int) (*models.Page[models.CoachAthleteLink], error) {
	if m.ListForCoachFunc != nil {
		return m.ListForCoachFunc(ctx, coachID, page, limit)
	}
	return &models.Page[models.CoachAthleteLink]{}, nil
}

func (m *MockLinkRepository) Create(ctx context.Context, link *models.CoachAthleteLink) (*models.CoachAthleteLink, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, link)
	}
	link.ID = "link-1"
	return link, nil
}

func (m *MockLinkRepository) SetActive(ctx context.Context, id string, active bool) (*models.CoachAthleteLink, error) {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	return nil, models.ErrNotFound
}

func (m *MockLinkRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockAthleteInfoRepository implements AthleteInfoRepository for testing
type MockAthleteInfoRepository struct {
	GetByUserIDFunc func(ctx context.Context, userID string) (*models.AthleteInfo, error)
	SoftDeleteFunc  func(ctx context.Context, id string, at time.Time) error
}

func (m *MockAthleteInfoRepository) GetByUserID(ctx context.Context, userID string) (*models.AthleteInfo, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, models.ErrNotFound
}

func (m *MockAthleteInfoRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id, at)
	}
	return nil
}
