package services

import (
	"context"
	"errors"
	"testing"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/models"
	"github.com/stretchr/testify/assert"
)

var (
	testAdmin   = models.Actor{ID: "admin-1", Role: models.RoleAdmin}
	testCoach   = models.Actor{ID: "coach-1", Role: models.RoleCoach}
	testAthlete = models.Actor{ID: "athlete-1", Role: models.RoleAthlete}
)

func TestMealPlanService_ListUnfiltered_CoachSeesOwnAndAdminContent(t *testing.T) {
	// coach-1 authored a PRIVATE and a PUBLIC plan, admin-1 authored a PUBLIC
	// plan; an unfiltered list must produce a filter spanning both creators
	// with no visibility narrowing, so all three come back.
	plans := []*models.MealPlan{
		{ID: "mp-1", CreatedBy: "coach-1", Visibility: models.VisibilityPrivate},
		{ID: "mp-2", CreatedBy: "coach-1", Visibility: models.VisibilityPublic},
		{ID: "mp-3", CreatedBy: "admin-1", Visibility: models.VisibilityPublic},
	}

	var seenFilter *access.ListFilter
	repo := &MockMealPlanRepository{
		ListFunc: func(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.MealPlan], error) {
			seenFilter = filter
			return &models.Page[models.MealPlan]{Items: plans, Total: 3, Page: page, Limit: limit}, nil
		},
	}

	logger, _ := newCaptureLogger()
	svc := NewMealPlanService(repo, newTestResolver("admin-1"), newTestRecordGate(), logger)

	result, err := svc.ListMealPlans(context.Background(), testCoach, access.ListRequest{}, 1, 20)

	assert.NoError(t, err)
	assert.Len(t, result.Items, 3)
	assert.Equal(t, []string{"admin-1", "coach-1"}, seenFilter.CreatedByIn)
	assert.Empty(t, seenFilter.Visibility)
}

func TestMealPlanService_ListForbiddenPropagatesVerbatimAndUnlogged(t *testing.T) {
	repo := &MockMealPlanRepository{
		ListFunc: func(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.MealPlan], error) {
			t.Fatal("repository must not be reached on a forbidden request")
			return nil, nil
		},
	}

	logger, capture := newCaptureLogger()
	svc := NewMealPlanService(repo, newTestResolver("admin-1"), newTestRecordGate(), logger)

	result, err := svc.ListMealPlans(context.Background(), testAthlete,
		access.ListRequest{CreatedBy: "coach-1"}, 1, 20)

	assert.Nil(t, result)
	assert.Equal(t, models.ErrListMealPlansForbidden, err)
	assert.Empty(t, capture.errorMessages())
}

func TestMealPlanService_ListRepositoryErrorLoggedAndWrapped(t *testing.T) {
	repo := &MockMealPlanRepository{
		ListFunc: func(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.MealPlan], error) {
			return nil, errors.New("DB Error")
		},
	}

	logger, capture := newCaptureLogger()
	svc := NewMealPlanService(repo, newTestResolver("admin-1"), newTestRecordGate(), logger)

	result, err := svc.ListMealPlans(context.Background(), testCoach, access.ListRequest{}, 1, 20)

	assert.Nil(t, result)
	assert.Equal(t, models.ErrListMealPlansFailed, err)
	assert.Equal(t, []string{"ListMealPlansUsecase#execute => DB Error"}, capture.errorMessages())
}

func TestMealPlanService_ListAdminScanErrorLoggedAndWrapped(t *testing.T) {
	resolver := access.NewScopeResolver(access.NewRelationshipIndex(
		&staticAdminLister{err: errors.New("DB Error")}))

	logger, capture := newCaptureLogger()
	svc := NewMealPlanService(&MockMealPlanRepository{}, resolver, newTestRecordGate(), logger)

	result, err := svc.ListMealPlans(context.Background(), testCoach, access.ListRequest{}, 1, 20)

	assert.Nil(t, result)
	assert.Equal(t, models.ErrListMealPlansFailed, err)
	assert.Equal(t, []string{"ListMealPlansUsecase#execute => DB Error"}, capture.errorMessages())
}

func TestMealPlanService_GetForbiddenForPrivateRecordOfOtherCoach(t *testing.T) {
	repo := &MockMealPlanRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.MealPlan, error) {
			return &models.MealPlan{ID: id, CreatedBy: "coach-2", Visibility: models.VisibilityPrivate}, nil
		},
	}

	logger, capture := newCaptureLogger()
	svc := NewMealPlanService(repo, newTestResolver(), newTestRecordGate(), logger)

	result, err := svc.GetMealPlan(context.Background(), testCoach, "mp-1")

	assert.Nil(t, result)
	assert.Equal(t, models.ErrGetMealPlanForbidden, err)
	assert.Empty(t, capture.errorMessages())
}

func TestMealPlanService_GetPublicRecordAllowed(t *testing.T) {
	repo := &MockMealPlanRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.MealPlan, error) {
			return &models.MealPlan{ID: id, CreatedBy: "coach-2", Visibility: models.VisibilityPublic}, nil
		},
	}

	logger, _ := newCaptureLogger()
	svc := NewMealPlanService(repo, newTestResolver(), newTestRecordGate(), logger)

	result, err := svc.GetMealPlan(context.Background(), testAthlete, "mp-1")

	assert.NoError(t, err)
	assert.Equal(t, "mp-1", result.ID)
}

func TestMealPlanService_GetNotFound(t *testing.T) {
	logger, _ := newCaptureLogger()
	svc := NewMealPlanService(&MockMealPlanRepository{}, newTestResolver(), newTestRecordGate(), logger)

	result, err := svc.GetMealPlan(context.Background(), testAdmin, "missing")

	assert.Nil(t, result)
	assert.Equal(t, models.ErrNotFound, err)
}

func TestMealPlanService_DeleteForbiddenForPublicRecordOfOtherCoach(t *testing.T) {
	// PUBLIC grants read, never mutation
	repo := &MockMealPlanRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.MealPlan, error) {
			return &models.MealPlan{ID: id, CreatedBy: "coach-2", Visibility: models.VisibilityPublic}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			t.Fatal("delete must not be reached")
			return nil
		},
	}

	logger, _ := newCaptureLogger()
	svc := NewMealPlanService(repo, newTestResolver(), newTestRecordGate(), logger)

	err := svc.DeleteMealPlan(context.Background(), testCoach, "mp-1")

	assert.Equal(t, models.ErrDeleteMealPlanForbidden, err)
}

func TestMealPlanService_DeleteOwnRecord(t *testing.T) {
	deleted := false
	repo := &MockMealPlanRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.MealPlan, error) {
			return &models.MealPlan{ID: id, CreatedBy: "coach-1", Visibility: models.VisibilityPrivate}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}

	logger, _ := newCaptureLogger()
	svc := NewMealPlanService(repo, newTestResolver(), newTestRecordGate(), logger)

	err := svc.DeleteMealPlan(context.Background(), testCoach, "mp-1")

	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestMealPlanService_CreateStampsAuthorAndDefaultVisibility(t *testing.T) {
	logger, _ := newCaptureLogger()
	svc := NewMealPlanService(&MockMealPlanRepository{}, newTestResolver(), newTestRecordGate(), logger)

	created, err := svc.CreateMealPlan(context.Background(), testCoach, &models.MealPlan{Name: "Cut phase"})

	assert.NoError(t, err)
	assert.Equal(t, "coach-1", created.CreatedBy)
	assert.Equal(t, models.VisibilityPrivate, created.Visibility)
}
