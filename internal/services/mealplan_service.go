package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/models"
)

// MealPlanRepository defines the persistence interface for meal plans. List
// must accept every concrete filter shape the scope resolver produces.
type MealPlanRepository interface {
	List(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.MealPlan], error)
	GetByID(ctx context.Context, id string) (*models.MealPlan, error)
	Create(ctx context.Context, plan *models.MealPlan) (*models.MealPlan, error)
	Delete(ctx context.Context, id string) error
}

// MealPlanService handles meal-plan usecases. Denials surface as the
// resource's Forbidden conditions.
type MealPlanService struct {
	repo     MealPlanRepository
	resolver *access.ScopeResolver
	gate     *access.RecordGate
	logger   *slog.Logger
}

func NewMealPlanService(repo MealPlanRepository, resolver *access.ScopeResolver, gate *access.RecordGate, logger *slog.Logger) *MealPlanService {
	return &MealPlanService{
		repo:     repo,
		resolver: resolver,
		gate:     gate,
		logger:   logger,
	}
}

// ListMealPlans narrows the requested filter to the actor's scope and
// delegates to the repository.
func (s *MealPlanService) ListMealPlans(ctx context.Context, actor models.Actor, req access.ListRequest, page, limit int) (*models.Page[models.MealPlan], error) {
	filter, err := s.resolver.ResolveListFilter(ctx, actor, req, access.MealPlanPolicy)
	if err != nil {
		if errors.Is(err, models.ErrListMealPlansForbidden) {
			return nil, err
		}
		logExecFailure(s.logger, "ListMealPlansUsecase", err)
		return nil, models.ErrListMealPlansFailed
	}

	result, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		logExecFailure(s.logger, "ListMealPlansUsecase", err)
		return nil, models.ErrListMealPlansFailed
	}

	return result, nil
}

func (s *MealPlanService) GetMealPlan(ctx context.Context, actor models.Actor, id string) (*models.MealPlan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		logExecFailure(s.logger, "GetMealPlanUsecase", err)
		return nil, models.ErrGetMealPlanFailed
	}

	ok, err := s.gate.CanAccess(ctx, actor, mealPlanRef(plan), access.IntentRead)
	if err != nil {
		logExecFailure(s.logger, "GetMealPlanUsecase", err)
		return nil, models.ErrGetMealPlanFailed
	}
	if !ok {
		return nil, models.ErrGetMealPlanForbidden
	}

	return plan, nil
}

func (s *MealPlanService) CreateMealPlan(ctx context.Context, actor models.Actor, plan *models.MealPlan) (*models.MealPlan, error) {
	plan.CreatedBy = actor.ID
	if plan.Visibility == "" {
		plan.Visibility = models.VisibilityPrivate
	}

	created, err := s.repo.Create(ctx, plan)
	if err != nil {
		logExecFailure(s.logger, "CreateMealPlanUsecase", err)
		return nil, models.ErrInternalServer
	}

	s.logger.Info("meal plan created", slog.String("meal_plan_id", created.ID), slog.String("created_by", actor.ID))
	return created, nil
}

func (s *MealPlanService) DeleteMealPlan(ctx context.Context, actor models.Actor, id string) error {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		logExecFailure(s.logger, "DeleteMealPlanUsecase", err)
		return models.ErrDeleteMealPlanFailed
	}

	ok, err := s.gate.CanAccess(ctx, actor, mealPlanRef(plan), access.IntentMutate)
	if err != nil {
		logExecFailure(s.logger, "DeleteMealPlanUsecase", err)
		return models.ErrDeleteMealPlanFailed
	}
	if !ok {
		return models.ErrDeleteMealPlanForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logExecFailure(s.logger, "DeleteMealPlanUsecase", err)
		return models.ErrDeleteMealPlanFailed
	}

	s.logger.Info("meal plan deleted", slog.String("meal_plan_id", id), slog.String("actor_id", actor.ID))
	return nil
}

func mealPlanRef(plan *models.MealPlan) access.RecordRef {
	return access.RecordRef{
		CreatedBy:  plan.CreatedBy,
		SubjectID:  plan.UserID,
		Visibility: plan.Visibility,
	}
}
