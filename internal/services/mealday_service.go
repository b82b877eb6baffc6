package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/models"
)

type MealDayRepository interface {
	List(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.MealDay], error)
	GetByID(ctx context.Context, id string) (*models.MealDay, error)
	Create(ctx context.Context, day *models.MealDay) (*models.MealDay, error)
	Delete(ctx context.Context, id string) error
}

// MealDayService handles meal-day usecases. The coach no-filter branch scopes
// with the compound accessible-for predicate, and creator-set filtering is
// coach-forbidden for this resource.
type MealDayService struct {
	repo     MealDayRepository
	resolver *access.ScopeResolver
	gate     *access.RecordGate
	logger   *slog.Logger
}

func NewMealDayService(repo MealDayRepository, resolver *access.ScopeResolver, gate *access.RecordGate, logger *slog.Logger) *MealDayService {
	return &MealDayService{
		repo:     repo,
		resolver: resolver,
		gate:     gate,
		logger:   logger,
	}
}

func (s *MealDayService) ListMealDays(ctx context.Context, actor models.Actor, req access.ListRequest, page, limit int) (*models.Page[models.MealDay], error) {
	filter, err := s.resolver.ResolveListFilter(ctx, actor, req, access.MealDayPolicy)
	if err != nil {
		if errors.Is(err, models.ErrListMealDaysForbidden) {
			return nil, err
		}
		logExecFailure(s.logger, "ListMealDaysUsecase", err)
		return nil, models.ErrListMealDaysFailed
	}

	result, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		logExecFailure(s.logger, "ListMealDaysUsecase", err)
		return nil, models.ErrListMealDaysFailed
	}

	return result, nil
}

func (s *MealDayService) CreateMealDay(ctx context.Context, actor models.Actor, day *models.MealDay) (*models.MealDay, error) {
	day.CreatedBy = actor.ID
	if day.OwnerID == "" {
		day.OwnerID = actor.ID
	}
	if day.Visibility == "" {
		day.Visibility = models.VisibilityPrivate
	}

	created, err := s.repo.Create(ctx, day)
	if err != nil {
		logExecFailure(s.logger, "CreateMealDayUsecase", err)
		return nil, models.ErrInternalServer
	}

	s.logger.Info("meal day created", slog.String("meal_day_id", created.ID), slog.String("created_by", actor.ID))
	return created, nil
}

func (s *MealDayService) DeleteMealDay(ctx context.Context, actor models.Actor, id string) error {
	day, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		logExecFailure(s.logger, "DeleteMealDayUsecase", err)
		return models.ErrDeleteMealDayFailed
	}

	ok, err := s.gate.CanAccess(ctx, actor, access.RecordRef{
		CreatedBy:  day.CreatedBy,
		Visibility: day.Visibility,
	}, access.IntentMutate)
	if err != nil {
		logExecFailure(s.logger, "DeleteMealDayUsecase", err)
		return models.ErrDeleteMealDayFailed
	}
	// the library owner may also remove days authored into their library
	if !ok && day.OwnerID != actor.ID {
		return models.ErrDeleteMealDayForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logExecFailure(s.logger, "DeleteMealDayUsecase", err)
		return models.ErrDeleteMealDayFailed
	}

	s.logger.Info("meal day deleted", slog.String("meal_day_id", id), slog.String("actor_id", actor.ID))
	return nil
}
