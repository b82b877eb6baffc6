package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/models"
)

type TaskRepository interface {
	List(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.Task], error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}

// TaskService handles task usecases, scoped the same way notes are.
type TaskService struct {
	repo     TaskRepository
	resolver *access.ScopeResolver
	gate     *access.RecordGate
	logger   *slog.Logger
}

func NewTaskService(repo TaskRepository, resolver *access.ScopeResolver, gate *access.RecordGate, logger *slog.Logger) *TaskService {
	return &TaskService{
		repo:     repo,
		resolver: resolver,
		gate:     gate,
		logger:   logger,
	}
}

func (s *TaskService) ListTasks(ctx context.Context, actor models.Actor, req access.ListRequest, page, limit int) (*models.Page[models.Task], error) {
	filter, err := s.resolver.ResolveListFilter(ctx, actor, req, access.TaskPolicy)
	if err != nil {
		if errors.Is(err, models.ErrListTasksForbidden) {
			return nil, err
		}
		logExecFailure(s.logger, "ListTasksUsecase", err)
		return nil, models.ErrListTasksFailed
	}

	result, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		logExecFailure(s.logger, "ListTasksUsecase", err)
		return nil, models.ErrListTasksFailed
	}

	return result, nil
}

func (s *TaskService) CreateTask(ctx context.Context, actor models.Actor, task *models.Task) (*models.Task, error) {
	task.CreatedBy = actor.ID

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		logExecFailure(s.logger, "CreateTaskUsecase", err)
		return nil, models.ErrInternalServer
	}

	return created, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, actor models.Actor, id string) error {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		logExecFailure(s.logger, "DeleteTaskUsecase", err)
		return models.ErrDeleteTaskFailed
	}

	ok, err := s.gate.CanAccess(ctx, actor, access.RecordRef{
		CreatedBy: task.CreatedBy,
		SubjectID: task.UserID,
	}, access.IntentMutate)
	if err != nil {
		logExecFailure(s.logger, "DeleteTaskUsecase", err)
		return models.ErrDeleteTaskFailed
	}
	if !ok {
		return models.ErrDeleteTaskForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logExecFailure(s.logger, "DeleteTaskUsecase", err)
		return models.ErrDeleteTaskFailed
	}

	return nil
}
