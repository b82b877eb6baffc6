package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/models"
)

type ProgramRepository interface {
	List(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.Program], error)
	GetByID(ctx context.Context, id string) (*models.Program, error)
	Create(ctx context.Context, program *models.Program) (*models.Program, error)
	Delete(ctx context.Context, id string) error
}

type ProgramRecordRepository interface {
	GetByID(ctx context.Context, id string) (*models.ProgramRecord, error)
	Update(ctx context.Context, id string, record *models.ProgramRecord) (*models.ProgramRecord, error)
}

// ProgramRecordUpdate carries the mutable fields of a logged result.
type ProgramRecordUpdate struct {
	Weight   *float64
	Reps     *int
	Sets     *int
	LoggedAt *time.Time
}

// ProgramService handles program usecases. List, get and delete deny as
// Forbidden; record updates deny as not-found (a nil result with no error,
// indistinguishable from a missing record).
type ProgramService struct {
	programs ProgramRepository
	records  ProgramRecordRepository
	resolver *access.ScopeResolver
	gate     *access.RecordGate
	logger   *slog.Logger
}

func NewProgramService(programs ProgramRepository, records ProgramRecordRepository, resolver *access.ScopeResolver, gate *access.RecordGate, logger *slog.Logger) *ProgramService {
	return &ProgramService{
		programs: programs,
		records:  records,
		resolver: resolver,
		gate:     gate,
		logger:   logger,
	}
}

func (s *ProgramService) ListPrograms(ctx context.Context, actor models.Actor, req access.ListRequest, page, limit int) (*models.Page[models.Program], error) {
	filter, err := s.resolver.ResolveListFilter(ctx, actor, req, access.ProgramPolicy)
	if err != nil {
		if errors.Is(err, models.ErrListProgramsForbidden) {
			return nil, err
		}
		logExecFailure(s.logger, "ListProgramsUsecase", err)
		return nil, models.ErrListProgramsFailed
	}

	result, err := s.programs.List(ctx, filter, page, limit)
	if err != nil {
		logExecFailure(s.logger, "ListProgramsUsecase", err)
		return nil, models.ErrListProgramsFailed
	}

	return result, nil
}

func (s *ProgramService) GetProgram(ctx context.Context, actor models.Actor, id string) (*models.Program, error) {
	program, err := s.programs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		logExecFailure(s.logger, "GetProgramUsecase", err)
		return nil, models.ErrGetProgramFailed
	}

	ok, err := s.gate.CanAccess(ctx, actor, programRef(program), access.IntentRead)
	if err != nil {
		logExecFailure(s.logger, "GetProgramUsecase", err)
		return nil, models.ErrGetProgramFailed
	}
	if !ok {
		return nil, models.ErrGetProgramForbidden
	}

	return program, nil
}

func (s *ProgramService) CreateProgram(ctx context.Context, actor models.Actor, program *models.Program) (*models.Program, error) {
	program.CreatedBy = actor.ID
	if program.Visibility == "" {
		program.Visibility = models.VisibilityPrivate
	}

	created, err := s.programs.Create(ctx, program)
	if err != nil {
		logExecFailure(s.logger, "CreateProgramUsecase", err)
		return nil, models.ErrInternalServer
	}

	s.logger.Info("program created", slog.String("program_id", created.ID), slog.String("created_by", actor.ID))
	return created, nil
}

func (s *ProgramService) DeleteProgram(ctx context.Context, actor models.Actor, id string) error {
	program, err := s.programs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		logExecFailure(s.logger, "DeleteProgramUsecase", err)
		return models.ErrDeleteProgramFailed
	}

	ok, err := s.gate.CanAccess(ctx, actor, programRef(program), access.IntentMutate)
	if err != nil {
		logExecFailure(s.logger, "DeleteProgramUsecase", err)
		return models.ErrDeleteProgramFailed
	}
	if !ok {
		return models.ErrDeleteProgramForbidden
	}

	if err := s.programs.Delete(ctx, id); err != nil {
		logExecFailure(s.logger, "DeleteProgramUsecase", err)
		return models.ErrDeleteProgramFailed
	}

	s.logger.Info("program deleted", slog.String("program_id", id), slog.String("actor_id", actor.ID))
	return nil
}

// UpdateProgramRecord mutates an athlete's logged result. A denied or missing
// record yields (nil, nil): callers treat it as not found and must not infer
// that the record exists.
func (s *ProgramService) UpdateProgramRecord(ctx context.Context, actor models.Actor, id string, upd ProgramRecordUpdate) (*models.ProgramRecord, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		logExecFailure(s.logger, "UpdateProgramRecordUsecase", err)
		return nil, models.ErrUpdateProgramRecFailed
	}

	ok, err := s.gate.CanAccess(ctx, actor, access.RecordRef{
		CreatedBy: record.CreatedBy,
		SubjectID: record.UserID,
	}, access.IntentMutate)
	if err != nil {
		logExecFailure(s.logger, "UpdateProgramRecordUsecase", err)
		return nil, models.ErrUpdateProgramRecFailed
	}
	if !ok {
		return nil, nil
	}

	if upd.Weight != nil {
		record.Weight = *upd.Weight
	}
	if upd.Reps != nil {
		record.Reps = *upd.Reps
	}
	if upd.Sets != nil {
		record.Sets = *upd.Sets
	}
	if upd.LoggedAt != nil {
		record.LoggedAt = *upd.LoggedAt
	}

	updated, err := s.records.Update(ctx, id, record)
	if err != nil {
		logExecFailure(s.logger, "UpdateProgramRecordUsecase", err)
		return nil, models.ErrUpdateProgramRecFailed
	}

	return updated, nil
}

func programRef(program *models.Program) access.RecordRef {
	return access.RecordRef{
		CreatedBy:  program.CreatedBy,
		SubjectID:  program.UserID,
		Visibility: program.Visibility,
	}
}
