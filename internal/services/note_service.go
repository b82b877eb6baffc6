package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/models"
)

type NoteRepository interface {
	List(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.Note], error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id string) error
}

// NoteService handles note usecases. Notes are personal resources: no
// visibility flag, scoped purely by ownership and subject.
type NoteService struct {
	repo     NoteRepository
	resolver *access.ScopeResolver
	gate     *access.RecordGate
	logger   *slog.Logger
}

func NewNoteService(repo NoteRepository, resolver *access.ScopeResolver, gate *access.RecordGate, logger *slog.Logger) *NoteService {
	return &NoteService{
		repo:     repo,
		resolver: resolver,
		gate:     gate,
		logger:   logger,
	}
}

func (s *NoteService) ListNotes(ctx context.Context, actor models.Actor, req access.ListRequest, page, limit int) (*models.Page[models.Note], error) {
	filter, err := s.resolver.ResolveListFilter(ctx, actor, req, access.NotePolicy)
	if err != nil {
		if errors.Is(err, models.ErrListNotesForbidden) {
			return nil, err
		}
		logExecFailure(s.logger, "ListNotesUsecase", err)
		return nil, models.ErrListNotesFailed
	}

	result, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		logExecFailure(s.logger, "ListNotesUsecase", err)
		return nil, models.ErrListNotesFailed
	}

	return result, nil
}

func (s *NoteService) CreateNote(ctx context.Context, actor models.Actor, note *models.Note) (*models.Note, error) {
	note.CreatedBy = actor.ID

	created, err := s.repo.Create(ctx, note)
	if err != nil {
		logExecFailure(s.logger, "CreateNoteUsecase", err)
		return nil, models.ErrInternalServer
	}

	return created, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, actor models.Actor, id string) error {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		logExecFailure(s.logger, "DeleteNoteUsecase", err)
		return models.ErrDeleteNoteFailed
	}

	ok, err := s.gate.CanAccess(ctx, actor, access.RecordRef{
		CreatedBy: note.CreatedBy,
		SubjectID: note.UserID,
	}, access.IntentMutate)
	if err != nil {
		logExecFailure(s.logger, "DeleteNoteUsecase", err)
		return models.ErrDeleteNoteFailed
	}
	if !ok {
		return models.ErrDeleteNoteForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logExecFailure(s.logger, "DeleteNoteUsecase", err)
		return models.ErrDeleteNoteFailed
	}

	return nil
}
