package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/coachdesk/api/internal/models"
)

type LinkRepository interface {
	GetByID(ctx context.Context, id string) (*models.CoachAthleteLink, error)
	ListForCoach(ctx context.Context, coachID string, page, limit int) (*models.Page[models.CoachAthleteLink], error)
	Create(ctx context.Context, link *models.CoachAthleteLink) (*models.CoachAthleteLink, error)
	SetActive(ctx context.Context, id string, active bool) (*models.CoachAthleteLink, error)
	Delete(ctx context.Context, id string) error
}

// LinkInviteSender notifies an athlete that a coach requested access to their
// data. Delivery is best-effort; a failed send never fails the usecase.
type LinkInviteSender interface {
	SendLinkInvite(ctx context.Context, to, coachName string) error
}

// CreateLinkInput carries the fields of a new delegation link.
type CreateLinkInput struct {
	CoachID      string
	AthleteID    string
	AthleteEmail string
	CoachName    string
	StartDate    *time.Time
	EndDate      *time.Time
}

// LinkService manages coach-athlete delegation links: creation, activation
// toggling and the admin-only hard delete. The access core never deletes
// links itself.
type LinkService struct {
	repo    LinkRepository
	emailer LinkInviteSender
	logger  *slog.Logger
}

func NewLinkService(repo LinkRepository, emailer LinkInviteSender, logger *slog.Logger) *LinkService {
	return &LinkService{
		repo:    repo,
		emailer: emailer,
		logger:  logger,
	}
}

func (s *LinkService) CreateLink(ctx context.Context, actor models.Actor, input CreateLinkInput) (*models.CoachAthleteLink, error) {
	switch actor.Role {
	case models.RoleAdmin:
		// may create links for any coach
	case models.RoleCoach:
		if input.CoachID == "" {
			input.CoachID = actor.ID
		}
		if input.CoachID != actor.ID {
			return nil, models.ErrManageLinkForbidden
		}
	default:
		return nil, models.ErrManageLinkForbidden
	}

	link := &models.CoachAthleteLink{
		CoachID:   input.CoachID,
		AthleteID: input.AthleteID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		IsActive:  true,
		CreatedBy: actor.ID,
	}

	created, err := s.repo.Create(ctx, link)
	if err != nil {
		logExecFailure(s.logger, "CreateLinkUsecase", err)
		return nil, models.ErrManageLinkFailed
	}

	if s.emailer != nil && input.AthleteEmail != "" {
		if err := s.emailer.SendLinkInvite(ctx, input.AthleteEmail, input.CoachName); err != nil {
			s.logger.Warn("failed to send link invite",
				slog.String("link_id", created.ID),
				slog.Any("error", err),
			)
		}
	}

	s.logger.Info("coach-athlete link created",
		slog.String("link_id", created.ID),
		slog.String("coach_id", created.CoachID),
		slog.String("athlete_id", created.AthleteID),
	)
	return created, nil
}

// SetLinkActive toggles activation. Allowed for admins, the link's coach and
// whoever created the link.
func (s *LinkService) SetLinkActive(ctx context.Context, actor models.Actor, id string, active bool) (*models.CoachAthleteLink, error) {
	link, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		logExecFailure(s.logger, "SetLinkActiveUsecase", err)
		return nil, models.ErrManageLinkFailed
	}

	if !actor.IsAdmin() && link.CoachID != actor.ID && link.CreatedBy != actor.ID {
		return nil, models.ErrManageLinkForbidden
	}

	updated, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		logExecFailure(s.logger, "SetLinkActiveUsecase", err)
		return nil, models.ErrManageLinkFailed
	}

	s.logger.Info("link activation changed",
		slog.String("link_id", id),
		slog.Bool("active", active),
		slog.String("actor_id", actor.ID),
	)
	return updated, nil
}

func (s *LinkService) ListLinksForCoach(ctx context.Context, actor models.Actor, coachID string, page, limit int) (*models.Page[models.CoachAthleteLink], error) {
	if !actor.IsAdmin() {
		if actor.Role != models.RoleCoach || coachID != actor.ID {
			return nil, models.ErrManageLinkForbidden
		}
	}

	result, err := s.repo.ListForCoach(ctx, coachID, page, limit)
	if err != nil {
		logExecFailure(s.logger, "ListLinksUsecase", err)
		return nil, models.ErrManageLinkFailed
	}

	return result, nil
}

// DeleteLink hard-deletes a link. Administrative operation only.
func (s *LinkService) DeleteLink(ctx context.Context, actor models.Actor, id string) error {
	if !actor.IsAdmin() {
		return models.ErrManageLinkForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		logExecFailure(s.logger, "DeleteLinkUsecase", err)
		return models.ErrManageLinkFailed
	}

	s.logger.Info("link deleted", slog.String("link_id", id), slog.String("actor_id", actor.ID))
	return nil
}
