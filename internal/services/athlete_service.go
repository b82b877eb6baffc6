package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/models"
)

type AthleteInfoRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.AthleteInfo, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}

// AthleteService handles athlete-profile usecases. Its soft delete denies as
// not-found: a false result with no error, whether the record is missing or
// merely inaccessible.
type AthleteService struct {
	repo   AthleteInfoRepository
	gate   *access.RecordGate
	logger *slog.Logger
}

func NewAthleteService(repo AthleteInfoRepository, gate *access.RecordGate, logger *slog.Logger) *AthleteService {
	return &AthleteService{
		repo:   repo,
		gate:   gate,
		logger: logger,
	}
}

// SoftDeleteAthleteInfo marks an athlete profile deleted. Returns whether a
// record was deleted; denial and absence are deliberately indistinguishable.
func (s *AthleteService) SoftDeleteAthleteInfo(ctx context.Context, actor models.Actor, userID string) (bool, error) {
	info, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, nil
		}
		logExecFailure(s.logger, "SoftDeleteAthleteInfoUsecase", err)
		return false, models.ErrSoftDeleteAthleteFailed
	}

	ok, err := s.gate.CanAccess(ctx, actor, access.RecordRef{
		CreatedBy: info.CreatedBy,
		SubjectID: info.UserID,
	}, access.IntentMutate)
	if err != nil {
		logExecFailure(s.logger, "SoftDeleteAthleteInfoUsecase", err)
		return false, models.ErrSoftDeleteAthleteFailed
	}
	if !ok {
		return false, nil
	}

	if err := s.repo.SoftDelete(ctx, info.ID, time.Now()); err != nil {
		logExecFailure(s.logger, "SoftDeleteAthleteInfoUsecase", err)
		return false, models.ErrSoftDeleteAthleteFailed
	}

	s.logger.Info("athlete info soft deleted", slog.String("user_id", userID), slog.String("actor_id", actor.ID))
	return true, nil
}
