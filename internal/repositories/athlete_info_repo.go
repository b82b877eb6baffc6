package repositories

import (
	"context"
	"time"

	"github.com/coachdesk/api/internal/database"
	"github.com/coachdesk/api/internal/models"
	"github.com/google/uuid"
)

type AthleteInfoRepository struct {
	db *database.DB
}

func NewAthleteInfoRepository(db *database.DB) *AthleteInfoRepository {
	return &AthleteInfoRepository{db: db}
}

func scanAthleteInfoRow(scanner rowScanner) (*models.AthleteInfo, error) {
	var info models.AthleteInfo

	err := scanner.Scan(
		&info.ID, &info.UserID, &info.CreatedBy,
		&info.Height, &info.Weight, &info.Notes, &info.DeletedAt,
		&info.CreatedAt, &info.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &info, nil
}

// GetByUserID returns the live profile for an athlete. Soft-deleted rows are
// invisible here, which is what makes repeat deletions read as not-found.
func (r *AthleteInfoRepository) GetByUserID(ctx context.Context, userID string) (*models.AthleteInfo, error) {
	query := `
		SELECT id, user_id, created_by, height, weight, notes, deleted_at, created_at, updated_at
		FROM athlete_info WHERE user_id = $1 AND deleted_at IS NULL
	`

	return scanAthleteInfoRow(r.db.Pool.QueryRow(ctx, query, userID))
}

func (r *AthleteInfoRepository) Create(ctx context.Context, info *models.AthleteInfo) (*models.AthleteInfo, error) {
	info.ID = uuid.New().String()

	now := time.Now()
	info.CreatedAt = now
	info.UpdatedAt = now

	query := `
		INSERT INTO athlete_info (id, user_id, created_by, height, weight, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, created_by, height, weight, notes, deleted_at, created_at, updated_at
	`

	return scanAthleteInfoRow(r.db.Pool.QueryRow(ctx, query,
		info.ID, info.UserID, info.CreatedBy,
		info.Height, info.Weight, info.Notes,
		info.CreatedAt, info.UpdatedAt,
	))
}

func (r *AthleteInfoRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE athlete_info SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`

	result, err := r.db.Pool.Exec(ctx, query, at, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
