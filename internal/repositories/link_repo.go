package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/coachdesk/api/internal/database"
	"github.com/coachdesk/api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LinkRepository struct {
	db *database.DB
}

func NewLinkRepository(db *database.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

func scanLinkRow(scanner rowScanner) (*models.CoachAthleteLink, error) {
	var link models.CoachAthleteLink

	err := scanner.Scan(
		&link.ID, &link.CoachID, &link.AthleteID,
		&link.StartDate, &link.EndDate, &link.IsActive,
		&link.CreatedBy, &link.CreatedAt, &link.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &link, nil
}

func scanLinkRows(rows pgx.Rows) ([]*models.CoachAthleteLink, error) {
	defer rows.Close()

	links := make([]*models.CoachAthleteLink, 0)

	for rows.Next() {
		link, err := scanLinkRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return links, nil
}

func (r *LinkRepository) GetByID(ctx context.Context, id string) (*models.CoachAthleteLink, error) {
	query := `
		SELECT id, coach_id, athlete_id, start_date, end_date, is_active, created_by, created_at, updated_at
		FROM coach_athlete_links WHERE id = $1
	`

	return scanLinkRow(r.db.Pool.QueryRow(ctx, query, id))
}

// ActiveLinksForCoach returns links flagged active for one coach. Date-window
// validity is evaluated by the caller at check time, not here: a link whose
// window opens tomorrow is still "active" in storage.
func (r *LinkRepository) ActiveLinksForCoach(ctx context.Context, coachID string) ([]*models.CoachAthleteLink, error) {
	query := `
		SELECT id, coach_id, athlete_id, start_date, end_date, is_active, created_by, created_at, updated_at
		FROM coach_athlete_links WHERE coach_id = $1 AND is_active = TRUE
	`

	rows, err := r.db.Pool.Query(ctx, query, coachID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}

	return scanLinkRows(rows)
}

func (r *LinkRepository) ListForCoach(ctx context.Context, coachID string, page, limit int) (*models.Page[models.CoachAthleteLink], error) {
	countQuery := `SELECT COUNT(*) FROM coach_athlete_links WHERE coach_id = $1`

	var total int
	if err := r.db.Pool.QueryRow(ctx, countQuery, coachID).Scan(&total); err != nil {
		return nil, database.MapPostgresError(err)
	}

	query := `
		SELECT id, coach_id, athlete_id, start_date, end_date, is_active, created_by, created_at, updated_at
		FROM coach_athlete_links WHERE coach_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, coachID, limit, pageOffset(page, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}

	links, err := scanLinkRows(rows)
	if err != nil {
		return nil, err
	}

	return &models.Page[models.CoachAthleteLink]{Items: links, Total: total, Page: page, Limit: limit}, nil
}

func (r *LinkRepository) Create(ctx context.Context, link *models.CoachAthleteLink) (*models.CoachAthleteLink, error) {
	link.ID = uuid.New().String()

	now := time.Now()
	link.CreatedAt = now
	link.UpdatedAt = now

	query := `
		INSERT INTO coach_athlete_links (id, coach_id, athlete_id, start_date, end_date, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, coach_id, athlete_id, start_date, end_date, is_active, created_by, created_at, updated_at
	`

	return scanLinkRow(r.db.Pool.QueryRow(ctx, query,
		link.ID, link.CoachID, link.AthleteID,
		link.StartDate, link.EndDate, link.IsActive,
		link.CreatedBy, link.CreatedAt, link.UpdatedAt,
	))
}

func (r *LinkRepository) SetActive(ctx context.Context, id string, active bool) (*models.CoachAthleteLink, error) {
	query := `
		UPDATE coach_athlete_links SET is_active = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, coach_id, athlete_id, start_date, end_date, is_active, created_by, created_at, updated_at
	`

	return scanLinkRow(r.db.Pool.QueryRow(ctx, query, active, time.Now(), id))
}

func (r *LinkRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM coach_athlete_links WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
