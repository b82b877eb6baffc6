package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/database"
	"github.com/coachdesk/api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MealDayRepository struct {
	db *database.DB
}

func NewMealDayRepository(db *database.DB) *MealDayRepository {
	return &MealDayRepository{db: db}
}

func scanMealDayRow(scanner rowScanner) (*models.MealDay, error) {
	var day models.MealDay

	err := scanner.Scan(
		&day.ID, &day.Name, &day.OwnerID, &day.CreatedBy,
		&day.Visibility, &day.Date,
		&day.CreatedAt, &day.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &day, nil
}

func scanMealDayRows(rows pgx.Rows) ([]*models.MealDay, error) {
	defer rows.Close()

	days := make([]*models.MealDay, 0)

	for rows.Next() {
		day, err := scanMealDayRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal day: %w", err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return days, nil
}

// List handles the compound ownership predicate: a coach's unfiltered listing
// matches days in their library OR days authored by an accessible creator.
func (r *MealDayRepository) List(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.MealDay], error) {
	q := &queryFilter{}
	applyListFilter(q, filter)

	countQuery := `SELECT COUNT(*) FROM meal_days` + q.where()

	var total int
	if err := r.db.Pool.QueryRow(ctx, countQuery, q.args...).Scan(&total); err != nil {
		return nil, database.MapPostgresError(err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, owner_id, created_by, visibility, date, created_at, updated_at
		FROM meal_days%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d
	`, q.where(), len(q.args)+1, len(q.args)+2)

	args := append(q.args, limit, pageOffset(page, limit))
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal days: %w", err)
	}

	days, err := scanMealDayRows(rows)
	if err != nil {
		return nil, err
	}

	return &models.Page[models.MealDay]{Items: days, Total: total, Page: page, Limit: limit}, nil
}

func (r *MealDayRepository) GetByID(ctx context.Context, id string) (*models.MealDay, error) {
	query := `
		SELECT id, name, owner_id, created_by, visibility, date, created_at, updated_at
		FROM meal_days WHERE id = $1
	`

	return scanMealDayRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *MealDayRepository) Create(ctx context.Context, day *models.MealDay) (*models.MealDay, error) {
	day.ID = uuid.New().String()

	now := time.Now()
	day.CreatedAt = now
	day.UpdatedAt = now

	query := `
		INSERT INTO meal_days (id, name, owner_id, created_by, visibility, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, owner_id, created_by, visibility, date, created_at, updated_at
	`

	return scanMealDayRow(r.db.Pool.QueryRow(ctx, query,
		day.ID, day.Name, day.OwnerID, day.CreatedBy,
		day.Visibility, day.Date, day.CreatedAt, day.UpdatedAt,
	))
}

func (r *MealDayRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM meal_days WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
