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

type MealPlanRepository struct {
	db *database.DB
}

func NewMealPlanRepository(db *database.DB) *MealPlanRepository {
	return &MealPlanRepository{db: db}
}

func scanMealPlanRow(scanner rowScanner) (*models.MealPlan, error) {
	var plan models.MealPlan
	var userID *string

	err := scanner.Scan(
		&plan.ID, &plan.Name, &plan.Description,
		&plan.CreatedBy, &userID, &plan.Visibility,
		&plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if userID != nil {
		plan.UserID = *userID
	}

	return &plan, nil
}

func scanMealPlanRows(rows pgx.Rows) ([]*models.MealPlan, error) {
	defer rows.Close()

	plans := make([]*models.MealPlan, 0)

	for rows.Next() {
		plan, err := scanMealPlanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return plans, nil
}

// List applies the resolved scope filter. Every filter shape the resolver
// produces maps onto predicates here; the repository never re-derives scope.
func (r *MealPlanRepository) List(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.MealPlan], error) {
	q := &queryFilter{}
	applyListFilter(q, filter)

	countQuery := `SELECT COUNT(*) FROM meal_plans` + q.where()

	var total int
	if err := r.db.Pool.QueryRow(ctx, countQuery, q.args...).Scan(&total); err != nil {
		return nil, database.MapPostgresError(err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, created_by, user_id, visibility, created_at, updated_at
		FROM meal_plans%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d
	`, q.where(), len(q.args)+1, len(q.args)+2)

	args := append(q.args, limit, pageOffset(page, limit))
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal plans: %w", err)
	}

	plans, err := scanMealPlanRows(rows)
	if err != nil {
		return nil, err
	}

	return &models.Page[models.MealPlan]{Items: plans, Total: total, Page: page, Limit: limit}, nil
}

func (r *MealPlanRepository) GetByID(ctx context.Context, id string) (*models.MealPlan, error) {
	query := `
		SELECT id, name, description, created_by, user_id, visibility, created_at, updated_at
		FROM meal_plans WHERE id = $1
	`

	return scanMealPlanRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *MealPlanRepository) Create(ctx context.Context, plan *models.MealPlan) (*models.MealPlan, error) {
	plan.ID = uuid.New().String()

	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	query := `
		INSERT INTO meal_plans (id, name, description, created_by, user_id, visibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, description, created_by, user_id, visibility, created_at, updated_at
	`

	var userID *string
	if plan.UserID != "" {
		userID = &plan.UserID
	}

	return scanMealPlanRow(r.db.Pool.QueryRow(ctx, query,
		plan.ID, plan.Name, plan.Description,
		plan.CreatedBy, userID, plan.Visibility,
		plan.CreatedAt, plan.UpdatedAt,
	))
}

func (r *MealPlanRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM meal_plans WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
