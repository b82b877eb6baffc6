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

type TaskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func scanTaskRow(scanner rowScanner) (*models.Task, error) {
	var task models.Task

	err := scanner.Scan(
		&task.ID, &task.UserID, &task.CreatedBy,
		&task.Title, &task.Done, &task.DueDate,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &task, nil
}

func scanTaskRows(rows pgx.Rows) ([]*models.Task, error) {
	defer rows.Close()

	tasks := make([]*models.Task, 0)

	for rows.Next() {
		task, err := scanTaskRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) List(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.Task], error) {
	q := &queryFilter{}
	applyListFilter(q, filter)

	countQuery := `SELECT COUNT(*) FROM tasks` + q.where()

	var total int
	if err := r.db.Pool.QueryRow(ctx, countQuery, q.args...).Scan(&total); err != nil {
		return nil, database.MapPostgresError(err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, created_by, title, done, due_date, created_at, updated_at
		FROM tasks%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d
	`, q.where(), len(q.args)+1, len(q.args)+2)

	args := append(q.args, limit, pageOffset(page, limit))
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}

	tasks, err := scanTaskRows(rows)
	if err != nil {
		return nil, err
	}

	return &models.Page[models.Task]{Items: tasks, Total: total, Page: page, Limit: limit}, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `
		SELECT id, user_id, created_by, title, done, due_date, created_at, updated_at
		FROM tasks WHERE id = $1
	`

	return scanTaskRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	task.ID = uuid.New().String()

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	query := `
		INSERT INTO tasks (id, user_id, created_by, title, done, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, created_by, title, done, due_date, created_at, updated_at
	`

	return scanTaskRow(r.db.Pool.QueryRow(ctx, query,
		task.ID, task.UserID, task.CreatedBy,
		task.Title, task.Done, task.DueDate,
		task.CreatedAt, task.UpdatedAt,
	))
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
