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

type ProgramRepository struct {
	db *database.DB
}

func NewProgramRepository(db *database.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

func scanProgramRow(scanner rowScanner) (*models.Program, error) {
	var program models.Program
	var userID *string

	err := scanner.Scan(
		&program.ID, &program.Name, &program.Description,
		&program.CreatedBy, &userID, &program.Visibility,
		&program.CreatedAt, &program.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if userID != nil {
		program.UserID = *userID
	}

	return &program, nil
}

func scanProgramRows(rows pgx.Rows) ([]*models.Program, error) {
	defer rows.Close()

	programs := make([]*models.Program, 0)

	for rows.Next() {
		program, err := scanProgramRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		programs = append(programs, program)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return programs, nil
}

func (r *ProgramRepository) List(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.Program], error) {
	q := &queryFilter{}
	applyListFilter(q, filter)

	countQuery := `SELECT COUNT(*) FROM programs` + q.where()

	var total int
	if err := r.db.Pool.QueryRow(ctx, countQuery, q.args...).Scan(&total); err != nil {
		return nil, database.MapPostgresError(err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, created_by, user_id, visibility, created_at, updated_at
		FROM programs%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d
	`, q.where(), len(q.args)+1, len(q.args)+2)

	args := append(q.args, limit, pageOffset(page, limit))
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query programs: %w", err)
	}

	programs, err := scanProgramRows(rows)
	if err != nil {
		return nil, err
	}

	return &models.Page[models.Program]{Items: programs, Total: total, Page: page, Limit: limit}, nil
}

func (r *ProgramRepository) GetByID(ctx context.Context, id string) (*models.Program, error) {
	query := `
		SELECT id, name, description, created_by, user_id, visibility, created_at, updated_at
		FROM programs WHERE id = $1
	`

	return scanProgramRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) (*models.Program, error) {
	program.ID = uuid.New().String()

	now := time.Now()
	program.CreatedAt = now
	program.UpdatedAt = now

	query := `
		INSERT INTO programs (id, name, description, created_by, user_id, visibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, description, created_by, user_id, visibility, created_at, updated_at
	`

	var userID *string
	if program.UserID != "" {
		userID = &program.UserID
	}

	return scanProgramRow(r.db.Pool.QueryRow(ctx, query,
		program.ID, program.Name, program.Description,
		program.CreatedBy, userID, program.Visibility,
		program.CreatedAt, program.UpdatedAt,
	))
}

func (r *ProgramRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM programs WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
