package repositories

import (
	"context"
	"time"

	"github.com/coachdesk/api/internal/database"
	"github.com/coachdesk/api/internal/models"
	"github.com/google/uuid"
)

type ProgramRecordRepository struct {
	db *database.DB
}

func NewProgramRecordRepository(db *database.DB) *ProgramRecordRepository {
	return &ProgramRecordRepository{db: db}
}

func scanProgramRecordRow(scanner rowScanner) (*models.ProgramRecord, error) {
	var record models.ProgramRecord

	err := scanner.Scan(
		&record.ID, &record.ProgramID, &record.UserID, &record.CreatedBy,
		&record.Weight, &record.Reps, &record.Sets, &record.LoggedAt,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &record, nil
}

func (r *ProgramRecordRepository) GetByID(ctx context.Context, id string) (*models.ProgramRecord, error) {
	query := `
		SELECT id, program_id, user_id, created_by, weight, reps, sets, logged_at, created_at, updated_at
		FROM program_records WHERE id = $1
	`

	return scanProgramRecordRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *ProgramRecordRepository) Create(ctx context.Context, record *models.ProgramRecord) (*models.ProgramRecord, error) {
	record.ID = uuid.New().String()

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.LoggedAt.IsZero() {
		record.LoggedAt = now
	}

	query := `
		INSERT INTO program_records (id, program_id, user_id, created_by, weight, reps, sets, logged_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, program_id, user_id, created_by, weight, reps, sets, logged_at, created_at, updated_at
	`

	return scanProgramRecordRow(r.db.Pool.QueryRow(ctx, query,
		record.ID, record.ProgramID, record.UserID, record.CreatedBy,
		record.Weight, record.Reps, record.Sets, record.LoggedAt,
		record.CreatedAt, record.UpdatedAt,
	))
}

func (r *ProgramRecordRepository) Update(ctx context.Context, id string, record *models.ProgramRecord) (*models.ProgramRecord, error) {
	record.UpdatedAt = time.Now()

	query := `
		UPDATE program_records SET weight = $1, reps = $2, sets = $3, logged_at = $4, updated_at = $5
		WHERE id = $6
		RETURNING id, program_id, user_id, created_by, weight, reps, sets, logged_at, created_at, updated_at
	`

	return scanProgramRecordRow(r.db.Pool.QueryRow(ctx, query,
		record.Weight, record.Reps, record.Sets, record.LoggedAt, record.UpdatedAt, id,
	))
}
