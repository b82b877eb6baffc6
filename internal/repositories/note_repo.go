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

type NoteRepository struct {
	db *database.DB
}

func NewNoteRepository(db *database.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func scanNoteRow(scanner rowScanner) (*models.Note, error) {
	var note models.Note

	err := scanner.Scan(
		&note.ID, &note.UserID, &note.CreatedBy,
		&note.Title, &note.Body,
		&note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &note, nil
}

func scanNoteRows(rows pgx.Rows) ([]*models.Note, error) {
	defer rows.Close()

	notes := make([]*models.Note, 0)

	for rows.Next() {
		note, err := scanNoteRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

func (r *NoteRepository) List(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.Note], error) {
	q := &queryFilter{}
	applyListFilter(q, filter)

	countQuery := `SELECT COUNT(*) FROM notes` + q.where()

	var total int
	if err := r.db.Pool.QueryRow(ctx, countQuery, q.args...).Scan(&total); err != nil {
		return nil, database.MapPostgresError(err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, created_by, title, body, created_at, updated_at
		FROM notes%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d
	`, q.where(), len(q.args)+1, len(q.args)+2)

	args := append(q.args, limit, pageOffset(page, limit))
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}

	notes, err := scanNoteRows(rows)
	if err != nil {
		return nil, err
	}

	return &models.Page[models.Note]{Items: notes, Total: total, Page: page, Limit: limit}, nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query := `
		SELECT id, user_id, created_by, title, body, created_at, updated_at
		FROM notes WHERE id = $1
	`

	return scanNoteRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	note.ID = uuid.New().String()

	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	query := `
		INSERT INTO notes (id, user_id, created_by, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, created_by, title, body, created_at, updated_at
	`

	return scanNoteRow(r.db.Pool.QueryRow(ctx, query,
		note.ID, note.UserID, note.CreatedBy,
		note.Title, note.Body, note.CreatedAt, note.UpdatedAt,
	))
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM notes WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
