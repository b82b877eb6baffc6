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

type DailyReportRepository struct {
	db *database.DB
}

func NewDailyReportRepository(db *database.DB) *DailyReportRepository {
	return &DailyReportRepository{db: db}
}

func scanDailyReportRow(scanner rowScanner) (*models.DailyReport, error) {
	var report models.DailyReport

	err := scanner.Scan(
		&report.ID, &report.UserID, &report.CreatedBy, &report.Date,
		&report.Weight, &report.Sleep, &report.Mood, &report.Comment,
		&report.CreatedAt, &report.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &report, nil
}

func scanDailyReportRows(rows pgx.Rows) ([]*models.DailyReport, error) {
	defer rows.Close()

	reports := make([]*models.DailyReport, 0)

	for rows.Next() {
		report, err := scanDailyReportRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily report: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reports, nil
}

func (r *DailyReportRepository) GetByID(ctx context.Context, id string) (*models.DailyReport, error) {
	query := `
		SELECT id, user_id, created_by, date, weight, sleep, mood, comment, created_at, updated_at
		FROM daily_reports WHERE id = $1
	`

	return scanDailyReportRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *DailyReportRepository) ListForAthlete(ctx context.Context, athleteID string, from, to time.Time) ([]*models.DailyReport, error) {
	query := `
		SELECT id, user_id, created_by, date, weight, sleep, mood, comment, created_at, updated_at
		FROM daily_reports WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, athleteID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily reports: %w", err)
	}

	return scanDailyReportRows(rows)
}

func (r *DailyReportRepository) Create(ctx context.Context, report *models.DailyReport) (*models.DailyReport, error) {
	report.ID = uuid.New().String()

	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now
	if report.Date.IsZero() {
		report.Date = now
	}

	query := `
		INSERT INTO daily_reports (id, user_id, created_by, date, weight, sleep, mood, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, user_id, created_by, date, weight, sleep, mood, comment, created_at, updated_at
	`

	return scanDailyReportRow(r.db.Pool.QueryRow(ctx, query,
		report.ID, report.UserID, report.CreatedBy, report.Date,
		report.Weight, report.Sleep, report.Mood, report.Comment,
		report.CreatedAt, report.UpdatedAt,
	))
}
