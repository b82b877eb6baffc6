package integration

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/coachdesk/api/internal/database"
	"github.com/coachdesk/api/internal/models"
	"github.com/coachdesk/api/internal/repositories"
	"github.com/coachdesk/api/migrations"
	"github.com/coachdesk/api/pkg/auth"
)

// TestDB manages PostgreSQL testcontainer and database operations
type TestDB struct {
	Container  testcontainers.Container
	ConnString string
	Pool       *pgxpool.Pool
	DB         *database.DB
}

// SetupTestDatabase creates a PostgreSQL testcontainer, runs migrations, returns TestDB
func SetupTestDatabase(ctx context.Context) (*TestDB, error) {
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("coachdesk"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	dbWrapper := &database.DB{
		Pool: pool,
	}

	return &TestDB{
		Container:  container,
		ConnString: connStr,
		Pool:       pool,
		DB:         dbWrapper,
	}, nil
}

// runMigrations executes all goose migrations from the embedded filesystem,
// the same path production startup takes.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	goose.SetLogger(log.New(nil, "", 0))
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	// Goose needs stdlib DB connection
	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Teardown stops the container and closes the connection pool
func (db *TestDB) Teardown(ctx context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.Container != nil {
		return db.Container.Terminate(ctx)
	}
	return nil
}

// CleanupTables truncates all tables for test isolation
func (db *TestDB) CleanupTables(ctx context.Context) error {
	tables := []string{
		"athlete_info",
		"daily_reports",
		"tasks",
		"notes",
		"meal_days",
		"program_records",
		"programs",
		"meal_plans",
		"coach_athlete_links",
		"users",
	}

	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return nil
}

// InitializeRepositories creates the repository instances exercised by the
// integration suite.
func InitializeRepositories(db *database.DB) (
	*repositories.UserRepository,
	*repositories.LinkRepository,
	*repositories.ProgramRepository,
	*repositories.DailyReportRepository,
) {
	return repositories.NewUserRepository(db),
		repositories.NewLinkRepository(db),
		repositories.NewProgramRepository(db),
		repositories.NewDailyReportRepository(db)
}

// SeedUser inserts a test user of the given type with hashed password
func SeedUser(ctx context.Context, pool *pgxpool.Pool, email, password, userType string) (*models.User, error) {
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO users (id, email, type, password_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'active', NOW(), NOW())
		RETURNING id, email, name, type, password_hash, status, created_at, updated_at
	`

	var user models.User
	err = pool.QueryRow(ctx, query, uuid.New().String(), email, userType, hashedPassword).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Type,
		&user.PasswordHash,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}

// SeedLink inserts a delegation link between a coach and an athlete
func SeedLink(ctx context.Context, pool *pgxpool.Pool, coachID, athleteID string, active bool, start, end *time.Time) (*models.CoachAthleteLink, error) {
	query := `
		INSERT INTO coach_athlete_links (id, coach_id, athlete_id, start_date, end_date, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $2, NOW(), NOW())
		RETURNING id, coach_id, athlete_id, start_date, end_date, is_active, created_by, created_at, updated_at
	`

	var link models.CoachAthleteLink
	err := pool.QueryRow(ctx, query, uuid.New().String(), coachID, athleteID, start, end, active).Scan(
		&link.ID,
		&link.CoachID,
		&link.AthleteID,
		&link.StartDate,
		&link.EndDate,
		&link.IsActive,
		&link.CreatedBy,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert link: %w", err)
	}

	return &link, nil
}

// SeedProgram inserts a program with the given creator and visibility
func SeedProgram(ctx context.Context, pool *pgxpool.Pool, name, createdBy string, visibility models.Visibility) (*models.Program, error) {
	query := `
		INSERT INTO programs (id, name, created_by, visibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, name, description, created_by, COALESCE(user_id::text, ''), visibility, created_at, updated_at
	`

	var program models.Program
	err := pool.QueryRow(ctx, query, uuid.New().String(), name, createdBy, string(visibility)).Scan(
		&program.ID,
		&program.Name,
		&program.Description,
		&program.CreatedBy,
		&program.UserID,
		&program.Visibility,
		&program.CreatedAt,
		&program.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert program: %w", err)
	}

	return &program, nil
}

// SeedDailyReport inserts a daily report for an athlete on the given date
func SeedDailyReport(ctx context.Context, pool *pgxpool.Pool, athleteID string, date time.Time, weight *float64) (*models.DailyReport, error) {
	query := `
		INSERT INTO daily_reports (id, user_id, created_by, date, weight, created_at, updated_at)
		VALUES ($1, $2, $2, $3, $4, NOW(), NOW())
		RETURNING id, user_id, created_by, date, weight, sleep, mood, comment, created_at, updated_at
	`

	var report models.DailyReport
	err := pool.QueryRow(ctx, query, uuid.New().String(), athleteID, date, weight).Scan(
		&report.ID,
		&report.UserID,
		&report.CreatedBy,
		&report.Date,
		&report.Weight,
		&report.Sleep,
		&report.Mood,
		&report.Comment,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert report: %w", err)
	}

	return &report, nil
}
