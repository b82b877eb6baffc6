package integration

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/models"
	"github.com/coachdesk/api/internal/services"
)

// TestAccessFlow runs the directory scan, list scoping and link-gated report
// access against a real database.
func TestAccessFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	testDB, err := SetupTestDatabase(ctx)
	require.NoError(t, err)
	defer testDB.Teardown(ctx)

	userRepo, linkRepo, programRepo, reportRepo := InitializeRepositories(testDB.DB)
	logger := slog.New(slog.DiscardHandler)

	admin, err := SeedUser(ctx, testDB.Pool, "admin@example.com", "AdminPassword123!", "admin")
	require.NoError(t, err)
	coach, err := SeedUser(ctx, testDB.Pool, "coach@example.com", "CoachPassword123!", "coach")
	require.NoError(t, err)
	otherCoach, err := SeedUser(ctx, testDB.Pool, "other-coach@example.com", "CoachPassword123!", "coach")
	require.NoError(t, err)
	athlete, err := SeedUser(ctx, testDB.Pool, "athlete@example.com", "AthletePassword123!", "athlete")
	require.NoError(t, err)

	scanner := access.NewAdminScanner(userRepo)
	relationships := access.NewRelationshipIndex(scanner)
	linkGate := access.NewLinkGate(linkRepo)
	resolver := access.NewScopeResolver(relationships)
	recordGate := access.NewRecordGate(linkGate)

	t.Run("admin scan finds every admin identity", func(t *testing.T) {
		admins, err := scanner.ListAdminIdentities(ctx)
		require.NoError(t, err)
		assert.Len(t, admins, 1)
		assert.Contains(t, admins, admin.ID)
	})

	t.Run("coach list sees own and admin-authored programs only", func(t *testing.T) {
		_, err := SeedProgram(ctx, testDB.Pool, "coach program", coach.ID, models.VisibilityPrivate)
		require.NoError(t, err)
		_, err = SeedProgram(ctx, testDB.Pool, "admin program", admin.ID, models.VisibilityPrivate)
		require.NoError(t, err)
		_, err = SeedProgram(ctx, testDB.Pool, "foreign program", otherCoach.ID, models.VisibilityPrivate)
		require.NoError(t, err)

		programService := services.NewProgramService(programRepo, nil, resolver, recordGate, logger)

		result, err := programService.ListPrograms(ctx, models.Actor{ID: coach.ID, Role: models.RoleCoach}, access.ListRequest{}, 1, 20)
		require.NoError(t, err)

		names := make([]string, 0, len(result.Items))
		for _, p := range result.Items {
			names = append(names, p.Name)
		}
		assert.ElementsMatch(t, []string{"coach program", "admin program"}, names)
	})

	t.Run("link gates report access", func(t *testing.T) {
		yesterday := time.Now().Add(-24 * time.Hour)
		tomorrow := time.Now().Add(24 * time.Hour)
		weight := 80.5

		report, err := SeedDailyReport(ctx, testDB.Pool, athlete.ID, time.Now(), &weight)
		require.NoError(t, err)

		reportService := services.NewReportService(reportRepo, linkGate, recordGate, logger)
		coachActor := models.Actor{ID: coach.ID, Role: models.RoleCoach}

		// No link yet: the coach is denied
		_, err = reportService.GetDailyReport(ctx, coachActor, report.ID)
		assert.ErrorIs(t, err, models.ErrGetDailyReportForbidden)

		_, err = SeedLink(ctx, testDB.Pool, coach.ID, athlete.ID, true, &yesterday, &tomorrow)
		require.NoError(t, err)

		got, err := reportService.GetDailyReport(ctx, coachActor, report.ID)
		require.NoError(t, err)
		assert.Equal(t, report.ID, got.ID)
	})

	t.Run("expired link denies report access", func(t *testing.T) {
		require.NoError(t, testDB.CleanupTables(ctx))

		coach, err := SeedUser(ctx, testDB.Pool, "coach2@example.com", "CoachPassword123!", "coach")
		require.NoError(t, err)
		athlete, err := SeedUser(ctx, testDB.Pool, "athlete2@example.com", "AthletePassword123!", "athlete")
		require.NoError(t, err)

		weight := 75.0
		report, err := SeedDailyReport(ctx, testDB.Pool, athlete.ID, time.Now(), &weight)
		require.NoError(t, err)

		lastMonth := time.Now().Add(-30 * 24 * time.Hour)
		lastWeek := time.Now().Add(-7 * 24 * time.Hour)
		_, err = SeedLink(ctx, testDB.Pool, coach.ID, athlete.ID, true, &lastMonth, &lastWeek)
		require.NoError(t, err)

		reportService := services.NewReportService(reportRepo, linkGate, recordGate, logger)
		_, err = reportService.GetDailyReport(ctx, models.Actor{ID: coach.ID, Role: models.RoleCoach}, report.ID)
		assert.ErrorIs(t, err, models.ErrGetDailyReportForbidden)
	})
}
