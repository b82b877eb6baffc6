package services

import (
	"context"
	"errors"
	"testing"

	"github.com/coachdesk/api/internal/access"
	"github.com/coachdesk/api/internal/models"
	"github.com/stretchr/testify/assert"
)

func newTestProgramService(programs ProgramRepository, records ProgramRecordRepository) (*ProgramService, *logCapture) {
	logger, capture := newCaptureLogger()
	if programs == nil {
		programs = &MockProgramRepository{}
	}
	if records == nil {
		records = &MockProgramRecordRepository{}
	}
	return NewProgramService(programs, records, newTestResolver("admin-1"), newTestRecordGate(), logger), capture
}

func TestProgramService_AthleteGetOtherSubjectPrivateForbidden(t *testing.T) {
	// athlete-1 fetching a PRIVATE program about athlete-2 must never see it
	programs := &MockProgramRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Program, error) {
			return &models.Program{
				ID:         id,
				CreatedBy:  "coach-2",
				UserID:     "athlete-2",
				Visibility: models.VisibilityPrivate,
			}, nil
		},
	}

	svc, capture := newTestProgramService(programs, nil)
	result, err := svc.GetProgram(context.Background(), testAthlete, "prog-1")

	assert.Nil(t, result)
	assert.Equal(t, models.ErrGetProgramForbidden, err)
	assert.Empty(t, capture.errorMessages())
}

func TestProgramService_AthleteListWithCreatedByForbidden(t *testing.T) {
	svc, _ := newTestProgramService(nil, nil)

	result, err := svc.ListPrograms(context.Background(), testAthlete,
		access.ListRequest{CreatedBy: "coach-1"}, 1, 20)

	assert.Nil(t, result)
	// the resource-specific condition, never a generic failure
	assert.Equal(t, models.ErrListProgramsForbidden, err)
}

func TestProgramService_ListRepositoryErrorLoggedAndWrapped(t *testing.T) {
	programs := &MockProgramRepository{
		ListFunc: func(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.Program], error) {
			return nil, errors.New("DB Error")
		},
	}

	svc, capture := newTestProgramService(programs, nil)
	result, err := svc.ListPrograms(context.Background(), testCoach, access.ListRequest{}, 1, 20)

	assert.Nil(t, result)
	assert.Equal(t, models.ErrListProgramsFailed, err)
	assert.Equal(t, []string{"ListProgramsUsecase#execute => DB Error"}, capture.errorMessages())
}

func TestProgramService_DeleteForbiddenForNonOwner(t *testing.T) {
	programs := &MockProgramRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Program, error) {
			return &models.Program{ID: id, CreatedBy: "coach-2", Visibility: models.VisibilityPublic}, nil
		},
	}

	svc, _ := newTestProgramService(programs, nil)
	err := svc.DeleteProgram(context.Background(), testCoach, "prog-1")

	assert.Equal(t, models.ErrDeleteProgramForbidden, err)
}

func TestProgramService_UpdateRecordDeniesAsNotFound(t *testing.T) {
	// a coach mutating another athlete's record gets (nil, nil), same as a
	// missing record
	records := &MockProgramRecordRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.ProgramRecord, error) {
			return &models.ProgramRecord{ID: id, CreatedBy: "athlete-2", UserID: "athlete-2"}, nil
		},
		UpdateFunc: func(ctx context.Context, id string, record *models.ProgramRecord) (*models.ProgramRecord, error) {
			t.Fatal("update must not be reached")
			return nil, nil
		},
	}

	svc, capture := newTestProgramService(nil, records)
	result, err := svc.UpdateProgramRecord(context.Background(), testCoach, "rec-1", ProgramRecordUpdate{})

	assert.Nil(t, result)
	assert.NoError(t, err)
	assert.Empty(t, capture.errorMessages())
}

func TestProgramService_UpdateRecordMissingAlsoNil(t *testing.T) {
	svc, _ := newTestProgramService(nil, &MockProgramRecordRepository{})

	result, err := svc.UpdateProgramRecord(context.Background(), testCoach, "missing", ProgramRecordUpdate{})

	assert.Nil(t, result)
	assert.NoError(t, err)
}

func TestProgramService_AthleteUpdatesOwnRecord(t *testing.T) {
	records := &MockProgramRecordRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.ProgramRecord, error) {
			return &models.ProgramRecord{ID: id, CreatedBy: "coach-1", UserID: "athlete-1", Weight: 80}, nil
		},
	}

	svc, _ := newTestProgramService(nil, records)
	weight := 82.5
	result, err := svc.UpdateProgramRecord(context.Background(), testAthlete, "rec-1",
		ProgramRecordUpdate{Weight: &weight})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 82.5, result.Weight)
}

func TestProgramService_AdminBypassesEverything(t *testing.T) {
	var seenFilter *access.ListFilter
	programs := &MockProgramRepository{
		ListFunc: func(ctx context.Context, filter *access.ListFilter, page, limit int) (*models.Page[models.Program], error) {
			seenFilter = filter
			return &models.Page[models.Program]{}, nil
		},
	}

	svc, _ := newTestProgramService(programs, nil)
	req := access.ListRequest{CreatedBy: "coach-9", Visibility: models.VisibilityPrivate}
	_, err := svc.ListPrograms(context.Background(), testAdmin, req, 1, 20)

	assert.NoError(t, err)
	// requested filter passed through unmodified
	assert.Equal(t, "coach-9", seenFilter.CreatedBy)
	assert.Equal(t, models.VisibilityPrivate, seenFilter.Visibility)
}
